package godb

// Operator is the pull-based execution contract every node in a query plan
// implements (spec §4.5). Unlike a closure-returning iterator, state lives on
// the struct itself: Open prepares it, HasNext/Next pull one tuple at a time,
// Rewind resets it for a second pass (needed by the inner side of a nested
// loop join), and Close releases any resources Open acquired.
type Operator interface {
	// Open prepares the operator to produce tuples on tid's behalf, opening
	// its children first.
	Open(tid TransactionID) error

	// HasNext reports whether Next would return another tuple. Operators
	// that cannot answer this without consuming input cache the looked-ahead
	// tuple for the following Next call.
	HasNext() (bool, error)

	// Next returns the next tuple, or EndOfStreamError if HasNext would
	// report false.
	Next() (*Tuple, error)

	// Rewind restarts iteration from the beginning without a full
	// Close/Open cycle.
	Rewind() error

	// Close releases resources acquired by Open.
	Close() error

	// Descriptor returns the schema of the tuples this operator produces.
	Descriptor() *TupleDesc
}
