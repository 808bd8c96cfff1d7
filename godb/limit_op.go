package godb

// Limit passes through at most n of its child's tuples.
type Limit struct {
	n     int32
	child Operator
	count int32
}

func NewLimit(n int32, child Operator) *Limit {
	return &Limit{n: n, child: child}
}

func (l *Limit) Descriptor() *TupleDesc { return l.child.Descriptor() }

func (l *Limit) Open(tid TransactionID) error {
	l.count = 0
	return l.child.Open(tid)
}

func (l *Limit) Rewind() error {
	l.count = 0
	return l.child.Rewind()
}

func (l *Limit) Close() error {
	return l.child.Close()
}

func (l *Limit) HasNext() (bool, error) {
	if l.count >= l.n {
		return false, nil
	}
	return l.child.HasNext()
}

func (l *Limit) Next() (*Tuple, error) {
	ok, err := l.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "limit exhausted")
	}
	t, err := l.child.Next()
	if err != nil {
		return nil, err
	}
	l.count++
	return t, nil
}
