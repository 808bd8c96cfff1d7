package godb

// Join is a simple nested-loop join: for each left tuple (outer loop) it
// rewinds and scans the right child once (inner loop), emitting the
// concatenation of every pair that satisfies the JoinPredicate (spec §4.6).
// Output order is therefore lexicographic in (left order, right order).
type Join struct {
	left, right Operator
	pred        *JoinPredicate
	desc        *TupleDesc

	leftTuple *Tuple
	leftOk    bool
	pending   *Tuple
}

func NewJoin(left Operator, right Operator, pred *JoinPredicate) *Join {
	return &Join{
		left:  left,
		right: right,
		pred:  pred,
		desc:  left.Descriptor().Merge(right.Descriptor()),
	}
}

func (j *Join) Descriptor() *TupleDesc { return j.desc }

func (j *Join) Open(tid TransactionID) error {
	if err := j.left.Open(tid); err != nil {
		return err
	}
	if err := j.right.Open(tid); err != nil {
		return err
	}
	j.leftTuple = nil
	j.leftOk = false
	j.pending = nil
	return j.advanceLeft()
}

func (j *Join) Rewind() error {
	if err := j.left.Rewind(); err != nil {
		return err
	}
	j.leftTuple = nil
	j.leftOk = false
	j.pending = nil
	return j.advanceLeft()
}

func (j *Join) Close() error {
	if err := j.left.Close(); err != nil {
		return err
	}
	return j.right.Close()
}

func (j *Join) advanceLeft() error {
	ok, err := j.left.HasNext()
	if err != nil {
		return err
	}
	if !ok {
		j.leftOk = false
		return nil
	}
	t, err := j.left.Next()
	if err != nil {
		return err
	}
	j.leftTuple = t
	j.leftOk = true
	return j.right.Rewind()
}

// HasNext advances through left tuples and right rewinds to find the next
// matching pair, caching it in j.pending for the following Next call. Like
// every other operator in this package, HasNext is idempotent: a second call
// before Next returns the same cached pair instead of searching past it.
func (j *Join) HasNext() (bool, error) {
	if j.pending != nil {
		return true, nil
	}
	for j.leftOk {
		ok, err := j.right.HasNext()
		if err != nil {
			return false, err
		}
		if !ok {
			if err := j.advanceLeft(); err != nil {
				return false, err
			}
			continue
		}
		rt, err := j.right.Next()
		if err != nil {
			return false, err
		}
		if j.pred.Eval(j.leftTuple, rt) {
			j.pending = joinTuples(j.leftTuple, rt)
			return true, nil
		}
	}
	return false, nil
}

func (j *Join) Next() (*Tuple, error) {
	if j.pending == nil {
		ok, err := j.HasNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newErr(EndOfStreamError, "join exhausted")
		}
	}
	t := j.pending
	j.pending = nil
	return t, nil
}
