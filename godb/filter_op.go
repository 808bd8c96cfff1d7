package godb

// Filter passes through only the child's tuples that satisfy a Predicate
// (spec §4.6).
type Filter struct {
	pred  *Predicate
	child Operator

	next *Tuple
}

func NewFilter(pred *Predicate, child Operator) *Filter {
	return &Filter{pred: pred, child: child}
}

func (f *Filter) Descriptor() *TupleDesc { return f.child.Descriptor() }

func (f *Filter) Open(tid TransactionID) error {
	f.next = nil
	return f.child.Open(tid)
}

func (f *Filter) Rewind() error {
	f.next = nil
	return f.child.Rewind()
}

func (f *Filter) Close() error {
	f.next = nil
	return f.child.Close()
}

func (f *Filter) HasNext() (bool, error) {
	if f.next != nil {
		return true, nil
	}
	for {
		ok, err := f.child.HasNext()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		t, err := f.child.Next()
		if err != nil {
			return false, err
		}
		if f.pred.Eval(t) {
			f.next = t
			return true, nil
		}
	}
}

func (f *Filter) Next() (*Tuple, error) {
	ok, err := f.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "filter exhausted")
	}
	t := f.next
	f.next = nil
	return t, nil
}
