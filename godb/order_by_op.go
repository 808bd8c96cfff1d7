package godb

import "sort"

// OrderBy blocks on Open to pull and sort its child's entire output by one or
// more fields, each independently ascending or descending.
type OrderBy struct {
	fieldIndexes []int
	ascending    []bool
	child        Operator

	rows []*Tuple
	idx  int
}

func NewOrderBy(fieldNames []string, ascending []bool, child Operator) (*OrderBy, error) {
	if len(fieldNames) != len(ascending) {
		return nil, newErr(IllegalArgumentError, "order-by field/direction count mismatch")
	}
	cd := child.Descriptor()
	indexes := make([]int, len(fieldNames))
	for i, name := range fieldNames {
		idx, err := cd.FindField(name)
		if err != nil {
			return nil, err
		}
		indexes[i] = idx
	}
	return &OrderBy{fieldIndexes: indexes, ascending: ascending, child: child}, nil
}

func (o *OrderBy) Descriptor() *TupleDesc { return o.child.Descriptor() }

func (o *OrderBy) Open(tid TransactionID) error {
	if err := o.child.Open(tid); err != nil {
		return err
	}
	return o.sortAll()
}

func (o *OrderBy) sortAll() error {
	o.rows = nil
	for {
		ok, err := o.child.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		t, err := o.child.Next()
		if err != nil {
			return err
		}
		o.rows = append(o.rows, t)
	}
	sort.SliceStable(o.rows, func(i, j int) bool {
		a, b := o.rows[i], o.rows[j]
		for k, idx := range o.fieldIndexes {
			fa, fb := a.Fields[idx], b.Fields[idx]
			if fa.EvalPred(fb, OpEq) {
				continue
			}
			if o.ascending[k] {
				return fa.EvalPred(fb, OpLt)
			}
			return fa.EvalPred(fb, OpGt)
		}
		return false
	})
	o.idx = 0
	return nil
}

func (o *OrderBy) Rewind() error {
	o.idx = 0
	return nil
}

func (o *OrderBy) Close() error {
	o.rows = nil
	return o.child.Close()
}

func (o *OrderBy) HasNext() (bool, error) {
	return o.idx < len(o.rows), nil
}

func (o *OrderBy) Next() (*Tuple, error) {
	if o.idx >= len(o.rows) {
		return nil, newErr(EndOfStreamError, "order-by exhausted")
	}
	t := o.rows[o.idx]
	o.idx++
	return t, nil
}
