package godb

import "sort"

// Aggregate computes, optionally per group, one of MIN/MAX/SUM/AVG/COUNT over
// a field of its child's output (spec §4.6). It is blocking: Open drains the
// entire child and builds the grouped results before the first HasNext call.
// Grouped output is emitted in ascending group-key order.
type Aggregate struct {
	child Operator

	aggFieldIndex   int
	aggOp           AggOp
	aggFieldType    DBType
	groupFieldIndex int // -1 if ungrouped

	desc *TupleDesc

	results []*Tuple
	idx     int
}

// NewAggregate builds an Aggregate over child. groupField may be "" for an
// ungrouped (whole-input) aggregate.
func NewAggregate(child Operator, aggField string, aggOp AggOp, aggAlias string, groupField string) (*Aggregate, error) {
	cd := child.Descriptor()
	aggIdx, err := cd.FindField(aggField)
	if err != nil {
		return nil, err
	}
	aggType := cd.Fields[aggIdx].Ftype

	groupIdx := -1
	fields := []FieldType{}
	if groupField != "" {
		groupIdx, err = cd.FindField(groupField)
		if err != nil {
			return nil, err
		}
		fields = append(fields, cd.Fields[groupIdx])
	}
	fields = append(fields, FieldType{Fname: aggAlias, Ftype: IntType})

	return &Aggregate{
		child:           child,
		aggFieldIndex:   aggIdx,
		aggOp:           aggOp,
		aggFieldType:    aggType,
		groupFieldIndex: groupIdx,
		desc:            &TupleDesc{Fields: fields},
	}, nil
}

func (a *Aggregate) Descriptor() *TupleDesc { return a.desc }

func (a *Aggregate) newState() (AggState, error) {
	if a.aggFieldType == StringType {
		return NewStringAggState(a.aggOp, a.aggFieldIndex)
	}
	return NewIntAggState(a.aggOp, a.aggFieldIndex), nil
}

func (a *Aggregate) Open(tid TransactionID) error {
	if err := a.child.Open(tid); err != nil {
		return err
	}
	return a.compute()
}

func (a *Aggregate) compute() error {
	type group struct {
		key   Field
		state AggState
	}
	order := []string{}
	groups := map[string]*group{}

	for {
		ok, err := a.child.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		t, err := a.child.Next()
		if err != nil {
			return err
		}

		var key string
		var keyField Field
		if a.groupFieldIndex >= 0 {
			keyField = t.Fields[a.groupFieldIndex]
			key = keyField.String()
		}

		g, ok := groups[key]
		if !ok {
			st, err := a.newState()
			if err != nil {
				return err
			}
			g = &group{key: keyField, state: st}
			groups[key] = g
			order = append(order, key)
		}
		g.state.AddTuple(t)
	}

	if a.groupFieldIndex < 0 && len(groups) == 0 {
		st, err := a.newState()
		if err != nil {
			return err
		}
		groups[""] = &group{state: st}
		order = append(order, "")
	}

	sort.Slice(order, func(i, j int) bool {
		gi, gj := groups[order[i]], groups[order[j]]
		if gi.key == nil || gj.key == nil {
			return false
		}
		return gi.key.EvalPred(gj.key, OpLt)
	})

	a.results = make([]*Tuple, 0, len(order))
	for _, k := range order {
		g := groups[k]
		fields := []Field{}
		if a.groupFieldIndex >= 0 {
			fields = append(fields, g.key)
		}
		fields = append(fields, g.state.Finalize())
		a.results = append(a.results, &Tuple{Desc: *a.desc, Fields: fields})
	}
	a.idx = 0
	return nil
}

func (a *Aggregate) Rewind() error {
	a.idx = 0
	return nil
}

func (a *Aggregate) Close() error {
	a.results = nil
	return a.child.Close()
}

func (a *Aggregate) HasNext() (bool, error) {
	return a.idx < len(a.results), nil
}

func (a *Aggregate) Next() (*Tuple, error) {
	if a.idx >= len(a.results) {
		return nil, newErr(EndOfStreamError, "aggregate exhausted")
	}
	t := a.results[a.idx]
	a.idx++
	return t, nil
}
