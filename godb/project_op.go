package godb

// Project narrows and/or renames its child's fields, optionally suppressing
// duplicate output tuples.
type Project struct {
	fieldIndexes []int
	outputNames  []string
	distinct     bool
	child        Operator
	desc         *TupleDesc

	seen map[string]struct{}
	next *Tuple
}

func NewProject(fieldNames []string, outputNames []string, distinct bool, child Operator) (*Project, error) {
	if len(fieldNames) != len(outputNames) {
		return nil, newErr(IllegalArgumentError, "projection field/name count mismatch")
	}
	cd := child.Descriptor()
	indexes := make([]int, len(fieldNames))
	fields := make([]FieldType, len(fieldNames))
	for i, name := range fieldNames {
		idx, err := cd.FindField(name)
		if err != nil {
			return nil, err
		}
		indexes[i] = idx
		fields[i] = FieldType{Fname: outputNames[i], Ftype: cd.Fields[idx].Ftype}
	}
	return &Project{
		fieldIndexes: indexes,
		outputNames:  outputNames,
		distinct:     distinct,
		child:        child,
		desc:         &TupleDesc{Fields: fields, StringLen: cd.StringLen},
	}, nil
}

func (p *Project) Descriptor() *TupleDesc { return p.desc }

func (p *Project) Open(tid TransactionID) error {
	if p.distinct {
		p.seen = make(map[string]struct{})
	}
	p.next = nil
	return p.child.Open(tid)
}

func (p *Project) Rewind() error {
	if p.distinct {
		p.seen = make(map[string]struct{})
	}
	p.next = nil
	return p.child.Rewind()
}

func (p *Project) Close() error {
	p.next = nil
	return p.child.Close()
}

func (p *Project) project(t *Tuple) *Tuple {
	fields := make([]Field, len(p.fieldIndexes))
	for i, idx := range p.fieldIndexes {
		fields[i] = t.Fields[idx]
	}
	return &Tuple{Desc: *p.desc, Fields: fields}
}

func (p *Project) HasNext() (bool, error) {
	if p.next != nil {
		return true, nil
	}
	for {
		ok, err := p.child.HasNext()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		t, err := p.child.Next()
		if err != nil {
			return false, err
		}
		out := p.project(t)
		if p.distinct {
			key := out.PrettyPrintString()
			if _, dup := p.seen[key]; dup {
				continue
			}
			p.seen[key] = struct{}{}
		}
		p.next = out
		return true, nil
	}
}

func (p *Project) Next() (*Tuple, error) {
	ok, err := p.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "project exhausted")
	}
	t := p.next
	p.next = nil
	return t, nil
}
