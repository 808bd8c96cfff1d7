package godb

// Delete drains its child and deletes each tuple (by RecordID) from file via
// the buffer pool, producing a single one-column "count" tuple (spec §4.6).
type Delete struct {
	file  DBFile
	bp    *BufferPool
	child Operator
	desc  *TupleDesc

	tid     TransactionID
	done    bool
	emitted bool
	count   int32
}

func NewDelete(bp *BufferPool, file DBFile, child Operator) *Delete {
	return &Delete{
		file:  file,
		bp:    bp,
		child: child,
		desc:  &TupleDesc{Fields: []FieldType{{Fname: "count", Ftype: IntType}}},
	}
}

func (d *Delete) Descriptor() *TupleDesc { return d.desc }

func (d *Delete) Open(tid TransactionID) error {
	d.tid = tid
	d.done = false
	d.emitted = false
	return d.child.Open(tid)
}

func (d *Delete) Rewind() error {
	d.done = false
	d.emitted = false
	return d.child.Rewind()
}

func (d *Delete) Close() error {
	return d.child.Close()
}

func (d *Delete) HasNext() (bool, error) {
	if d.emitted {
		return false, nil
	}
	if d.done {
		return true, nil
	}
	var count int32
	for {
		ok, err := d.child.HasNext()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		t, err := d.child.Next()
		if err != nil {
			return false, err
		}
		if err := d.bp.DeleteTuple(d.tid, d.file, t); err != nil {
			return false, err
		}
		count++
	}
	d.count = count
	d.done = true
	return true, nil
}

func (d *Delete) Next() (*Tuple, error) {
	ok, err := d.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "delete result already consumed")
	}
	d.emitted = true
	return &Tuple{Desc: *d.desc, Fields: []Field{IntField{Value: d.count}}}, nil
}
