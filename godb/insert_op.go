package godb

// Insert drains its child and inserts each tuple into file via the buffer
// pool, producing a single one-column "count" tuple (spec §4.6).
type Insert struct {
	file  DBFile
	bp    *BufferPool
	child Operator
	desc  *TupleDesc

	tid     TransactionID
	done    bool
	emitted bool
	count   int32
}

func NewInsert(bp *BufferPool, file DBFile, child Operator) *Insert {
	return &Insert{
		file:  file,
		bp:    bp,
		child: child,
		desc:  &TupleDesc{Fields: []FieldType{{Fname: "count", Ftype: IntType}}},
	}
}

func (i *Insert) Descriptor() *TupleDesc { return i.desc }

func (i *Insert) Open(tid TransactionID) error {
	i.tid = tid
	i.done = false
	i.emitted = false
	return i.child.Open(tid)
}

func (i *Insert) Rewind() error {
	i.done = false
	i.emitted = false
	return i.child.Rewind()
}

func (i *Insert) Close() error {
	return i.child.Close()
}

func (i *Insert) HasNext() (bool, error) {
	if i.emitted {
		return false, nil
	}
	if i.done {
		return true, nil
	}
	var count int32
	for {
		ok, err := i.child.HasNext()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		t, err := i.child.Next()
		if err != nil {
			return false, err
		}
		if err := i.bp.InsertTuple(i.tid, i.file, t); err != nil {
			return false, err
		}
		count++
	}
	i.count = count
	i.done = true
	return true, nil
}

func (i *Insert) Next() (*Tuple, error) {
	ok, err := i.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "insert result already consumed")
	}
	i.emitted = true
	return &Tuple{Desc: *i.desc, Fields: []Field{IntField{Value: i.count}}}, nil
}
