package godb

// SeqScan reads every live tuple of a HeapFile, in page/slot order, tagging
// the output descriptor with alias as the table qualifier (spec §4.6).
type SeqScan struct {
	file  *HeapFile
	alias string
	desc  *TupleDesc

	it   *HeapFileIterator
	next *Tuple
}

func NewSeqScan(file *HeapFile, alias string) *SeqScan {
	return &SeqScan{
		file:  file,
		alias: alias,
		desc:  file.Descriptor().WithAlias(alias),
	}
}

func (s *SeqScan) Descriptor() *TupleDesc { return s.desc }

func (s *SeqScan) Open(tid TransactionID) error {
	s.it = s.file.Iterator(tid)
	s.next = nil
	return s.it.Open()
}

func (s *SeqScan) Rewind() error {
	s.next = nil
	return s.it.Rewind()
}

func (s *SeqScan) Close() error {
	s.next = nil
	return s.it.Close()
}

func (s *SeqScan) HasNext() (bool, error) {
	if s.next != nil {
		return true, nil
	}
	t, err := s.it.Next()
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}
	t.Desc = *s.desc
	s.next = t
	return true, nil
}

func (s *SeqScan) Next() (*Tuple, error) {
	ok, err := s.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(EndOfStreamError, "seqscan exhausted")
	}
	t := s.next
	s.next = nil
	return t, nil
}
