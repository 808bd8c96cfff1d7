package godb

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// DBFile is the on-disk collaborator a BufferPool reads pages from and
// writes pages back to on flush. HeapFile is the only implementation the
// core ships (spec §4.2).
type DBFile interface {
	ReadPage(pageNumber int) (Page, error)
	WritePage(p Page) error
	NumPages() int
	PageSize() int
	TableID() TableID
	Descriptor() *TupleDesc
}

// HeapFile is an unordered, append-only collection of HeapPages persisted as
// one OS file (spec §3, §4.2). All page access for reads and writes goes
// through the BufferPool supplied at construction; HeapFile itself does no
// locking.
type HeapFile struct {
	path     string
	tableID  TableID
	desc     *TupleDesc
	pageSize int
	bp       *BufferPool
}

// NewHeapFile opens (creating if absent) the backing file at path.
func NewHeapFile(path string, desc *TupleDesc, pageSize int, bp *BufferPool) (*HeapFile, error) {
	tid, err := TableIDForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, newErr(IoError, "open heap file %s: %v", path, err)
	}
	f.Close()
	return &HeapFile{path: path, tableID: tid, desc: desc, pageSize: pageSize, bp: bp}, nil
}

func (f *HeapFile) TableID() TableID      { return f.tableID }
func (f *HeapFile) Descriptor() *TupleDesc { return f.desc }
func (f *HeapFile) PageSize() int          { return f.pageSize }

// NumPages returns fileSize / PageSize (spec §4.2).
func (f *HeapFile) NumPages() int {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0
	}
	return int(info.Size() / int64(f.pageSize))
}

// ReadPage reads the pageNumber-th PAGE_SIZE-byte slice from disk (spec
// §4.2). Reading exactly at EOF (pageNumber == NumPages()) returns a fresh
// empty page that is not yet on disk; any other short read returns IoError.
func (f *HeapFile) ReadPage(pageNumber int) (Page, error) {
	if pageNumber == f.NumPages() {
		return NewEmptyHeapPage(PageID{TableID: f.tableID, PageNumber: pageNumber}, f.desc, f.pageSize), nil
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, newErr(IoError, "open %s: %v", f.path, err)
	}
	defer file.Close()

	offset := int64(pageNumber) * int64(f.pageSize)
	data := make([]byte, f.pageSize)
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, newErr(IoError, "seek %s to page %d: %v", f.path, pageNumber, err)
	}
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, newErr(IoError, "read page %d of %s: %v", pageNumber, f.path, err)
	}
	pid := PageID{TableID: f.tableID, PageNumber: pageNumber}
	return NewHeapPage(pid, data, f.desc, f.pageSize)
}

// WritePage seeks to the page's slot and writes its PAGE_SIZE-byte image,
// growing the file if necessary (spec §4.2).
func (f *HeapFile) WritePage(p Page) error {
	hp, ok := p.(*HeapPage)
	if !ok {
		return newErr(TypeMismatchError, "WritePage: not a HeapPage")
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return newErr(IoError, "open %s: %v", f.path, err)
	}
	defer file.Close()

	offset := int64(hp.pid.PageNumber) * int64(f.pageSize)
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return newErr(IoError, "seek %s to page %d: %v", f.path, hp.pid.PageNumber, err)
	}
	if _, err := file.Write(hp.GetPageData()); err != nil {
		return newErr(IoError, "write page %d of %s: %v", hp.pid.PageNumber, f.path, err)
	}
	return nil
}

// insertTuple walks existing pages in page-number order via the buffer pool,
// inserting into the first page with a free slot; if none fits, it creates
// and appends a fresh page (spec §4.2). Returns the pages it dirtied.
func (f *HeapFile) insertTuple(tid TransactionID, t *Tuple) ([]Page, error) {
	n := f.NumPages()
	for pageNo := 0; pageNo < n; pageNo++ {
		pid := PageID{TableID: f.tableID, PageNumber: pageNo}
		page, err := f.bp.GetPage(tid, pid, ReadWrite)
		if err != nil {
			return nil, err
		}
		hp := page.(*HeapPage)
		if hp.NumEmptySlots() == 0 {
			continue
		}
		if _, err := hp.InsertTuple(t); err != nil {
			return nil, err
		}
		hp.MarkDirty(true, tid)
		return []Page{hp}, nil
	}

	pid := PageID{TableID: f.tableID, PageNumber: n}
	hp := NewEmptyHeapPage(pid, f.desc, f.pageSize)
	// Extend the file with the page while it is still empty, so the new
	// tuple reaches disk only through a commit flush (NO-STEAL).
	if err := f.WritePage(hp); err != nil {
		return nil, err
	}
	if _, err := hp.InsertTuple(t); err != nil {
		return nil, err
	}
	hp.MarkDirty(true, tid)
	f.bp.seat(pid, hp)
	return []Page{hp}, nil
}

// deleteTuple obtains t's page with an X-lock and deletes the slot it names
// (spec §4.2).
func (f *HeapFile) deleteTuple(tid TransactionID, t *Tuple) ([]Page, error) {
	if t.Rid == nil {
		return nil, newErr(InvalidRecordError, "tuple has no record id")
	}
	if t.Rid.PageID.TableID != f.tableID {
		return nil, newErr(InvalidRecordError, "record id belongs to a different table")
	}
	page, err := f.bp.GetPage(tid, t.Rid.PageID, ReadWrite)
	if err != nil {
		return nil, err
	}
	hp := page.(*HeapPage)
	if err := hp.DeleteTuple(t); err != nil {
		return nil, err
	}
	hp.MarkDirty(true, tid)
	return []Page{hp}, nil
}

// HeapFileIterator walks a HeapFile's pages in order, acquiring each with an
// S-lock via the buffer pool, and yields their live tuples in slot order
// (spec §4.2). It is wrapped by the SeqScan operator.
type HeapFileIterator struct {
	file     *HeapFile
	tid      TransactionID
	pageNo   int
	buf      []*Tuple
	bufIdx   int
	opened   bool
}

func (f *HeapFile) Iterator(tid TransactionID) *HeapFileIterator {
	return &HeapFileIterator{file: f, tid: tid}
}

func (it *HeapFileIterator) Open() error {
	it.pageNo = 0
	it.buf = nil
	it.bufIdx = 0
	it.opened = true
	return nil
}

func (it *HeapFileIterator) Close() error {
	it.opened = false
	it.buf = nil
	return nil
}

func (it *HeapFileIterator) Rewind() error {
	return it.Open()
}

// Next returns the next tuple, or (nil, nil) at end of file.
func (it *HeapFileIterator) Next() (*Tuple, error) {
	if !it.opened {
		return nil, newErr(IllegalStateError, "HeapFileIterator.Next called before Open")
	}
	for {
		if it.bufIdx < len(it.buf) {
			t := it.buf[it.bufIdx]
			it.bufIdx++
			return t, nil
		}
		if it.pageNo >= it.file.NumPages() {
			return nil, nil
		}
		pid := PageID{TableID: it.file.tableID, PageNumber: it.pageNo}
		page, err := it.file.bp.GetPage(it.tid, pid, ReadOnly)
		if err != nil {
			return nil, err
		}
		it.buf = page.(*HeapPage).Iterate()
		it.bufIdx = 0
		it.pageNo++
	}
}

// LoadFromCSV bulk-loads rows from a CSV file into the heap file, one
// transaction per call, writing each row through the current bitmap/slot
// page layout.
func (f *HeapFile) LoadFromCSV(bp *BufferPool, r io.Reader, hasHeader bool) error {
	reader := csv.NewReader(bufio.NewReader(r))
	tid := NewTID()
	if err := bp.BeginTransaction(tid); err != nil {
		return err
	}

	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			bp.TransactionComplete(tid, false)
			return newErr(MalformedDataError, "read csv line %d: %v", lineNo, err)
		}
		lineNo++
		if lineNo == 1 && hasHeader {
			continue
		}
		if len(record) != len(f.desc.Fields) {
			bp.TransactionComplete(tid, false)
			return newErr(MalformedDataError, "line %d: expected %d fields, got %d", lineNo, len(f.desc.Fields), len(record))
		}
		fields := make([]Field, len(record))
		for i, raw := range record {
			raw = strings.TrimSpace(raw)
			switch f.desc.Fields[i].Ftype {
			case IntType:
				v, err := strconv.ParseInt(raw, 10, 32)
				if err != nil {
					bp.TransactionComplete(tid, false)
					return newErr(TypeMismatchError, "line %d: %q is not an int: %v", lineNo, raw, err)
				}
				fields[i] = IntField{Value: int32(v)}
			case StringType:
				fields[i] = StringField{Value: raw}
			}
		}
		t, err := NewTuple(*f.desc, fields)
		if err != nil {
			bp.TransactionComplete(tid, false)
			return err
		}
		if err := bp.InsertTuple(tid, f, t); err != nil {
			bp.TransactionComplete(tid, false)
			return err
		}
	}
	bp.TransactionComplete(tid, true)
	return nil
}
