package godb

// BufferPool caches pages read from disk, bounded to a fixed capacity, and is
// the sole point through which pages are read, written, and locked (spec
// §4.3). Eviction is NO-STEAL (a dirty page is never evicted) and commit is
// FORCE (a transaction's dirtied pages are flushed to disk before its locks
// are released).

import (
	"log"
	"sync"
	"time"
)

// AccessMode is the permission a caller requests when fetching a page.
type AccessMode int

const (
	ReadOnly AccessMode = iota
	ReadWrite
)

func (m AccessMode) lockMode() LockMode {
	if m == ReadWrite {
		return Exclusive
	}
	return Shared
}

type BufferPool struct {
	mu       sync.Mutex
	numPages int
	pages    map[PageID]Page
	files    map[TableID]DBFile

	locks *LockManager
	wal   LogCollaborator
	diag  *log.Logger

	active map[TransactionID]struct{}
}

// NewBufferPool constructs a BufferPool that caches numPages pages (GetPage
// never exceeds that; seat can, see its comment), with
// a deadlock timeout of deadlockTimeout (spec §4.3-4.4). A NoopLog is used if
// wal is nil.
func NewBufferPool(numPages int, deadlockTimeout time.Duration, wal LogCollaborator) *BufferPool {
	if wal == nil {
		wal = NoopLog{}
	}
	return &BufferPool{
		numPages: numPages,
		pages:    make(map[PageID]Page),
		files:    make(map[TableID]DBFile),
		locks:    NewLockManager(deadlockTimeout),
		wal:      wal,
		diag:     log.New(log.Writer(), "bufferpool ", log.LstdFlags),
		active:   make(map[TransactionID]struct{}),
	}
}

// registerFile lets the buffer pool read pages it has not yet cached back
// through their owning DBFile. Catalog calls this when a table is added.
func (bp *BufferPool) registerFile(f DBFile) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.files[f.TableID()] = f
}

// BeginTransaction records tid as active and logs the begin record (spec
// §4.3, §SPEC_FULL-A).
func (bp *BufferPool) BeginTransaction(tid TransactionID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if _, alive := bp.active[tid]; alive {
		return newErr(IllegalStateError, "transaction %v already active", tid)
	}
	bp.active[tid] = struct{}{}
	bp.wal.logXactionBegin(tid)
	return nil
}

// GetPage returns the page pid, cached or freshly read, locked for tid in
// mode. It blocks on lock acquisition subject to the LockManager's timeout
// (spec §4.3-4.4).
func (bp *BufferPool) GetPage(tid TransactionID, pid PageID, mode AccessMode) (Page, error) {
	if err := bp.locks.Acquire(pid, tid, mode.lockMode()); err != nil {
		bp.diag.Printf("lock timeout tid=%d page=%v", tid, pid)
		return nil, err
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if p, ok := bp.pages[pid]; ok {
		return p, nil
	}

	file, ok := bp.files[pid.TableID]
	if !ok {
		return nil, newErr(IllegalStateError, "no file registered for table %v", pid.TableID)
	}

	if len(bp.pages) >= bp.numPages {
		if err := bp.evictLocked(); err != nil {
			return nil, err
		}
	}

	p, err := file.ReadPage(pid.PageNumber)
	if err != nil {
		return nil, err
	}
	p.SetBeforeImage()
	bp.pages[pid] = p
	return p, nil
}

// seat directly caches a freshly created page (e.g. one HeapFile just
// appended to disk), evicting a clean page if the pool is already full. If
// every cached page is dirty, nothing is evicted and p is cached anyway, so
// the pool then holds more than numPages pages; no error is reported.
func (bp *BufferPool) seat(pid PageID, p Page) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if _, ok := bp.pages[pid]; ok {
		bp.pages[pid] = p
		return
	}
	if len(bp.pages) >= bp.numPages {
		_ = bp.evictLocked()
	}
	p.SetBeforeImage()
	bp.pages[pid] = p
}

// evictLocked removes one clean page from the cache; caller holds bp.mu.
// Returns BufferPoolFullError if every cached page is dirty (NO-STEAL, spec
// §4.3).
func (bp *BufferPool) evictLocked() error {
	for pid, p := range bp.pages {
		if _, dirty := p.IsDirty(); dirty {
			continue
		}
		bp.diag.Printf("evict page=%v", pid)
		delete(bp.pages, pid)
		return nil
	}
	return newErr(BufferPoolFullError, "buffer pool full of dirty pages")
}

// InsertTuple inserts t into file on tid's behalf and seats the resulting
// dirtied page(s) (spec §4.3, §4.6 Insert operator).
func (bp *BufferPool) InsertTuple(tid TransactionID, file DBFile, t *Tuple) error {
	hf, ok := file.(*HeapFile)
	if !ok {
		return newErr(TypeMismatchError, "InsertTuple: unsupported DBFile implementation")
	}
	_, err := hf.insertTuple(tid, t)
	return err
}

// DeleteTuple deletes t on tid's behalf (spec §4.3, §4.6 Delete operator).
func (bp *BufferPool) DeleteTuple(tid TransactionID, file DBFile, t *Tuple) error {
	hf, ok := file.(*HeapFile)
	if !ok {
		return newErr(TypeMismatchError, "DeleteTuple: unsupported DBFile implementation")
	}
	_, err := hf.deleteTuple(tid, t)
	return err
}

// flushPagesLocked writes every page tid has dirtied to disk via its owning
// file, logging a write and forcing the log before each write (spec §4.3
// FORCE). Caller holds bp.mu.
func (bp *BufferPool) flushPagesLocked(tid TransactionID) error {
	for pid, p := range bp.pages {
		dirtyBy, dirty := p.IsDirty()
		if !dirty || dirtyBy != tid {
			continue
		}
		file, ok := bp.files[pid.TableID]
		if !ok {
			return newErr(IllegalStateError, "no file registered for table %v", pid.TableID)
		}
		bp.wal.logWrite(tid, p.GetBeforeImage(), p)
		bp.wal.force()
		if err := file.WritePage(p); err != nil {
			return err
		}
		p.MarkDirty(false, tid)
		p.SetBeforeImage()
	}
	return nil
}

// TransactionComplete ends tid, committing (FORCE-flushing its dirtied pages)
// or aborting (discarding its dirtied pages from cache, relying on NO-STEAL
// to guarantee they were never written to disk) per commit, then releasing
// every lock tid held (spec §4.3).
func (bp *BufferPool) TransactionComplete(tid TransactionID, commit bool) error {
	bp.mu.Lock()
	if _, alive := bp.active[tid]; !alive {
		bp.mu.Unlock()
		return newErr(IllegalStateError, "transaction %v not active", tid)
	}

	var err error
	if commit {
		err = bp.flushPagesLocked(tid)
		if err == nil {
			bp.wal.logCommit(tid)
			bp.diag.Printf("commit tid=%d", tid)
		}
	} else {
		for pid, p := range bp.pages {
			if dirtyBy, dirty := p.IsDirty(); dirty && dirtyBy == tid {
				delete(bp.pages, pid)
			}
		}
		bp.wal.logAbort(tid)
		bp.diag.Printf("abort tid=%d", tid)
	}
	delete(bp.active, tid)
	bp.mu.Unlock()

	bp.locks.ReleaseAll(tid)
	return err
}

// FlushAllPages writes every dirty page to disk regardless of owning
// transaction. Intended for tests and for a clean shutdown.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	for pid, p := range bp.pages {
		if _, dirty := p.IsDirty(); !dirty {
			continue
		}
		file, ok := bp.files[pid.TableID]
		if !ok {
			return newErr(IllegalStateError, "no file registered for table %v", pid.TableID)
		}
		if err := file.WritePage(p); err != nil {
			return err
		}
		p.MarkDirty(false, 0)
	}
	return nil
}

// DiscardPage drops pid from the cache without flushing it, regardless of
// dirty state. Used by tests that want to force a re-read from disk.
func (bp *BufferPool) DiscardPage(pid PageID) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	delete(bp.pages, pid)
}
