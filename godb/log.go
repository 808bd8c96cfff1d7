package godb

import (
	"io"
	"log"
)

// LogCollaborator is the hook the buffer pool calls into around dirty-page
// writes and transaction boundaries, so a write-ahead log can be layered on
// top of the storage engine without the engine knowing its shape (spec §6).
// Implementing the log itself is out of scope; NoopLog and FileLog exist to
// exercise the call sites.
type LogCollaborator interface {
	logWrite(tid TransactionID, before, after Page)
	force()
	logXactionBegin(tid TransactionID)
	logCommit(tid TransactionID)
	logAbort(tid TransactionID)
}

// NoopLog discards every call. It is the default collaborator when no log is
// configured.
type NoopLog struct{}

func (NoopLog) logWrite(TransactionID, Page, Page) {}
func (NoopLog) force()                             {}
func (NoopLog) logXactionBegin(TransactionID)      {}
func (NoopLog) logCommit(TransactionID)            {}
func (NoopLog) logAbort(TransactionID)             {}

// FileLog appends one line per hook call to an io.Writer, demonstrating the
// ordering the buffer pool guarantees (begin, then interleaved writes, then
// exactly one of commit/abort) without implementing redo/undo recovery.
type FileLog struct {
	logger *log.Logger
}

// NewFileLog wraps w in a line-oriented logger.
func NewFileLog(w io.Writer) *FileLog {
	return &FileLog{logger: log.New(w, "wal ", log.LstdFlags|log.Lmicroseconds)}
}

func (l *FileLog) logWrite(tid TransactionID, before, after Page) {
	l.logger.Printf("write tid=%d page=%v", tid, after.PageID())
}

func (l *FileLog) force() {
	l.logger.Printf("force")
}

func (l *FileLog) logXactionBegin(tid TransactionID) {
	l.logger.Printf("begin tid=%d", tid)
}

func (l *FileLog) logCommit(tid TransactionID) {
	l.logger.Printf("commit tid=%d", tid)
}

func (l *FileLog) logAbort(tid TransactionID) {
	l.logger.Printf("abort tid=%d", tid)
}
