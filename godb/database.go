package godb

import "time"

// Database bundles the Catalog, BufferPool, log collaborator, and Config a
// caller needs to run queries, constructed explicitly per process instead of
// assumed as a package-level singleton (spec §SPEC_FULL-C Design Note: an
// explicit context replaces an implicit global).
type Database struct {
	Catalog    *Catalog
	BufferPool *BufferPool
	Log        LogCollaborator
	Config     Config
}

// NewDatabase wires a fresh Catalog and BufferPool using cfg, with log as the
// buffer pool's write-ahead log collaborator (NoopLog if nil).
func NewDatabase(cfg Config, log LogCollaborator) *Database {
	if log == nil {
		log = NoopLog{}
	}
	return &Database{
		Catalog:    NewCatalog(),
		BufferPool: NewBufferPool(cfg.DefaultPages, time.Duration(cfg.DeadlockTimeoutMs)*time.Millisecond, log),
		Log:        log,
		Config:     cfg,
	}
}

// OpenTable opens (or creates) the heap file at path with desc and registers
// it in the catalog under name.
func (d *Database) OpenTable(name, path string, desc *TupleDesc, primaryKey string) (*HeapFile, error) {
	f, err := NewHeapFile(path, desc, d.Config.PageSize, d.BufferPool)
	if err != nil {
		return nil, err
	}
	if err := d.Catalog.AddTable(d.BufferPool, name, f, primaryKey); err != nil {
		return nil, err
	}
	return f, nil
}
