package godb

import "sync"

// tableEntry is everything the catalog tracks about one registered table.
type tableEntry struct {
	name    string
	file    *HeapFile
	primary string // primary key column name, "" if none declared
}

// Catalog maps table names to their backing HeapFile and schema, mirroring
// the name/rootpage/schema registry a real engine's catalog keeps, minus the
// on-disk schema table (spec §SPEC_FULL-C: tables are registered
// programmatically, not via DDL).
type Catalog struct {
	mu      sync.RWMutex
	byName  map[string]*tableEntry
	byTable map[TableID]*tableEntry
}

func NewCatalog() *Catalog {
	return &Catalog{
		byName:  make(map[string]*tableEntry),
		byTable: make(map[TableID]*tableEntry),
	}
}

// AddTable registers file under name with an optional primary key column,
// and seats it with bp so pages can be read through the buffer pool.
func (c *Catalog) AddTable(bp *BufferPool, name string, file *HeapFile, primaryKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byName[name]; exists {
		return newErr(IllegalArgumentError, "table %q already registered", name)
	}
	e := &tableEntry{name: name, file: file, primary: primaryKey}
	c.byName[name] = e
	c.byTable[file.TableID()] = e
	bp.registerFile(file)
	return nil
}

// Lookup returns the HeapFile registered under name.
func (c *Catalog) Lookup(name string) (*HeapFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byName[name]
	if !ok {
		return nil, newErr(IllegalArgumentError, "no table named %q", name)
	}
	return e.file, nil
}

// PrimaryKey returns the primary key column name registered for name, or ""
// if none was declared.
func (c *Catalog) PrimaryKey(name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byName[name]
	if !ok {
		return "", newErr(IllegalArgumentError, "no table named %q", name)
	}
	return e.primary, nil
}

// TableNames returns every registered table name.
func (c *Catalog) TableNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	return names
}
