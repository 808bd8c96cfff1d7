package godb

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCatalogAddAndLookup(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "id", Ftype: IntType})
	bp := NewBufferPool(10, 50*time.Millisecond, nil)
	f, err := NewHeapFile(filepath.Join(t.TempDir(), "t.dat"), desc, 4096, bp)
	if err != nil {
		t.Fatal(err)
	}
	cat := NewCatalog()
	if err := cat.AddTable(bp, "people", f, "id"); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(bp, "people", f, "id"); err == nil {
		t.Fatal("registering the same table name twice should error")
	}

	got, err := cat.Lookup("people")
	if err != nil || got != f {
		t.Fatalf("Lookup(people) = (%v, %v), want (%v, nil)", got, err, f)
	}
	if _, err := cat.Lookup("missing"); err == nil {
		t.Fatal("looking up an unregistered table should error")
	}

	pk, err := cat.PrimaryKey("people")
	if err != nil || pk != "id" {
		t.Fatalf("PrimaryKey(people) = (%q, %v), want (id, nil)", pk, err)
	}

	names := cat.TableNames()
	if len(names) != 1 || names[0] != "people" {
		t.Fatalf("TableNames() = %+v, want [people]", names)
	}
}
