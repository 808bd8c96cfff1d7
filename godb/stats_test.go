package godb

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewTableStats(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "v", Ftype: IntType})
	bp := NewBufferPool(50, 50*time.Millisecond, nil)
	f, err := NewHeapFile(filepath.Join(t.TempDir(), "stats.dat"), desc, 4096, bp)
	if err != nil {
		t.Fatal(err)
	}
	bp.registerFile(f)

	tid := NewTID()
	bp.BeginTransaction(tid)
	values := []int32{1, 5, 5, 9, 9, 9}
	for _, v := range values {
		tup, _ := NewTuple(*desc, []Field{IntField{Value: v}})
		if err := bp.InsertTuple(tid, f, tup); err != nil {
			t.Fatal(err)
		}
	}
	if err := bp.TransactionComplete(tid, true); err != nil {
		t.Fatal(err)
	}

	statTid := NewTID()
	bp.BeginTransaction(statTid)
	ts, err := NewTableStats(statTid, f)
	if err != nil {
		t.Fatalf("NewTableStats: %v", err)
	}
	bp.TransactionComplete(statTid, true)

	if ts.NumTuples() != int64(len(values)) {
		t.Fatalf("NumTuples() = %d, want %d", ts.NumTuples(), len(values))
	}
	if got := ts.EstimateSelectivity(0, OpEq, 100); got != 0 {
		t.Fatalf("EQ outside the observed range should be 0, got %v", got)
	}
	if freq := ts.EstimateFrequency(0, 9); freq < 3 {
		t.Fatalf("EstimateFrequency(9) should report at least its 3 true occurrences, got %d", freq)
	}
}
