package godb

import "testing"

func intTuple(desc *TupleDesc, group int32, value int32) *Tuple {
	t, _ := NewTuple(*desc, []Field{IntField{Value: group}, IntField{Value: value}})
	return t
}

func TestAggregateGroupedSum(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "g", Ftype: IntType}, FieldType{Fname: "v", Ftype: IntType})
	rows := []*Tuple{
		intTuple(desc, 1, 10),
		intTuple(desc, 1, 20),
		intTuple(desc, 2, 5),
	}
	child := &sliceOperator{desc: desc, rows: rows}
	agg, err := NewAggregate(child, "v", AggSum, "total", "g")
	if err != nil {
		t.Fatal(err)
	}
	tid := NewTID()
	if err := agg.Open(tid); err != nil {
		t.Fatal(err)
	}
	defer agg.Close()

	got := map[int32]int32{}
	for {
		ok, err := agg.HasNext()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		tup, err := agg.Next()
		if err != nil {
			t.Fatal(err)
		}
		got[tup.Fields[0].(IntField).Value] = tup.Fields[1].(IntField).Value
	}
	if got[1] != 30 || got[2] != 5 {
		t.Fatalf("unexpected grouped sums: %+v", got)
	}
}

func TestAggregateGroupOrderAscending(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "g", Ftype: IntType}, FieldType{Fname: "v", Ftype: IntType})
	rows := []*Tuple{
		intTuple(desc, 3, 1),
		intTuple(desc, 1, 1),
		intTuple(desc, 2, 1),
	}
	child := &sliceOperator{desc: desc, rows: rows}
	agg, err := NewAggregate(child, "v", AggCount, "n", "g")
	if err != nil {
		t.Fatal(err)
	}
	tid := NewTID()
	agg.Open(tid)
	defer agg.Close()

	var order []int32
	for {
		ok, _ := agg.HasNext()
		if !ok {
			break
		}
		tup, _ := agg.Next()
		order = append(order, tup.Fields[0].(IntField).Value)
	}
	want := []int32{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("group order = %+v, want ascending %+v", order, want)
		}
	}
}

func TestAggregateAvgIntegerDivision(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "g", Ftype: IntType}, FieldType{Fname: "v", Ftype: IntType})
	rows := []*Tuple{
		intTuple(desc, 0, 1),
		intTuple(desc, 0, 2),
	}
	child := &sliceOperator{desc: desc, rows: rows}
	agg, err := NewAggregate(child, "v", AggAvg, "avg", "")
	if err != nil {
		t.Fatal(err)
	}
	tid := NewTID()
	agg.Open(tid)
	defer agg.Close()
	ok, _ := agg.HasNext()
	if !ok {
		t.Fatal("ungrouped average over non-empty input should yield one row")
	}
	tup, err := agg.Next()
	if err != nil {
		t.Fatal(err)
	}
	// (1+2)/2 truncates to 1 under integer division.
	if got := tup.Fields[0].(IntField).Value; got != 1 {
		t.Fatalf("AVG(1,2) = %d, want 1 (integer division)", got)
	}
}

func TestAggregateUngroupedEmptyInput(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "v", Ftype: IntType})
	child := &sliceOperator{desc: desc}
	agg, err := NewAggregate(child, "v", AggCount, "n", "")
	if err != nil {
		t.Fatal(err)
	}
	tid := NewTID()
	agg.Open(tid)
	defer agg.Close()
	ok, err := agg.HasNext()
	if err != nil || !ok {
		t.Fatalf("ungrouped COUNT over empty input should still yield one row (0), ok=%v err=%v", ok, err)
	}
	tup, _ := agg.Next()
	if tup.Fields[0].(IntField).Value != 0 {
		t.Fatalf("COUNT over empty input = %+v, want 0", tup.Fields[0])
	}
}

func TestStringAggStateRejectsNonCount(t *testing.T) {
	if _, err := NewStringAggState(AggSum, 0); err == nil {
		t.Fatal("SUM over a string field should be rejected")
	}
	st, err := NewStringAggState(AggCount, 0)
	if err != nil {
		t.Fatal(err)
	}
	desc := NewTupleDesc(8, FieldType{Fname: "s", Ftype: StringType})
	st.AddTuple(&Tuple{Desc: *desc, Fields: []Field{StringField{Value: "x"}}})
	st.AddTuple(&Tuple{Desc: *desc, Fields: []Field{StringField{Value: "y"}}})
	if got := st.Finalize().(IntField).Value; got != 2 {
		t.Fatalf("COUNT over 2 string tuples = %d, want 2", got)
	}
}
