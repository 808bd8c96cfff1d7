package godb

import (
	"bytes"
	"testing"

	"github.com/d4l3k/messagediff"
)

func testDesc() *TupleDesc {
	return NewTupleDesc(8,
		FieldType{Fname: "id", Ftype: IntType},
		FieldType{Fname: "name", Ftype: StringType},
	)
}

func TestNewTupleArityAndTypeChecking(t *testing.T) {
	desc := testDesc()
	if _, err := NewTuple(*desc, []Field{IntField{Value: 1}}); err == nil {
		t.Fatal("wrong arity should error")
	}
	if _, err := NewTuple(*desc, []Field{StringField{Value: "x"}, StringField{Value: "y"}}); err == nil {
		t.Fatal("wrong field type should error")
	}
	tup, err := NewTuple(*desc, []Field{IntField{Value: 1}, StringField{Value: "alice"}})
	if err != nil {
		t.Fatalf("valid tuple rejected: %v", err)
	}
	if tup.Fields[1].(StringField).Value != "alice" {
		t.Fatal("field value not preserved")
	}
}

func TestTupleWireRoundTrip(t *testing.T) {
	desc := testDesc()
	tup, err := NewTuple(*desc, []Field{IntField{Value: -42}, StringField{Value: "bob"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tup.writeTo(&buf); err != nil {
		t.Fatalf("writeTo: %v", err)
	}
	if buf.Len() != desc.Size() {
		t.Fatalf("wrote %d bytes, descriptor size is %d", buf.Len(), desc.Size())
	}
	r := bytes.NewReader(buf.Bytes())
	got, err := readTupleFrom(r, desc)
	if err != nil {
		t.Fatalf("readTupleFrom: %v", err)
	}
	if diff, equal := messagediff.PrettyDiff(tup.Fields, got.Fields); !equal {
		t.Fatalf("round trip changed fields:\n%s", diff)
	}
}

func TestTupleStringFieldTruncatesAtStringLen(t *testing.T) {
	desc := NewTupleDesc(4, FieldType{Fname: "s", Ftype: StringType})
	tup, err := NewTuple(*desc, []Field{StringField{Value: "abcdefgh"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tup.writeTo(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := readTupleFrom(bytes.NewReader(buf.Bytes()), desc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fields[0].(StringField).Value != "abcd" {
		t.Fatalf("expected truncation to 4 bytes, got %q", got.Fields[0].(StringField).Value)
	}
}

func TestTupleEquals(t *testing.T) {
	desc := testDesc()
	a, _ := NewTuple(*desc, []Field{IntField{Value: 1}, StringField{Value: "x"}})
	b, _ := NewTuple(*desc, []Field{IntField{Value: 1}, StringField{Value: "x"}})
	c, _ := NewTuple(*desc, []Field{IntField{Value: 2}, StringField{Value: "x"}})
	if !a.Equals(b) {
		t.Fatal("tuples with equal fields should be Equals")
	}
	if a.Equals(c) {
		t.Fatal("tuples with differing fields should not be Equals")
	}
}

func TestJoinTuples(t *testing.T) {
	ld := NewTupleDesc(8, FieldType{Fname: "a", Ftype: IntType})
	rd := NewTupleDesc(8, FieldType{Fname: "b", Ftype: IntType})
	lt, _ := NewTuple(*ld, []Field{IntField{Value: 1}})
	rt, _ := NewTuple(*rd, []Field{IntField{Value: 2}})
	joined := joinTuples(lt, rt)
	if len(joined.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(joined.Fields))
	}
	if joined.Fields[0].(IntField).Value != 1 || joined.Fields[1].(IntField).Value != 2 {
		t.Fatalf("unexpected joined fields: %+v", joined.Fields)
	}
	if joined.Rid != nil {
		t.Fatal("joined tuple should carry no RecordID")
	}
}
