package godb

import "testing"

func TestNewPredicateTypeMismatch(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "id", Ftype: IntType})
	if _, err := NewPredicate(desc, "id", OpEq, StringField{Value: "x"}); err == nil {
		t.Fatal("comparing an int column against a string constant should error")
	}
}

func TestNewJoinPredicateTypeMismatch(t *testing.T) {
	left := NewTupleDesc(8, FieldType{Fname: "id", Ftype: IntType})
	right := NewTupleDesc(8, FieldType{Fname: "name", Ftype: StringType})
	if _, err := NewJoinPredicate(left, "id", OpEq, right, "name"); err == nil {
		t.Fatal("joining an int column against a string column should error")
	}
}

func TestPredicateEval(t *testing.T) {
	desc := NewTupleDesc(8, FieldType{Fname: "id", Ftype: IntType})
	pred, err := NewPredicate(desc, "id", OpGe, IntField{Value: 5})
	if err != nil {
		t.Fatal(err)
	}
	match, _ := NewTuple(*desc, []Field{IntField{Value: 5}})
	nomatch, _ := NewTuple(*desc, []Field{IntField{Value: 4}})
	if !pred.Eval(match) {
		t.Fatal("5 >= 5 should match")
	}
	if pred.Eval(nomatch) {
		t.Fatal("4 >= 5 should not match")
	}
}
