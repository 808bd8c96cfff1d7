package godb

import "testing"

func TestFieldEvalPred(t *testing.T) {
	cases := []struct {
		a, b Field
		op   BoolOp
		want bool
	}{
		{IntField{Value: 3}, IntField{Value: 3}, OpEq, true},
		{IntField{Value: 3}, IntField{Value: 4}, OpLt, true},
		{IntField{Value: 4}, IntField{Value: 3}, OpLt, false},
		{IntField{Value: 3}, IntField{Value: 3}, OpGe, true},
		{StringField{Value: "abc"}, StringField{Value: "abd"}, OpLt, true},
		{StringField{Value: "hello world"}, StringField{Value: "world"}, OpLike, true},
		{StringField{Value: "hello"}, StringField{Value: "world"}, OpLike, false},
	}
	for i, c := range cases {
		if got := c.a.EvalPred(c.b, c.op); got != c.want {
			t.Errorf("case %d: %v %v %v = %v, want %v", i, c.a, c.op, c.b, got, c.want)
		}
	}
}

func TestFieldEvalPredTypeMismatch(t *testing.T) {
	if (IntField{Value: 1}).EvalPred(StringField{Value: "1"}, OpEq) {
		t.Fatal("comparing across field types should be false, not panic or true")
	}
}

func TestTupleDescEquals(t *testing.T) {
	a := NewTupleDesc(128, FieldType{Fname: "x", Ftype: IntType}, FieldType{Fname: "y", Ftype: StringType})
	b := NewTupleDesc(128, FieldType{Fname: "a", Ftype: IntType}, FieldType{Fname: "b", Ftype: StringType})
	if !a.Equals(b) {
		t.Fatal("descriptors with matching field types but different names should be equal")
	}
	c := NewTupleDesc(128, FieldType{Fname: "x", Ftype: StringType}, FieldType{Fname: "y", Ftype: StringType})
	if a.Equals(c) {
		t.Fatal("descriptors with mismatched field types should not be equal")
	}
}

func TestTupleDescSize(t *testing.T) {
	d := NewTupleDesc(10, FieldType{Ftype: IntType}, FieldType{Ftype: StringType})
	want := 4 + (4 + 10)
	if got := d.Size(); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestTupleDescFindField(t *testing.T) {
	d := NewTupleDesc(10,
		FieldType{Fname: "id", TableQualifier: "t1", Ftype: IntType},
		FieldType{Fname: "id", TableQualifier: "t2", Ftype: IntType},
	)
	if _, err := d.FindField("id"); err == nil {
		t.Fatal("unqualified ambiguous name should error")
	}
	idx, err := d.FindField("t2.id")
	if err != nil || idx != 1 {
		t.Fatalf("FindField(t2.id) = (%d, %v), want (1, nil)", idx, err)
	}
	if _, err := d.FindField("missing"); err == nil {
		t.Fatal("missing column should error")
	}
}

func TestTupleDescWithAliasAndMerge(t *testing.T) {
	d := NewTupleDesc(10, FieldType{Fname: "a", Ftype: IntType})
	aliased := d.WithAlias("t")
	if aliased.Fields[0].TableQualifier != "t" {
		t.Fatalf("WithAlias did not set qualifier, got %q", aliased.Fields[0].TableQualifier)
	}
	if d.Fields[0].TableQualifier != "" {
		t.Fatal("WithAlias must not mutate the receiver")
	}
	other := NewTupleDesc(10, FieldType{Fname: "b", Ftype: StringType})
	merged := aliased.Merge(other)
	if len(merged.Fields) != 2 || merged.Fields[0].Fname != "a" || merged.Fields[1].Fname != "b" {
		t.Fatalf("Merge produced unexpected fields: %+v", merged.Fields)
	}
}
