package godb

import (
	"fmt"
	"strings"
)

// DBType is the wire type of a tuple field: INT or STRING(N) (spec §3).
type DBType int

const (
	IntType DBType = iota
	StringType
)

func (t DBType) String() string {
	switch t {
	case IntType:
		return "int"
	case StringType:
		return "string"
	}
	return "unknown"
}

// wireSize returns the on-disk byte size of a field of this type, given the
// process-wide configured STRING_LEN.
func (t DBType) wireSize(stringLen int) int {
	switch t {
	case IntType:
		return 4
	case StringType:
		return 4 + stringLen
	}
	panic(fmt.Sprintf("godb: unknown DBType %d", t))
}

// BoolOp is a predicate comparison operator (spec §4.6).
type BoolOp int

const (
	OpEq BoolOp = iota
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
)

func (op BoolOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLike:
		return "LIKE"
	}
	return "?"
}

// Field is a tagged value of a DBType. Fields compare by value: integers
// support full ordering, strings support equality and lexicographic
// ordering plus LIKE (simple substring match).
type Field interface {
	Type() DBType
	// EvalPred evaluates `self op other` and reports the result. Comparing
	// a Field against one of a different concrete type is a programmer
	// error and returns false.
	EvalPred(other Field, op BoolOp) bool
	String() string
}

// IntField is a 32-bit signed integer field value.
type IntField struct {
	Value int32
}

func (f IntField) Type() DBType { return IntType }
func (f IntField) String() string {
	return fmt.Sprintf("%d", f.Value)
}

func (f IntField) EvalPred(other Field, op BoolOp) bool {
	o, ok := other.(IntField)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return f.Value == o.Value
	case OpNeq:
		return f.Value != o.Value
	case OpLt:
		return f.Value < o.Value
	case OpLe:
		return f.Value <= o.Value
	case OpGt:
		return f.Value > o.Value
	case OpGe:
		return f.Value >= o.Value
	case OpLike:
		return strings.Contains(fmt.Sprintf("%d", f.Value), fmt.Sprintf("%d", o.Value))
	}
	return false
}

// StringField is a fixed-length (on the wire), variable-content-up-to-N
// string field value.
type StringField struct {
	Value string
}

func (f StringField) Type() DBType { return StringType }
func (f StringField) String() string {
	return f.Value
}

func (f StringField) EvalPred(other Field, op BoolOp) bool {
	o, ok := other.(StringField)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return f.Value == o.Value
	case OpNeq:
		return f.Value != o.Value
	case OpLt:
		return f.Value < o.Value
	case OpLe:
		return f.Value <= o.Value
	case OpGt:
		return f.Value > o.Value
	case OpGe:
		return f.Value >= o.Value
	case OpLike:
		return strings.Contains(f.Value, o.Value)
	}
	return false
}

// FieldType names one column of a TupleDesc: its type, an advisory field
// name, and an advisory table qualifier (e.g. the SeqScan alias). Names do
// not participate in TupleDesc equality (spec §3).
type FieldType struct {
	Fname          string
	TableQualifier string
	Ftype          DBType
}

func (f FieldType) qualifiedName() string {
	if f.TableQualifier == "" {
		return f.Fname
	}
	return f.TableQualifier + "." + f.Fname
}

// TupleDesc is the ordered (type, name) schema of a Tuple. StringLen records
// the STRING(N) width this descriptor's string fields were built with, so
// that the descriptor alone is enough to compute record size.
type TupleDesc struct {
	Fields    []FieldType
	StringLen int
}

// NewTupleDesc builds a TupleDesc over fields using the given STRING_LEN.
func NewTupleDesc(stringLen int, fields ...FieldType) *TupleDesc {
	return &TupleDesc{Fields: append([]FieldType(nil), fields...), StringLen: stringLen}
}

// Equals compares two descriptors by the pairwise type of their fields only;
// names are advisory (spec §3).
func (d *TupleDesc) Equals(o *TupleDesc) bool {
	if o == nil || len(d.Fields) != len(o.Fields) {
		return false
	}
	for i := range d.Fields {
		if d.Fields[i].Ftype != o.Fields[i].Ftype {
			return false
		}
	}
	return true
}

// Size returns the on-disk byte size of one tuple of this descriptor.
func (d *TupleDesc) Size() int {
	total := 0
	for _, f := range d.Fields {
		total += f.Ftype.wireSize(d.StringLen)
	}
	return total
}

// Copy returns a deep copy of the descriptor.
func (d *TupleDesc) Copy() *TupleDesc {
	fields := make([]FieldType, len(d.Fields))
	copy(fields, d.Fields)
	return &TupleDesc{Fields: fields, StringLen: d.StringLen}
}

// WithAlias returns a copy of d with every field's TableQualifier set to
// alias. Used by SeqScan to build "alias.fieldname" naming (spec §4.6).
func (d *TupleDesc) WithAlias(alias string) *TupleDesc {
	c := d.Copy()
	for i := range c.Fields {
		c.Fields[i].TableQualifier = alias
	}
	return c
}

// Merge returns a new TupleDesc whose fields are d's fields followed by o's
// (used to build join output descriptors, spec §4.6).
func (d *TupleDesc) Merge(o *TupleDesc) *TupleDesc {
	fields := make([]FieldType, 0, len(d.Fields)+len(o.Fields))
	fields = append(fields, d.Fields...)
	fields = append(fields, o.Fields...)
	sl := d.StringLen
	if sl == 0 {
		sl = o.StringLen
	}
	return &TupleDesc{Fields: fields, StringLen: sl}
}

// HeaderString renders the column names, comma separated.
func (d *TupleDesc) HeaderString() string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.qualifiedName()
	}
	return strings.Join(names, ",")
}

// FindField returns the index of the field named name. A qualified name
// ("table.name") matches only a field with that table qualifier; an
// unqualified name matches on the field name alone and returns
// AmbiguousNameError if more than one field has it.
func (d *TupleDesc) FindField(name string) (int, error) {
	table, col := "", name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		table, col = name[:i], name[i+1:]
	}
	best := -1
	for i, f := range d.Fields {
		if f.Fname != col {
			continue
		}
		if table == "" {
			if best != -1 {
				return -1, newErr(AmbiguousNameError, "column %q is ambiguous", name)
			}
			best = i
			continue
		}
		if f.TableQualifier == table {
			return i, nil
		}
	}
	if best == -1 {
		return -1, newErr(IncompatibleTypesError, "column %q not found", name)
	}
	return best, nil
}
