package godb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Tuple is a TupleDesc together with a matching array of Field values. It
// optionally carries the RecordID of its storage location, set on insertion
// or on read from a page (spec §3).
type Tuple struct {
	Desc   TupleDesc
	Fields []Field
	Rid    *RecordID
}

// NewTuple validates that fields matches desc's arity and field types before
// constructing a Tuple (spec §3 invariant).
func NewTuple(desc TupleDesc, fields []Field) (*Tuple, error) {
	if len(fields) != len(desc.Fields) {
		return nil, newErr(TypeMismatchError, "tuple has %d fields, descriptor wants %d", len(fields), len(desc.Fields))
	}
	for i, f := range fields {
		if f.Type() != desc.Fields[i].Ftype {
			return nil, newErr(TypeMismatchError, "field %d is %s, descriptor wants %s", i, f.Type(), desc.Fields[i].Ftype)
		}
	}
	return &Tuple{Desc: desc, Fields: append([]Field(nil), fields...)}, nil
}

// Equals compares two tuples by descriptor equality and pairwise field
// equality; RecordIDs are not compared.
func (t *Tuple) Equals(o *Tuple) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.Desc.Equals(&o.Desc) || len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].EvalPred(o.Fields[i], OpEq) {
			return false
		}
	}
	return true
}

// writeTo encodes the tuple's fields, in order, as fixed-width big-endian
// records (spec §3: int fields are 4-byte big-endian two's complement,
// string fields are a 4-byte big-endian length prefix followed by N bytes of
// zero-padded UTF-8).
func (t *Tuple) writeTo(buf *bytes.Buffer) error {
	for i, f := range t.Fields {
		switch v := f.(type) {
		case IntField:
			if err := binary.Write(buf, binary.BigEndian, v.Value); err != nil {
				return newErr(IoError, "write int field %d: %v", i, err)
			}
		case StringField:
			if err := writeStringField(buf, v, t.Desc.StringLen); err != nil {
				return err
			}
		default:
			return newErr(TypeMismatchError, "unsupported field type %T at %d", f, i)
		}
	}
	return nil
}

func writeStringField(buf *bytes.Buffer, f StringField, stringLen int) error {
	content := []byte(f.Value)
	if len(content) > stringLen {
		content = content[:stringLen]
	}
	padded := make([]byte, stringLen)
	copy(padded, content)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(content))); err != nil {
		return newErr(IoError, "write string length prefix: %v", err)
	}
	if _, err := buf.Write(padded); err != nil {
		return newErr(IoError, "write string bytes: %v", err)
	}
	return nil
}

// readTupleFrom decodes one fixed-width record for desc from r.
func readTupleFrom(r *bytes.Reader, desc *TupleDesc) (*Tuple, error) {
	fields := make([]Field, len(desc.Fields))
	for i, ft := range desc.Fields {
		switch ft.Ftype {
		case IntType:
			var v int32
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, newErr(IoError, "read int field %d: %v", i, err)
			}
			fields[i] = IntField{Value: v}
		case StringType:
			sf, err := readStringField(r, desc.StringLen)
			if err != nil {
				return nil, err
			}
			fields[i] = sf
		default:
			return nil, newErr(TypeMismatchError, "unknown field type at %d", i)
		}
	}
	return &Tuple{Desc: *desc, Fields: fields}, nil
}

func readStringField(r *bytes.Reader, stringLen int) (StringField, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return StringField{}, newErr(IoError, "read string length prefix: %v", err)
	}
	raw := make([]byte, stringLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return StringField{}, newErr(IoError, "read string bytes: %v", err)
	}
	if int(n) > stringLen {
		n = uint32(stringLen)
	}
	return StringField{Value: string(raw[:n])}, nil
}

// joinTuples concatenates t1's fields and descriptor with t2's, producing the
// output of a nested-loop join (spec §4.6). The result carries no RecordID.
func joinTuples(t1, t2 *Tuple) *Tuple {
	desc := t1.Desc.Merge(&t2.Desc)
	fields := make([]Field, 0, len(t1.Fields)+len(t2.Fields))
	fields = append(fields, t1.Fields...)
	fields = append(fields, t2.Fields...)
	return &Tuple{Desc: *desc, Fields: fields}
}

// PrettyPrintString renders the tuple's fields, comma separated.
func (t *Tuple) PrettyPrintString() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

func (t *Tuple) String() string {
	return fmt.Sprintf("Tuple(%s)", t.PrettyPrintString())
}
