// Package repl adapts a Database to an interactive command line: a thin
// debug shell for exercising SeqScan/Filter/Insert/Delete pipelines directly,
// with no SQL parsing layer (spec §1 Non-goals).
package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/heapdb/heapdb/godb"
)

type Repl struct {
	db *godb.Database
}

func New(db *godb.Database) *Repl {
	return &Repl{db: db}
}

// Run starts the interactive loop, reading lines from stdin until .exit or
// EOF.
func (r *Repl) Run() error {
	rl, err := readline.New("godb> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("godb debug shell. Commands: scan, filter, insert, delete, tables, .exit")
	for {
		line, err := rl.Readline()
		if err == io.EOF || line == ".exit" {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := r.dispatch(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func (r *Repl) dispatch(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "tables":
		for _, name := range r.db.Catalog.TableNames() {
			fmt.Println(name)
		}
		return nil
	case "scan":
		return r.cmdScan(fields)
	case "filter":
		return r.cmdFilter(fields)
	case "insert":
		return r.cmdInsert(fields)
	case "delete":
		return r.cmdDelete(fields)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (r *Repl) cmdScan(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: scan <table>")
	}
	file, err := r.db.Catalog.Lookup(fields[1])
	if err != nil {
		return err
	}
	tid := godb.NewTID()
	if err := r.db.BufferPool.BeginTransaction(tid); err != nil {
		return err
	}
	op := godb.NewSeqScan(file, fields[1])
	return r.drain(tid, op)
}

func (r *Repl) cmdFilter(fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("usage: filter <table> <field> <op> <value>")
	}
	file, err := r.db.Catalog.Lookup(fields[1])
	if err != nil {
		return err
	}
	op, err := parseOp(fields[3])
	if err != nil {
		return err
	}
	scan := godb.NewSeqScan(file, fields[1])
	constant, err := parseConstant(scan.Descriptor(), fields[2], fields[4])
	if err != nil {
		return err
	}
	pred, err := godb.NewPredicate(scan.Descriptor(), fields[2], op, constant)
	if err != nil {
		return err
	}
	filter := godb.NewFilter(pred, scan)

	tid := godb.NewTID()
	if err := r.db.BufferPool.BeginTransaction(tid); err != nil {
		return err
	}
	return r.drain(tid, filter)
}

func (r *Repl) cmdInsert(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("usage: insert <table> <value>...")
	}
	file, err := r.db.Catalog.Lookup(fields[1])
	if err != nil {
		return err
	}
	desc := file.Descriptor()
	values := fields[2:]
	if len(values) != len(desc.Fields) {
		return fmt.Errorf("table %s has %d columns, got %d values", fields[1], len(desc.Fields), len(values))
	}
	row := make([]godb.Field, len(values))
	for i, v := range values {
		switch desc.Fields[i].Ftype {
		case godb.IntType:
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return fmt.Errorf("column %d: %w", i, err)
			}
			row[i] = godb.IntField{Value: int32(n)}
		case godb.StringType:
			row[i] = godb.StringField{Value: v}
		}
	}
	t, err := godb.NewTuple(*desc, row)
	if err != nil {
		return err
	}

	tid := godb.NewTID()
	if err := r.db.BufferPool.BeginTransaction(tid); err != nil {
		return err
	}
	if err := r.db.BufferPool.InsertTuple(tid, file, t); err != nil {
		r.db.BufferPool.TransactionComplete(tid, false)
		return err
	}
	return r.db.BufferPool.TransactionComplete(tid, true)
}

func (r *Repl) cmdDelete(fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("usage: delete <table> <field> <op> <value>")
	}
	file, err := r.db.Catalog.Lookup(fields[1])
	if err != nil {
		return err
	}
	op, err := parseOp(fields[3])
	if err != nil {
		return err
	}
	scan := godb.NewSeqScan(file, fields[1])
	constant, err := parseConstant(scan.Descriptor(), fields[2], fields[4])
	if err != nil {
		return err
	}
	pred, err := godb.NewPredicate(scan.Descriptor(), fields[2], op, constant)
	if err != nil {
		return err
	}
	filter := godb.NewFilter(pred, scan)
	del := godb.NewDelete(r.db.BufferPool, file, filter)

	tid := godb.NewTID()
	if err := r.db.BufferPool.BeginTransaction(tid); err != nil {
		return err
	}
	if err := r.drain(tid, del); err != nil {
		r.db.BufferPool.TransactionComplete(tid, false)
		return err
	}
	return r.db.BufferPool.TransactionComplete(tid, true)
}

func (r *Repl) drain(tid godb.TransactionID, op godb.Operator) error {
	if err := op.Open(tid); err != nil {
		return err
	}
	defer op.Close()
	fmt.Println(op.Descriptor().HeaderString())
	for {
		ok, err := op.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		t, err := op.Next()
		if err != nil {
			return err
		}
		fmt.Println(t.PrettyPrintString())
	}
	return r.db.BufferPool.TransactionComplete(tid, true)
}

func parseOp(s string) (godb.BoolOp, error) {
	switch s {
	case "=":
		return godb.OpEq, nil
	case "<>", "!=":
		return godb.OpNeq, nil
	case "<":
		return godb.OpLt, nil
	case "<=":
		return godb.OpLe, nil
	case ">":
		return godb.OpGt, nil
	case ">=":
		return godb.OpGe, nil
	case "like":
		return godb.OpLike, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

func parseConstant(desc *godb.TupleDesc, field, value string) (godb.Field, error) {
	idx, err := desc.FindField(field)
	if err != nil {
		return nil, err
	}
	switch desc.Fields[idx].Ftype {
	case godb.IntType:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, err
		}
		return godb.IntField{Value: int32(n)}, nil
	case godb.StringType:
		return godb.StringField{Value: value}, nil
	}
	return nil, fmt.Errorf("unknown field type for %q", field)
}
