// Command godbsh is a minimal interactive shell over the godb storage and
// execution engine. It has no SQL layer; every table is declared on the
// command line and every query is built as an explicit operator pipeline
// (spec §1 Non-goals, §SPEC_FULL-C supplemented feature).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/heapdb/heapdb/godb"
	"github.com/heapdb/heapdb/repl"
)

func main() {
	pageSize := flag.Int("page-size", 4096, "bytes per page")
	numPages := flag.Int("buffer-pages", 50, "buffer pool capacity")
	tableFlags := flag.String("table", "", "name:path:schema (schema is comma-separated \"column type\" specs, type int or string), several tables separated by ';'")
	flag.Parse()

	cfg := godb.DefaultConfig()
	cfg.PageSize = *pageSize
	cfg.DefaultPages = *numPages

	db := godb.NewDatabase(cfg, nil)

	for _, spec := range strings.Split(*tableFlags, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		if err := openTable(db, spec); err != nil {
			log.Fatalf("open table %q: %v", spec, err)
		}
	}

	if err := repl.New(db).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openTable parses "name:path:col1 type1,col2 type2,..." (each type int or
// string; any suffix after "string", such as "(N)", is ignored and the
// database's StringLen is used) and registers the table, creating the
// backing heap file if absent.
func openTable(db *godb.Database, spec string) error {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("expected name:path:schema, got %q", spec)
	}
	name, path, schema := parts[0], parts[1], parts[2]

	var fields []godb.FieldType
	for _, col := range strings.Split(schema, ",") {
		col = strings.TrimSpace(col)
		nameType := strings.SplitN(col, " ", 2)
		if len(nameType) != 2 {
			return fmt.Errorf("column spec %q must be \"name type\"", col)
		}
		colName, colType := nameType[0], nameType[1]
		switch {
		case colType == "int":
			fields = append(fields, godb.FieldType{Fname: colName, Ftype: godb.IntType})
		case strings.HasPrefix(colType, "string"):
			fields = append(fields, godb.FieldType{Fname: colName, Ftype: godb.StringType})
		default:
			return fmt.Errorf("unknown column type %q", colType)
		}
	}

	desc := godb.NewTupleDesc(db.Config.StringLen, fields...)
	_, err := db.OpenTable(name, path, desc, "")
	return err
}
