// Command objmap-gen generates the object.Object implementation for a
// struct: the static schema, and Serialize/Deserialize visiting fields
// in declaration order.
//
// Usage:
//
//	objmap-gen -src user.go -type User [-table users] [-output user_objmap.go]
//
// Supported field types and their mapping:
//
//	string  -> TEXT    / String
//	[]byte  -> BLOB    / Bytes
//	int64   -> INTEGER / Int64
//	float64 -> REAL    / Float64
//	bool    -> INTEGER / Bool
//
// The column name defaults to the snake_case of the field name and can
// be overridden with a struct tag: `objmap:"column_name"`.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

func main() {
	src := flag.String("src", "", "Go source file containing the struct")
	typeName := flag.String("type", "", "struct type to generate mapping for")
	table := flag.String("table", "", "table name (defaults to the type name)")
	output := flag.String("output", "", "output file (defaults to <type>_objmap.go)")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("objmap-gen: ")

	if *src == "" || *typeName == "" {
		log.Fatal("both -src and -type are required")
	}

	g, err := parseStruct(*src, *typeName)
	if err != nil {
		log.Fatal(err)
	}
	if *table != "" {
		g.Table = *table
	}

	out := *output
	if out == "" {
		out = filepath.Join(filepath.Dir(*src), strings.ToLower(*typeName)+"_objmap.go")
	}

	if err := os.WriteFile(out, []byte(g.render()), 0644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
}

// column is one mapped field of the target struct.
type column struct {
	Field    string // Go field name
	Name     string // column name
	SQLType  string // declared SQL type
	DataType string // data.Type* constant
	Ctor     string // data.*Value constructor
	Accessor string // data.Value As* accessor
}

type gen struct {
	Package string
	Type    string
	Table   string
	Columns []column
}

var typeMap = map[string]column{
	"string":  {SQLType: "TEXT", DataType: "TypeString", Ctor: "StringValue", Accessor: "AsString"},
	"[]byte":  {SQLType: "BLOB", DataType: "TypeBytes", Ctor: "BytesValue", Accessor: "AsBytes"},
	"int64":   {SQLType: "INTEGER", DataType: "TypeInt64", Ctor: "Int64Value", Accessor: "AsInt64"},
	"float64": {SQLType: "REAL", DataType: "TypeFloat64", Ctor: "Float64Value", Accessor: "AsFloat64"},
	"bool":    {SQLType: "INTEGER", DataType: "TypeBool", Ctor: "BoolValue", Accessor: "AsBool"},
}

func parseStruct(path, typeName string) (*gen, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	st := findStruct(file, typeName)
	if st == nil {
		return nil, fmt.Errorf("type %s not found in %s (or not a struct)", typeName, path)
	}

	g := &gen{
		Package: file.Name.Name,
		Type:    typeName,
		Table:   typeName,
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("type %s: embedded fields are not supported", typeName)
		}
		typ := exprString(field.Type)
		base, ok := typeMap[typ]
		if !ok {
			return nil, fmt.Errorf("type %s: field %s has unsupported type %s",
				typeName, field.Names[0].Name, typ)
		}
		for _, name := range field.Names {
			col := base
			col.Field = name.Name
			col.Name = columnName(field, name.Name)
			g.Columns = append(g.Columns, col)
		}
	}
	return g, nil
}

func findStruct(file *ast.File, typeName string) *ast.StructType {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != typeName {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				return st
			}
			return nil
		}
	}
	return nil
}

func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + exprString(e.Elt)
		}
	}
	return "?"
}

// columnName resolves the column name: the objmap struct tag wins,
// otherwise the snake_case of the field name.
func columnName(field *ast.Field, fieldName string) string {
	if field.Tag != nil {
		raw, err := strconv.Unquote(field.Tag.Value)
		if err == nil {
			if tag, ok := reflect.StructTag(raw).Lookup("objmap"); ok && tag != "" {
				return tag
			}
		}
	}
	return snakeCase(fieldName)
}

// snakeCase lowers a Go field name, keeping runs of capitals together
// so initialisms come out whole: UserID -> user_id, HTMLBody -> html_body.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
		startsWord := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
		if prevLower || startsWord {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func (g *gen) render() string {
	schemaVar := lowerFirst(g.Type) + "Schema"

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by objmap-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", g.Package)
	fmt.Fprintf(&b, "import (\n\t\"objmap/data\"\n\t\"objmap/object\"\n)\n\n")

	fmt.Fprintf(&b, "var %s = &object.Schema{\n", schemaVar)
	fmt.Fprintf(&b, "\tTable:    %q,\n", g.Table)
	fmt.Fprintf(&b, "\tTypeName: %q,\n", g.Type)
	fmt.Fprintf(&b, "\tColumns: []object.Column{\n")
	for _, c := range g.Columns {
		fmt.Fprintf(&b, "\t\t{Name: %q, Attr: %q, SQLType: %q, Type: data.%s},\n",
			c.Name, c.Field, c.SQLType, c.DataType)
	}
	fmt.Fprintf(&b, "\t},\n}\n\n")

	fmt.Fprintf(&b, "// Schema implements object.Object.\n")
	fmt.Fprintf(&b, "func (o *%s) Schema() *object.Schema { return %s }\n\n", g.Type, schemaVar)

	fmt.Fprintf(&b, "// Serialize implements object.Object.\n")
	fmt.Fprintf(&b, "func (o *%s) Serialize() data.Row {\n", g.Type)
	fmt.Fprintf(&b, "\treturn data.Row{\n")
	for _, c := range g.Columns {
		fmt.Fprintf(&b, "\t\tdata.%s(o.%s),\n", c.Ctor, c.Field)
	}
	fmt.Fprintf(&b, "\t}\n}\n\n")

	fmt.Fprintf(&b, "// Deserialize implements object.Object.\n")
	fmt.Fprintf(&b, "func (o *%s) Deserialize(row data.Row) {\n", g.Type)
	fmt.Fprintf(&b, "\tif len(row) != len(%s.Columns) {\n", schemaVar)
	fmt.Fprintf(&b, "\t\tpanic(\"objmap: row length does not match %s schema\")\n", g.Type)
	fmt.Fprintf(&b, "\t}\n")
	for i, c := range g.Columns {
		fmt.Fprintf(&b, "\to.%s = row[%d].%s()\n", c.Field, i, c.Accessor)
	}
	fmt.Fprintf(&b, "}\n")

	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
