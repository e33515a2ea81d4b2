// Package object defines the static schema metadata for a mapped record
// type and renders the SQL statements derived from it.
//
// A Schema is the single source of truth for the generated SQL text:
// column order is fixed and matches the order in which Serialize and
// Deserialize visit fields. Schemas are normally emitted by objmap-gen,
// but any hand-written implementation of Object that keeps the ordering
// contract works the same way.
package object

import (
	"strings"

	"objmap/data"
)

// Object is the boundary to generated per-type mapping code. The unit of
// work depends only on these three artifacts.
type Object interface {
	// Schema returns the static table description. The same pointer must
	// be returned on every call.
	Schema() *Schema

	// Serialize produces the field values in schema column order.
	Serialize() data.Row

	// Deserialize fills the receiver from a row in schema column order.
	// Length or kind violations are programmer errors and panic.
	Deserialize(row data.Row)
}

// Column describes one mapped field.
type Column struct {
	Name    string        // column name
	Attr    string        // mapped field name, for error context
	SQLType string        // declared SQL type, e.g. "TEXT"
	Type    data.DataType // logical scalar kind
}

// Schema is the static description of a record type's table.
type Schema struct {
	Table    string
	TypeName string
	Columns  []Column
}

// SelectText renders the select-by-id statement. With no mapped columns
// it selects the constant 1 so row existence is still observable.
func (s *Schema) SelectText() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.Columns) == 0 {
		b.WriteString("1")
	} else {
		for i, c := range s.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	b.WriteString(" WHERE id = ?")
	return b.String()
}

// InsertText renders the insert statement with one placeholder per
// column, or the DEFAULT VALUES form when the schema has no columns.
func (s *Schema) InsertText() string {
	if len(s.Columns) == 0 {
		return "INSERT INTO " + s.Table + " DEFAULT VALUES"
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.Table)
	b.WriteString(" (")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
	}
	b.WriteString(") VALUES (")
	for i := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
	}
	b.WriteString(")")
	return b.String()
}

// UpdateText renders the update-by-id statement.
func (s *Schema) UpdateText() string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(s.Table)
	b.WriteString(" SET ")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteString(" = ?")
	}
	b.WriteString(" WHERE id = ?")
	return b.String()
}

// DeleteText renders the delete-by-id statement.
func (s *Schema) DeleteText() string {
	return "DELETE FROM " + s.Table + " WHERE id = ?"
}

// CreateText renders the create-table statement. The id column is always
// the autoincrement primary key; mapped columns follow in schema order
// with their declared SQL types.
func (s *Schema) CreateText() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(s.Table)
	b.WriteString(" (id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, c := range s.Columns {
		b.WriteString(", ")
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(c.SQLType)
	}
	b.WriteString(")")
	return b.String()
}
