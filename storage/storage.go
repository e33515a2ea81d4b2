// Package storage defines the storage-transaction capability the unit of
// work runs on, plus its SQLite implementation.
//
// The interface is the translation boundary for errors: every failure an
// implementation returns is one of the kinds in package errs. The unit
// of work above it never sees a raw engine error.
package storage

import (
	"objmap/data"
	"objmap/object"
)

// Transaction wraps one live engine transaction with single-row CRUD by
// positional column values.
type Transaction interface {
	// TableExists reports whether the named table exists. It never
	// creates anything.
	TableExists(name string) (bool, error)

	// CreateTable issues the schema's create statement. Callers are
	// expected to check TableExists first; creating an existing table
	// fails.
	CreateTable(schema *object.Schema) error

	// InsertRow executes the schema's insert text with row values bound
	// positionally and returns the engine-assigned row id.
	InsertRow(schema *object.Schema, row data.Row) (data.RowID, error)

	// UpdateRow binds row values plus id and executes the update text.
	// A schema with no columns is a no-op. Zero affected rows is not an
	// error; existence was verified at load time.
	UpdateRow(id data.RowID, schema *object.Schema, row data.Row) error

	// SelectRow executes the select text and converts each returned
	// column into a Value per its declared kind.
	SelectRow(id data.RowID, schema *object.Schema) (data.Row, error)

	// DeleteRow executes the delete text. Zero affected rows is a
	// not-found condition.
	DeleteRow(id data.RowID, schema *object.Schema) error

	Commit() error
	Rollback() error
}
