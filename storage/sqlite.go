package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"objmap/data"
	"objmap/errs"
	"objmap/object"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteTx adapts one live database/sql transaction on a modernc.org
// SQLite connection to the Transaction interface.
type sqliteTx struct {
	tx *sql.Tx
}

// NewSQLite wraps tx. The caller keeps ownership of the *sql.Tx only
// through the returned Transaction; Commit and Rollback forward to it.
func NewSQLite(tx *sql.Tx) Transaction {
	return &sqliteTx{tx: tx}
}

func (s *sqliteTx) TableExists(name string) (bool, error) {
	var found string
	err := s.tx.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (s *sqliteTx) CreateTable(schema *object.Schema) error {
	if _, err := s.tx.Exec(schema.CreateText()); err != nil {
		return translate(err)
	}
	return nil
}

func (s *sqliteTx) InsertRow(schema *object.Schema, row data.Row) (data.RowID, error) {
	res, err := s.tx.Exec(schema.InsertText(), rowArgs(row)...)
	if err != nil {
		if mc := missingColumn(err.Error(), schema); mc != nil {
			return 0, mc
		}
		return 0, translate(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, translate(err)
	} else if n != 1 {
		return 0, errs.Storage(fmt.Errorf("insert affected %d rows, want 1", n))
	}
	last, err := res.LastInsertId()
	if err != nil {
		return 0, translate(err)
	}
	return data.RowID(last), nil
}

func (s *sqliteTx) UpdateRow(id data.RowID, schema *object.Schema, row data.Row) error {
	if len(schema.Columns) == 0 {
		return nil
	}
	args := append(rowArgs(row), int64(id))
	if _, err := s.tx.Exec(schema.UpdateText(), args...); err != nil {
		if mc := missingColumn(err.Error(), schema); mc != nil {
			return mc
		}
		return translate(err)
	}
	return nil
}

func (s *sqliteTx) SelectRow(id data.RowID, schema *object.Schema) (data.Row, error) {
	q := schema.SelectText()
	n := len(schema.Columns)

	if n == 0 {
		// Column-less schema: row existence is the only observable fact.
		var one int64
		err := s.tx.QueryRow(q, int64(id)).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
		}
		if err != nil {
			return nil, translate(err)
		}
		return data.Row{}, nil
	}

	raw := make([]any, n)
	dest := make([]any, n)
	for i := range raw {
		dest[i] = &raw[i]
	}
	err := s.tx.QueryRow(q, int64(id)).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	if err != nil {
		if mc := missingColumn(err.Error(), schema); mc != nil {
			return nil, mc
		}
		return nil, translate(err)
	}

	line := make(data.Row, 0, n)
	for i, col := range schema.Columns {
		v, err := cellValue(raw[i], col, schema)
		if err != nil {
			return nil, err
		}
		line = append(line, v)
	}
	return line, nil
}

func (s *sqliteTx) DeleteRow(id data.RowID, schema *object.Schema) error {
	res, err := s.tx.Exec(schema.DeleteText(), int64(id))
	if err != nil {
		return translate(err)
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if changes == 0 {
		return &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	return nil
}

func (s *sqliteTx) Commit() error {
	return translate(s.tx.Commit())
}

func (s *sqliteTx) Rollback() error {
	return translate(s.tx.Rollback())
}

func rowArgs(row data.Row) []any {
	args := make([]any, 0, len(row))
	for _, v := range row {
		args = append(args, v.Arg())
	}
	return args
}

// cellValue converts one scanned cell into a tagged Value per the
// column's declared kind. SQLite is dynamically typed, so kind checking
// happens here rather than in the driver.
func cellValue(raw any, col object.Column, schema *object.Schema) (data.Value, error) {
	switch col.Type {
	case data.TypeString:
		if x, ok := raw.(string); ok {
			return data.StringValue(x), nil
		}
	case data.TypeBytes:
		if x, ok := raw.([]byte); ok {
			return data.BytesValue(x), nil
		}
	case data.TypeInt64:
		if x, ok := raw.(int64); ok {
			return data.Int64Value(x), nil
		}
	case data.TypeFloat64:
		// INTEGER cells are readable as floats, matching the engine's
		// own numeric affinity.
		switch x := raw.(type) {
		case float64:
			return data.Float64Value(x), nil
		case int64:
			return data.Float64Value(float64(x)), nil
		}
	case data.TypeBool:
		switch x := raw.(type) {
		case bool:
			return data.BoolValue(x), nil
		case int64:
			return data.BoolValue(x != 0), nil
		}
	}
	return data.Value{}, &errs.UnexpectedTypeError{
		TypeName: schema.TypeName,
		Attr:     col.Attr,
		Table:    schema.Table,
		Column:   col.Name,
		Expected: col.Type,
		Actual:   storageClass(raw),
	}
}

// storageClass names the SQLite storage class of a scanned cell.
func storageClass(raw any) string {
	switch raw.(type) {
	case nil:
		return "NULL"
	case int64:
		return "INTEGER"
	case float64:
		return "REAL"
	case string:
		return "TEXT"
	case []byte:
		return "BLOB"
	case bool:
		return "INTEGER"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

// missingColumn recognizes the engine's two no-such-column messages and
// maps the offending name back onto schema metadata. The id column is
// matched last since it is not part of the mapped column list. Returns
// nil when the message is about something else.
func missingColumn(msg string, schema *object.Schema) error {
	var name string
	for _, marker := range []string{"no such column:", "has no column named"} {
		if idx := strings.Index(msg, marker); idx >= 0 {
			name = strings.TrimSpace(msg[idx+len(marker):])
			break
		}
	}
	if name == "" {
		return nil
	}
	for _, col := range schema.Columns {
		if col.Name == name {
			return &errs.MissingColumnError{
				TypeName: schema.TypeName,
				Attr:     col.Attr,
				Table:    schema.Table,
				Column:   col.Name,
			}
		}
	}
	if name == "id" {
		return &errs.MissingColumnError{
			TypeName: schema.TypeName,
			Attr:     "id",
			Table:    schema.Table,
			Column:   "id",
		}
	}
	return nil
}

// translate maps a driver error into the taxonomy: busy/locked becomes
// the retryable lock conflict, everything else is opaque.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return errs.ErrLockConflict
		}
	}
	return errs.Storage(err)
}
