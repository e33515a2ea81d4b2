// Package errs defines the error taxonomy of the persistence layer.
//
// Every storage failure is translated at the storage boundary into one
// of these kinds before it reaches the unit of work. ErrLockConflict is
// the only kind a caller is expected to retry; all others are terminal
// for the current unit of work. Borrow-discipline violations are caller
// bugs and panic instead of appearing here.
package errs

import (
	"errors"
	"fmt"

	"objmap/data"
)

// ErrLockConflict reports that the engine was busy or locked. Transient;
// the caller may retry the whole unit of work.
var ErrLockConflict = errors.New("database is locked")

// NotFoundError reports that no row exists for the requested identity.
type NotFoundError struct {
	ID       data.RowID
	TypeName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object is not found: type %q, id %d", e.TypeName, int64(e.ID))
}

// UnexpectedTypeError reports a stored cell whose native type is
// incompatible with the column's declared kind.
type UnexpectedTypeError struct {
	TypeName string
	Attr     string
	Table    string
	Column   string
	Expected data.DataType
	Actual   string
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("invalid type for %s.%s: expected equivalent of %s, got %s (table: %s, column: %s)",
		e.TypeName, e.Attr, e.Expected, e.Actual, e.Table, e.Column)
}

// MissingColumnError reports that the table lacks a column the schema
// maps.
type MissingColumnError struct {
	TypeName string
	Attr     string
	Table    string
	Column   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing a column for %s.%s (table: %s, column: %s)",
		e.TypeName, e.Attr, e.Table, e.Column)
}

// StorageError wraps any other engine failure opaquely.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as an opaque storage failure. Errors already part of
// the taxonomy pass through unchanged so boundary code can translate
// unconditionally.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var (
		nf *NotFoundError
		ut *UnexpectedTypeError
		mc *MissingColumnError
		se *StorageError
	)
	if errors.Is(err, ErrLockConflict) ||
		errors.As(err, &nf) || errors.As(err, &ut) || errors.As(err, &mc) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
