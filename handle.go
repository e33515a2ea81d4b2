package objmap

import (
	"fmt"

	"objmap/data"
	"objmap/object"
)

// State is the mutation state of one tracked record.
type State int

const (
	// StateClean marks a record that matches storage; commit skips it.
	StateClean State = iota
	// StateModified marks a record with pending changes; commit issues
	// an update.
	StateModified
	// StateRemoved marks a record pending deletion; no further borrows
	// are permitted.
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "Clean"
	case StateModified:
		return "Modified"
	case StateRemoved:
		return "Removed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// entry is one identity-map slot: the shared record instance, its
// mutation state, and the runtime borrow bookkeeping. Every handle for
// the same (type, id) key points at the same entry.
type entry struct {
	id      data.RowID
	obj     object.Object
	state   State
	reads   int  // outstanding shared borrows
	writing bool // outstanding exclusive borrow
}

// Handle is a typed, copyable view onto one tracked record. Copies alias
// the same shared instance and the same state: a mutation through one
// handle is immediately visible through all others in the same unit of
// work.
type Handle[T object.Object] struct {
	e *entry
}

// ID returns the record's row identity.
func (h Handle[T]) ID() data.RowID { return h.e.id }

// State returns the record's current mutation state.
func (h Handle[T]) State() State { return h.e.state }

// Borrow grants shared read access to the record. The returned release
// func must be called when done; until then no exclusive borrow may be
// taken. Borrowing a removed record, or one that is mutably borrowed,
// panics.
func (h Handle[T]) Borrow() (T, func()) {
	e := h.e
	if e.state == StateRemoved {
		panic("objmap: cannot borrow a removed object")
	}
	if e.writing {
		panic("objmap: object is already mutably borrowed")
	}
	e.reads++
	released := false
	return e.obj.(T), func() {
		if !released {
			released = true
			e.reads--
		}
	}
}

// BorrowMut grants exclusive write access and marks the record Modified,
// whether or not the caller actually writes. Taking it while any borrow
// is outstanding, or after the record was removed, panics.
func (h Handle[T]) BorrowMut() (T, func()) {
	e := h.e
	if e.state == StateRemoved {
		panic("objmap: cannot borrow a removed object")
	}
	if e.writing || e.reads > 0 {
		panic("objmap: object is already borrowed")
	}
	e.state = StateModified
	e.writing = true
	released := false
	return e.obj.(T), func() {
		if !released {
			released = true
			e.writing = false
		}
	}
}

// Delete marks the record Removed; commit will issue a delete. Deleting
// while any borrow is outstanding panics. Afterwards every handle for
// this key observes Removed and all borrow attempts panic.
func (h Handle[T]) Delete() {
	e := h.e
	if e.writing || e.reads > 0 {
		panic("objmap: cannot delete a borrowed object")
	}
	e.state = StateRemoved
}
