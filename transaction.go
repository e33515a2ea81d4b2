package objmap

import (
	"errors"
	"reflect"

	"objmap/data"
	"objmap/errs"
	"objmap/object"
	"objmap/storage"
)

// ErrFinished is returned by any operation on a unit of work that was
// already committed or rolled back.
var ErrFinished = errors.New("objmap: transaction already finished")

// cellKey identifies one tracked record: concrete record type plus row
// id. At most one entry exists per key per unit of work.
type cellKey struct {
	typ reflect.Type
	id  data.RowID
}

// Transaction is one unit of work. It exclusively owns a storage
// transaction and an identity map of every record it has created or
// loaded. It is not safe for concurrent use.
type Transaction struct {
	inner storage.Transaction
	cells map[cellKey]*entry
	seen  map[string]bool // tables verified to exist this session
	done  bool
}

// NewTransaction builds a unit of work over inner. Most callers use
// DB.Begin instead; taking the interface directly exists for tests and
// for running on an externally managed engine transaction.
func NewTransaction(inner storage.Transaction) *Transaction {
	return &Transaction{
		inner: inner,
		cells: make(map[cellKey]*entry),
		seen:  make(map[string]bool),
	}
}

// Ptr constrains PT to a pointer to T implementing object.Object, which
// lets Get allocate a fresh record to deserialize into.
type Ptr[T any] interface {
	*T
	object.Object
}

func (t *Transaction) ensureTable(schema *object.Schema) error {
	if t.seen[schema.Table] {
		return nil
	}
	exists, err := t.inner.TableExists(schema.Table)
	if err != nil {
		return err
	}
	if !exists {
		if err := t.inner.CreateTable(schema); err != nil {
			return err
		}
	}
	t.seen[schema.Table] = true
	return nil
}

// Create inserts obj immediately, registers it in the identity map in
// state Clean, and returns a handle owning it. The insert is eager: the
// row id is assigned now, and rolling back the unit of work is the only
// way to undo it. The table is created first if it does not exist.
func Create[T any, PT Ptr[T]](t *Transaction, obj PT) (Handle[PT], error) {
	var zero Handle[PT]
	if t.done {
		return zero, ErrFinished
	}
	schema := obj.Schema()
	if err := t.ensureTable(schema); err != nil {
		return zero, err
	}
	id, err := t.inner.InsertRow(schema, obj.Serialize())
	if err != nil {
		return zero, err
	}
	e := &entry{id: id, obj: obj, state: StateClean}
	t.cells[cellKey{typ: reflect.TypeOf(obj), id: id}] = e
	return Handle[PT]{e: e}, nil
}

// Get returns a handle to the record with the given id. If the record is
// already tracked, the existing shared instance is returned without a
// re-read — this is what gives read consistency within one unit of work;
// a tracked record in state Removed yields NotFound. Otherwise the row
// is read from storage, deserialized, and registered in state Clean.
func Get[T any, PT Ptr[T]](t *Transaction, id data.RowID) (Handle[PT], error) {
	var zero Handle[PT]
	if t.done {
		return zero, ErrFinished
	}
	var obj PT = new(T)
	schema := obj.Schema()
	if err := t.ensureTable(schema); err != nil {
		return zero, err
	}

	key := cellKey{typ: reflect.TypeOf(obj), id: id}
	if e, ok := t.cells[key]; ok {
		if e.state == StateRemoved {
			return zero, &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
		}
		return Handle[PT]{e: e}, nil
	}

	row, err := t.inner.SelectRow(id, schema)
	if err != nil {
		return zero, err
	}
	obj.Deserialize(row)
	e := &entry{id: id, obj: obj, state: StateClean}
	t.cells[key] = e
	return Handle[PT]{e: e}, nil
}

// Commit flushes every tracked record — a delete for Removed, an update
// with the current serialized form for Modified, nothing for Clean —
// then commits the engine transaction. Entries are visited in map order;
// rows are independent, so ordering is deliberately not a correctness
// requirement. Any failure aborts the flush and leaves the engine-side
// transaction unresolved. The unit of work is consumed either way.
func (t *Transaction) Commit() error {
	if t.done {
		return ErrFinished
	}
	t.done = true
	for _, e := range t.cells {
		if e.writing {
			panic("objmap: commit while an object is mutably borrowed")
		}
		switch e.state {
		case StateRemoved:
			if err := t.inner.DeleteRow(e.id, e.obj.Schema()); err != nil {
				return err
			}
		case StateModified:
			if err := t.inner.UpdateRow(e.id, e.obj.Schema(), e.obj.Serialize()); err != nil {
				return err
			}
		}
	}
	return t.inner.Commit()
}

// Rollback discards all tracked records without flushing and rolls back
// the engine transaction. The unit of work is consumed.
func (t *Transaction) Rollback() error {
	if t.done {
		return ErrFinished
	}
	t.done = true
	return t.inner.Rollback()
}
