package objmap

// fakeStore is an in-memory storage.Transaction that counts every
// statement, used to pin down exactly what commit flushes.

import (
	"objmap/data"
	"objmap/errs"
	"objmap/object"
)

type fakeStore struct {
	tables map[string]bool
	rows   map[string]map[data.RowID]data.Row
	nextID map[string]data.RowID // per table, like SQLite rowids

	creates   int
	inserts   int
	updates   int
	selects   int
	deletes   int
	commits   int
	rollbacks int

	commitErr error // returned by Commit when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: make(map[string]bool),
		rows:   make(map[string]map[data.RowID]data.Row),
		nextID: make(map[string]data.RowID),
	}
}

func (f *fakeStore) TableExists(name string) (bool, error) {
	return f.tables[name], nil
}

func (f *fakeStore) CreateTable(schema *object.Schema) error {
	f.creates++
	f.tables[schema.Table] = true
	f.rows[schema.Table] = make(map[data.RowID]data.Row)
	return nil
}

func (f *fakeStore) InsertRow(schema *object.Schema, row data.Row) (data.RowID, error) {
	f.inserts++
	f.nextID[schema.Table]++
	id := f.nextID[schema.Table]
	f.rows[schema.Table][id] = row
	return id, nil
}

func (f *fakeStore) UpdateRow(id data.RowID, schema *object.Schema, row data.Row) error {
	f.updates++
	if _, ok := f.rows[schema.Table][id]; ok {
		f.rows[schema.Table][id] = row
	}
	return nil
}

func (f *fakeStore) SelectRow(id data.RowID, schema *object.Schema) (data.Row, error) {
	f.selects++
	row, ok := f.rows[schema.Table][id]
	if !ok {
		return nil, &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	return row, nil
}

func (f *fakeStore) DeleteRow(id data.RowID, schema *object.Schema) error {
	f.deletes++
	if _, ok := f.rows[schema.Table][id]; !ok {
		return &errs.NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	delete(f.rows[schema.Table], id)
	return nil
}

func (f *fakeStore) Commit() error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits++
	return nil
}

func (f *fakeStore) Rollback() error {
	f.rollbacks++
	return nil
}
