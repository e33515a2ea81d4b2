package objmap

import (
	"database/sql"
	"fmt"
	"time"

	"objmap/errs"
	"objmap/storage"

	_ "modernc.org/sqlite"
)

// Options tune how the underlying SQLite database is opened.
type Options struct {
	// BusyTimeout is how long the engine waits on a locked database
	// before reporting a lock conflict. Defaults to 5s.
	BusyTimeout time.Duration

	// JournalMode is the SQLite journal mode. Defaults to WAL.
	JournalMode string
}

// DB owns one SQLite database and hands out units of work.
type DB struct {
	db *sql.DB
}

// Open opens the database at path with default options, creating the
// file if it does not exist. Use ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	return OpenWith(path, Options{})
}

// OpenWith opens the database at path with explicit options.
func OpenWith(path string, opts Options) (*DB, error) {
	if opts.BusyTimeout == 0 {
		opts.BusyTimeout = 5 * time.Second
	}
	if opts.JournalMode == "" {
		opts.JournalMode = "WAL"
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)",
			path, opts.BusyTimeout.Milliseconds(), opts.JournalMode)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps transaction and identity-map lifetimes
	// aligned, and keeps :memory: databases from vanishing between
	// connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &DB{db: db}, nil
}

// Begin starts a new unit of work on its own engine transaction.
func (d *DB) Begin() (*Transaction, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, errs.Storage(err)
	}
	return NewTransaction(storage.NewSQLite(tx)), nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}
