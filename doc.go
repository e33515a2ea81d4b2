// Package objmap is a lightweight object-relational persistence layer
// over embedded SQLite.
//
// A DB hands out units of work via Begin. Within one Transaction, every
// access to the same logical record observes a single shared in-memory
// instance: Create and Get register entries in an identity map keyed by
// (record type, row id), and all handles for the same key alias the same
// object. Pending updates and deletes flush atomically on Commit.
//
// Record types implement object.Object, normally through code emitted by
// objmap-gen. Handles enforce runtime borrow exclusivity: any number of
// shared borrows may coexist, an exclusive borrow may not coexist with
// anything, and violating this panics because it is a caller bug, not a
// runtime condition.
//
// The package is synchronous and single-threaded by contract: a
// Transaction must not be shared across goroutines.
package objmap
