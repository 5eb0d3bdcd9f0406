// Package sqlite provides SQLite implementations of store.UserStore and
// store.TaskStore using the pure-Go modernc.org/sqlite driver. It backs
// single-node deployments and the hermetic test suites.
//
// UUIDs are stored as TEXT and timestamps as INTEGER Unix milliseconds.
package sqlite
