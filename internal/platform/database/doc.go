// Package database opens the SQL connection pool for the configured backend
// (PostgreSQL through pgx, or SQLite through modernc.org/sqlite) and applies
// the schema migrations embedded in this package with goose.
package database
