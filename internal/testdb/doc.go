// Package testdb provides utilities specifically for database testing:
// migrated throwaway SQLite databases, opt-in PostgreSQL connections and
// rollback-only transactions for test isolation.
package testdb
