// Package postgres provides PostgreSQL implementations of store.UserStore
// and store.TaskStore on top of database/sql with the pgx driver.
// Driver errors are translated into the store package's error values.
package postgres
