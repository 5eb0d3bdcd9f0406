// Package store defines the persistence contracts for users and tasks.
// Implementations live under internal/platform (postgres, sqlite); the
// service layer depends only on these interfaces and on the errors below.
//
// Every task lookup is scoped by owner: a task that exists but belongs to
// someone else is reported exactly like a task that does not exist.
package store
