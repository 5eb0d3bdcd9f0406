package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTransactor implements store.Transactor without a database. By default
// fn runs with a nil *sql.Tx and its error is returned unchanged.
type MockTransactor struct {
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts RunInTx invocations
	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTx implements store.Transactor.
func (m *MockTransactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
