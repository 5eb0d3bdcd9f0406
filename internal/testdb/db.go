package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/database"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// DatabaseURLEnv names the variable that enables PostgreSQL tests.
const DatabaseURLEnv = "DATABASE_URL"

// IsIntegrationTestEnvironment returns true if DATABASE_URL is set,
// indicating that PostgreSQL tests can be run.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(DatabaseURLEnv) != ""
}

// OpenSQLite creates a fresh, fully migrated SQLite database in a temporary
// directory. It is closed when the test finishes.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: database.DriverSQLite,
		URL:    "file:" + filepath.Join(t.TempDir(), "test.db"),
	}
	return open(t, cfg)
}

// OpenPostgres connects to the database named by DATABASE_URL and applies
// migrations. The test is skipped when the variable is unset.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL test")
	}

	cfg := config.DatabaseConfig{
		Driver:                 database.DriverPostgres,
		URL:                    os.Getenv(DatabaseURLEnv),
		MaxOpenConns:           5,
		MaxIdleConns:           5,
		ConnMaxLifetimeMinutes: 5,
	}
	return open(t, cfg)
}

func open(t *testing.T, cfg config.DatabaseConfig) *sql.DB {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := database.Open(ctx, cfg, log)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := database.NewMigrator(db, cfg.Driver, log)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx), "failed to migrate test database")

	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
