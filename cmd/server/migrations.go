package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/platform/database"
)

// runMigrations executes one migration command against db.
func runMigrations(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	migrator, err := database.NewMigrator(db, driver, logger)
	if err != nil {
		return err
	}

	logger.Info("executing migrations", slog.String("command", command))
	if err := migrator.Run(ctx, command); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
