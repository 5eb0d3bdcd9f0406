package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/database"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	authService  auth.Service
	taskService  service.TaskService
	eventEmitter *events.InMemoryEventEmitter
}

// newStores returns the store implementations for the configured backend.
func newStores(driver string, db *sql.DB, logger *slog.Logger) (store.UserStore, store.TaskStore, error) {
	switch driver {
	case database.DriverPostgres:
		return postgres.NewPostgresUserStore(db, logger), postgres.NewPostgresTaskStore(db, logger), nil
	case database.DriverSQLite:
		return sqlite.NewSQLiteUserStore(db, logger), sqlite.NewSQLiteTaskStore(db, logger), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, driver)
	}
}

// newApplication wires stores, services and the event system over an open,
// migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.userStore, app.taskStore, err = newStores(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	credentials, err := auth.NewCredentialStore(app.userStore, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("bcrypt_cost", hasher.Cost()))

	app.authService, err = auth.NewService(credentials, tokens, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		store.NewSQLTransactor(db),
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
