package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every method that
// reads or writes an existing task takes the owner ID and matches on it.
type TaskStore interface {
	// Create inserts a new task. The owner must exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound when no such task exists or it belongs to another user.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List returns ownerID's tasks matching filter ordered by creation time.
	// An empty result is an empty slice, not an error.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)

	// Update persists the mutable fields (status and updated_at) of task.
	// The row is matched on both task.ID and task.OwnerID.
	// Returns ErrTaskNotFound when nothing matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound when nothing matched, so a repeated delete fails.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
