package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to
// another user. Both cases produce the same error.
var ErrTaskNotFound = fmt.Errorf("%w: task not found", domain.ErrNotFound)

// TaskServiceError wraps an unexpected failure inside the task service.
// It always matches domain.ErrPersistence.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is domain.ErrPersistence.
func (e *TaskServiceError) Is(target error) bool {
	return target == domain.ErrPersistence
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// classifyError converts a store error into one of the domain error kinds.
// Missing tasks become ErrTaskNotFound, validation errors pass through and
// anything else is wrapped in a TaskServiceError.
func classifyError(operation, message string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, domain.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, domain.ErrValidation):
		return err
	default:
		return NewTaskServiceError(operation, message, err)
	}
}
