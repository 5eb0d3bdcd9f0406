package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus classifies a task. Any status may be changed to any other.
type TaskStatus string

// Possible task status values
const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskOwnerID = fmt.Errorf("%w: task owner ID cannot be empty", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: invalid task status", ErrValidation)
)

// TaskStatuses returns every valid status in workflow order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusOpen, TaskStatusInProgress, TaskStatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses(), s)
}

// invalidStatusError names every accepted status, e.g.
// "status must be one of OPEN, IN_PROGRESS, DONE".
func invalidStatusError() *ValidationError {
	names := make([]string, 0, len(TaskStatuses()))
	for _, status := range TaskStatuses() {
		names = append(names, string(status))
	}
	return NewValidationError("status", "must be one of "+strings.Join(names, ", "), ErrInvalidStatus)
}

// ParseTaskStatus converts raw input into a TaskStatus. Matching is exact;
// "open" is not accepted.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.Valid() {
		return "", invalidStatusError()
	}
	return status, nil
}

// Task is a unit of work owned by exactly one user. OwnerID is set at
// creation and never changes.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates an OPEN task for ownerID.
func NewTask(ownerID uuid.UUID, title, description string) (*Task, error) {
	now := Now()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusOpen,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}

	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}

	if !t.Status.Valid() {
		return invalidStatusError()
	}

	return nil
}

// SetStatus changes the status and bumps UpdatedAt.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.Valid() {
		return invalidStatusError()
	}
	t.Status = status
	t.UpdatedAt = Now()
	return nil
}

// TaskFilter narrows a listing. Zero value matches every task.
// Status and Search are ANDed when both are set.
type TaskFilter struct {
	Status *TaskStatus
	// Search is matched case-insensitively as a substring of Title or Description.
	Search string
}

// HasStatus reports whether the filter restricts by status.
func (f TaskFilter) HasStatus() bool {
	return f.Status != nil
}

// HasSearch reports whether the filter restricts by search text.
func (f TaskFilter) HasSearch() bool {
	return f.Search != ""
}

// Matches applies the filter to a single task.
func (f TaskFilter) Matches(t *Task) bool {
	if f.HasStatus() && t.Status != *f.Status {
		return false
	}
	if f.HasSearch() {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// TaskQuery is a listing request as received from a client, before the
// status has been checked.
type TaskQuery struct {
	Status string
	Search string
}

// Filter validates q and converts it into a TaskFilter. An empty Status
// means no status restriction.
func (q TaskQuery) Filter() (TaskFilter, error) {
	filter := TaskFilter{Search: q.Search}
	if q.Status != "" {
		status, err := ParseTaskStatus(q.Status)
		if err != nil {
			return TaskFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}
