package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, ownerID uuid.UUID, title, description string) (*domain.Task, error)
	GetTasksFn         func(ctx context.Context, ownerID uuid.UUID, query domain.TaskQuery) ([]*domain.Task, error)
	GetTaskByIDFn      func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	UpdateTaskStatusFn func(ctx context.Context, ownerID, taskID uuid.UUID, status string) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, ownerID, taskID uuid.UUID) error

	// Default return values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, ownerID, title, description)
	}
	return m.Task, m.Err
}

// GetTasks implements service.TaskService
func (m *MockTaskService) GetTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	query domain.TaskQuery,
) ([]*domain.Task, error) {
	if m.GetTasksFn != nil {
		return m.GetTasksFn(ctx, ownerID, query)
	}
	return m.Tasks, m.Err
}

// GetTaskByID implements service.TaskService
func (m *MockTaskService) GetTaskByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetTaskByIDFn != nil {
		return m.GetTaskByIDFn(ctx, ownerID, taskID)
	}
	return m.Task, m.Err
}

// UpdateTaskStatus implements service.TaskService
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	status string,
) (*domain.Task, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, ownerID, taskID, status)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, ownerID, taskID)
	}
	return m.Err
}
