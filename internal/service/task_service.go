package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides owner-scoped task operations. ownerID always comes
// from the authenticated identity, never from client input.
type TaskService interface {
	// CreateTask creates an OPEN task owned by ownerID.
	CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string) (*domain.Task, error)

	// GetTasks lists ownerID's tasks in creation order, narrowed by query.
	GetTasks(ctx context.Context, ownerID uuid.UUID, query domain.TaskQuery) ([]*domain.Task, error)

	// GetTaskByID returns one of ownerID's tasks.
	GetTaskByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTaskStatus sets the status of one of ownerID's tasks and returns
	// the updated task.
	UpdateTaskStatus(ctx context.Context, ownerID, taskID uuid.UUID, status string) (*domain.Task, error)

	// DeleteTask removes one of ownerID's tasks.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks   store.TaskStore
	tx      store.Transactor
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil. A nil
// emitter disables task events.
func NewTaskService(
	tasks store.TaskStore,
	tx store.Transactor,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:   tasks,
		tx:      tx,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, title, description)
	if err != nil {
		log.Debug("rejected task", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, NewTaskServiceError("create_task", "owner rejected by store", err)
		}
		return nil, classifyError("create_task", "failed to save task", err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	s.emit(ctx, events.TaskCreated, task, events.TaskSnapshot{Title: task.Title, Status: task.Status})
	return task, nil
}

// GetTasks implements TaskService.GetTasks
func (s *taskServiceImpl) GetTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	query domain.TaskQuery,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, ownerID, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTaskServiceError("get_tasks", "failed to list tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, taskID, ownerID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to get task",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()))
		}
		return nil, classifyError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
// The read and the write happen in one transaction.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	status string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	newStatus, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		updated  *domain.Task
		previous domain.TaskStatus
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, taskID, ownerID)
		if err != nil {
			return err
		}

		previous = task.Status
		if err := task.SetStatus(newStatus); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update task status",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()))
		}
		return nil, classifyError("update_task_status", "failed to update task", err)
	}

	log.Debug("task status updated",
		slog.String("task_id", taskID.String()),
		slog.String("from", string(previous)),
		slog.String("to", string(newStatus)))
	if previous != newStatus {
		s.emit(ctx, events.TaskStatusChanged, updated, events.StatusChange{From: previous, To: newStatus})
	}
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, taskID, ownerID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()))
		}
		return classifyError("delete_task", "failed to delete task", err)
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	s.emit(ctx, events.TaskDeleted, &domain.Task{ID: taskID, OwnerID: ownerID}, nil)
	return nil
}

// emit publishes a task event. The change is already persisted, so a
// failing handler is logged and otherwise ignored.
func (s *taskServiceImpl) emit(ctx context.Context, eventType events.EventType, task *domain.Task, payload any) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, task, payload)
	if err != nil {
		log.Warn("failed to build task event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("task event handler failed",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
	}
}
