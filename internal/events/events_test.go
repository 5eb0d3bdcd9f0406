package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(uuid.New(), "Test", "desc")
	require.NoError(t, err)
	return task
}

func TestNewTaskEvent(t *testing.T) {
	task := newTestTask(t)

	event, err := NewTaskEvent(TaskStatusChanged, task, StatusChange{
		From: domain.TaskStatusOpen,
		To:   domain.TaskStatusDone,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TaskStatusChanged, event.Type)
	assert.Equal(t, task.ID, event.TaskID)
	assert.Equal(t, task.OwnerID, event.OwnerID)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, 2*time.Second)

	var change StatusChange
	require.NoError(t, event.UnmarshalPayload(&change))
	assert.Equal(t, domain.TaskStatusOpen, change.From)
	assert.Equal(t, domain.TaskStatusDone, change.To)
}

func TestNewTaskEventWithoutPayload(t *testing.T) {
	event, err := NewTaskEvent(TaskDeleted, newTestTask(t), nil)
	require.NoError(t, err)
	assert.Nil(t, event.Payload)
}

func TestNewTaskEventBadPayload(t *testing.T) {
	_, err := NewTaskEvent(TaskCreated, newTestTask(t), make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *TaskEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}
