package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("valid task starts open", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(ownerID, "Buy milk", "")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, ownerID, task.OwnerID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Empty(t, task.Description)
		assert.Equal(t, TaskStatusOpen, task.Status)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	tests := []struct {
		name    string
		ownerID uuid.UUID
		title   string
		field   string
		wantErr error
	}{
		{name: "empty title", ownerID: ownerID, title: "", field: "title", wantErr: ErrValidation},
		{name: "whitespace title", ownerID: ownerID, title: "   ", field: "title", wantErr: ErrValidation},
		{name: "nil owner", ownerID: uuid.Nil, title: "Walk dog", wantErr: ErrEmptyTaskOwnerID},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task, err := NewTask(tc.ownerID, tc.title, "desc")
			assert.Nil(t, task)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			if tc.field != "" {
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tc.field, vErr.Field)
			}
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, status := range TaskStatuses() {
		parsed, err := ParseTaskStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	for _, raw := range []string{"", "open", "Done", "CLOSED", "IN PROGRESS"} {
		_, err := ParseTaskStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "raw=%q", raw)
		assert.ErrorIs(t, err, ErrValidation, "raw=%q", raw)
		assert.EqualError(t, err, "status must be one of OPEN, IN_PROGRESS, DONE")
	}
}

func TestTaskSetStatus(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Test", "desc")
	require.NoError(t, err)
	before := task.UpdatedAt

	// any status may move to any other, including backwards
	for _, status := range []TaskStatus{TaskStatusDone, TaskStatusOpen, TaskStatusInProgress, TaskStatusDone} {
		require.NoError(t, task.SetStatus(status))
		assert.Equal(t, status, task.Status)
	}
	assert.False(t, task.UpdatedAt.Before(before))

	err = task.SetStatus("ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, TaskStatusDone, task.Status)
}

func TestTaskFilterMatches(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	milk := &Task{ID: uuid.New(), OwnerID: owner, Title: "Buy milk", Status: TaskStatusOpen}
	eggs := &Task{ID: uuid.New(), OwnerID: owner, Title: "Buy eggs", Description: "groceries", Status: TaskStatusDone}
	dog := &Task{ID: uuid.New(), OwnerID: owner, Title: "Walk dog", Status: TaskStatusOpen}
	all := []*Task{milk, eggs, dog}

	open := TaskStatusOpen
	done := TaskStatusDone

	tests := []struct {
		name   string
		filter TaskFilter
		want   []*Task
	}{
		{name: "no filter", filter: TaskFilter{}, want: all},
		{name: "status open", filter: TaskFilter{Status: &open}, want: []*Task{milk, dog}},
		{name: "search is case insensitive", filter: TaskFilter{Search: "buy"}, want: []*Task{milk, eggs}},
		{name: "search matches description", filter: TaskFilter{Search: "GROCER"}, want: []*Task{eggs}},
		{name: "status and search are anded", filter: TaskFilter{Status: &done, Search: "buy"}, want: []*Task{eggs}},
		{name: "no match", filter: TaskFilter{Search: "cat"}, want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got []*Task
			for _, task := range all {
				if tc.filter.Matches(task) {
					got = append(got, task)
				}
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTaskQueryFilter(t *testing.T) {
	t.Parallel()

	filter, err := TaskQuery{}.Filter()
	require.NoError(t, err)
	assert.False(t, filter.HasStatus())
	assert.False(t, filter.HasSearch())

	filter, err = TaskQuery{Status: "DONE", Search: "buy"}.Filter()
	require.NoError(t, err)
	require.True(t, filter.HasStatus())
	assert.Equal(t, TaskStatusDone, *filter.Status)
	assert.Equal(t, "buy", filter.Search)

	_, err = TaskQuery{Status: "done"}.Filter()
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Field)
}
