// Package storetest holds a behavioural test suite that every store.UserStore
// and store.TaskStore implementation must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns stores backed by an isolated, migrated database.
// It is called once per subtest.
type Factory func(t *testing.T) (store.UserStore, store.TaskStore)

// Run executes the full suite against the stores returned by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("user create and get", func(t *testing.T) { testUserCreateAndGet(t, newStores) })
	t.Run("user duplicate username", func(t *testing.T) { testUserDuplicate(t, newStores) })
	t.Run("username is case sensitive", func(t *testing.T) { testUsernameCaseSensitive(t, newStores) })
	t.Run("user not found", func(t *testing.T) { testUserNotFound(t, newStores) })
	t.Run("task create and get", func(t *testing.T) { testTaskCreateAndGet(t, newStores) })
	t.Run("task owner isolation", func(t *testing.T) { testTaskOwnerIsolation(t, newStores) })
	t.Run("task list filters", func(t *testing.T) { testTaskListFilters(t, newStores) })
	t.Run("task search escapes wildcards", func(t *testing.T) { testTaskSearchWildcards(t, newStores) })
	t.Run("task update status", func(t *testing.T) { testTaskUpdate(t, newStores) })
	t.Run("task delete twice", func(t *testing.T) { testTaskDelete(t, newStores) })
	t.Run("task with unknown owner", func(t *testing.T) { testTaskUnknownOwner(t, newStores) })
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// MustCreateUser inserts a user with a unique username derived from prefix.
func MustCreateUser(t *testing.T, users store.UserStore, prefix string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(prefix+"-"+uuid.NewString()[:8], "$2a$04$testhashtesthashtesthashtesthashtesthashtesthashtes")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx(t), user))
	return user
}

// MustCreateTask inserts a task whose creation time is offset from a fixed
// base so that listing order is deterministic.
func MustCreateTask(
	t *testing.T,
	tasks store.TaskStore,
	owner uuid.UUID,
	title, description string,
	status domain.TaskStatus,
	offset time.Duration,
) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, description)
	require.NoError(t, err)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	task.CreatedAt = base.Add(offset)
	task.UpdatedAt = task.CreatedAt
	task.Status = status
	require.NoError(t, tasks.Create(ctx(t), task))
	return task
}

func testUserCreateAndGet(t *testing.T, newStores Factory) {
	users, _ := newStores(t)
	user := MustCreateUser(t, users, "alice")

	byName, err := users.GetByUsername(ctx(t), user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, user.PasswordHash, byName.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(byName.CreatedAt))

	byID, err := users.GetByID(ctx(t), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)
}

func testUserDuplicate(t *testing.T, newStores Factory) {
	users, _ := newStores(t)
	first := MustCreateUser(t, users, "bob")

	dup, err := domain.NewUser(first.Username, "$2a$04$anotherhash")
	require.NoError(t, err)

	err = users.Create(ctx(t), dup)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func testUsernameCaseSensitive(t *testing.T, newStores Factory) {
	users, _ := newStores(t)
	suffix := uuid.NewString()[:8]

	lower, err := domain.NewUser("carol"+suffix, "hash")
	require.NoError(t, err)
	upper, err := domain.NewUser("CAROL"+suffix, "hash")
	require.NoError(t, err)

	require.NoError(t, users.Create(ctx(t), lower))
	require.NoError(t, users.Create(ctx(t), upper))

	got, err := users.GetByUsername(ctx(t), "CAROL"+suffix)
	require.NoError(t, err)
	assert.Equal(t, upper.ID, got.ID)
}

func testUserNotFound(t *testing.T, newStores Factory) {
	users, _ := newStores(t)

	_, err := users.GetByUsername(ctx(t), "nobody-"+uuid.NewString())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = users.GetByID(ctx(t), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func testTaskCreateAndGet(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	owner := MustCreateUser(t, users, "dave")

	task := MustCreateTask(t, tasks, owner.ID, "Test", "desc", domain.TaskStatusOpen, 0)

	got, err := tasks.GetByID(ctx(t), task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Equal(t, "Test", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, domain.TaskStatusOpen, got.Status)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
}

func testTaskOwnerIsolation(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	alice := MustCreateUser(t, users, "alice")
	mallory := MustCreateUser(t, users, "mallory")

	task := MustCreateTask(t, tasks, alice.ID, "private", "", domain.TaskStatusOpen, 0)

	_, err := tasks.GetByID(ctx(t), task.ID, mallory.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	listed, err := tasks.List(ctx(t), mallory.ID, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	hijack := *task
	hijack.OwnerID = mallory.ID
	hijack.Status = domain.TaskStatusDone
	assert.ErrorIs(t, tasks.Update(ctx(t), &hijack), store.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx(t), task.ID, mallory.ID), store.ErrTaskNotFound)

	got, err := tasks.GetByID(ctx(t), task.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, got.Status)
}

func testTaskListFilters(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	owner := MustCreateUser(t, users, "erin")
	other := MustCreateUser(t, users, "frank")

	milk := MustCreateTask(t, tasks, owner.ID, "Buy milk", "", domain.TaskStatusOpen, 0)
	eggs := MustCreateTask(t, tasks, owner.ID, "Buy eggs", "groceries", domain.TaskStatusDone, time.Second)
	dog := MustCreateTask(t, tasks, owner.ID, "Walk dog", "", domain.TaskStatusOpen, 2*time.Second)
	MustCreateTask(t, tasks, other.ID, "Buy bread", "", domain.TaskStatusOpen, 3*time.Second)
	eclair := MustCreateTask(t, tasks, owner.ID, "Éclair recipe", "Ölwechsel", domain.TaskStatusInProgress, 4*time.Second)
	all := []*domain.Task{milk, eggs, dog, eclair}

	open := domain.TaskStatusOpen
	done := domain.TaskStatusDone

	tests := []struct {
		name   string
		filter domain.TaskFilter
		want   []uuid.UUID
	}{
		{name: "all in creation order", filter: domain.TaskFilter{}, want: []uuid.UUID{milk.ID, eggs.ID, dog.ID, eclair.ID}},
		{name: "status OPEN", filter: domain.TaskFilter{Status: &open}, want: []uuid.UUID{milk.ID, dog.ID}},
		{name: "search buy", filter: domain.TaskFilter{Search: "buy"}, want: []uuid.UUID{milk.ID, eggs.ID}},
		{name: "search in description", filter: domain.TaskFilter{Search: "GROCER"}, want: []uuid.UUID{eggs.ID}},
		{name: "status and search", filter: domain.TaskFilter{Status: &done, Search: "buy"}, want: []uuid.UUID{eggs.ID}},
		{name: "no match", filter: domain.TaskFilter{Search: "zebra"}, want: []uuid.UUID{}},
		{name: "non-ascii title lower case", filter: domain.TaskFilter{Search: "éclair"}, want: []uuid.UUID{eclair.ID}},
		{name: "non-ascii title upper case", filter: domain.TaskFilter{Search: "ÉCLAIR"}, want: []uuid.UUID{eclair.ID}},
		{name: "non-ascii description", filter: domain.TaskFilter{Search: "ölwechsel"}, want: []uuid.UUID{eclair.ID}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			listed, err := tasks.List(ctx(t), owner.ID, tc.filter)
			require.NoError(t, err)
			require.NotNil(t, listed)

			got := make([]uuid.UUID, 0, len(listed))
			for _, task := range listed {
				assert.Equal(t, owner.ID, task.OwnerID)
				got = append(got, task.ID)
			}
			assert.Equal(t, tc.want, got)

			matched := make([]uuid.UUID, 0, len(all))
			for _, task := range all {
				if tc.filter.Matches(task) {
					matched = append(matched, task.ID)
				}
			}
			assert.Equal(t, matched, got, "store and domain filter disagree")
		})
	}
}

func testTaskSearchWildcards(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	owner := MustCreateUser(t, users, "gina")

	pct := MustCreateTask(t, tasks, owner.ID, "Reach 100% coverage", "", domain.TaskStatusOpen, 0)
	MustCreateTask(t, tasks, owner.ID, "Reach 1000 users", "", domain.TaskStatusOpen, time.Second)
	under := MustCreateTask(t, tasks, owner.ID, "rename snake_case", "", domain.TaskStatusOpen, 2*time.Second)
	MustCreateTask(t, tasks, owner.ID, "rename snakeXcase", "", domain.TaskStatusOpen, 3*time.Second)

	listed, err := tasks.List(ctx(t), owner.ID, domain.TaskFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, pct.ID, listed[0].ID)

	listed, err = tasks.List(ctx(t), owner.ID, domain.TaskFilter{Search: "e_c"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, under.ID, listed[0].ID)
}

func testTaskUpdate(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	owner := MustCreateUser(t, users, "hank")
	task := MustCreateTask(t, tasks, owner.ID, "Test", "desc", domain.TaskStatusOpen, 0)

	require.NoError(t, task.SetStatus(domain.TaskStatusDone))
	require.NoError(t, tasks.Update(ctx(t), task))

	got, err := tasks.GetByID(ctx(t), task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, got.Status)
	assert.True(t, task.UpdatedAt.Equal(got.UpdatedAt))
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))

	missing := *task
	missing.ID = uuid.New()
	assert.ErrorIs(t, tasks.Update(ctx(t), &missing), store.ErrTaskNotFound)
}

func testTaskDelete(t *testing.T, newStores Factory) {
	users, tasks := newStores(t)
	owner := MustCreateUser(t, users, "ivy")
	task := MustCreateTask(t, tasks, owner.ID, "Test", "", domain.TaskStatusOpen, 0)

	require.NoError(t, tasks.Delete(ctx(t), task.ID, owner.ID))
	assert.ErrorIs(t, tasks.Delete(ctx(t), task.ID, owner.ID), store.ErrTaskNotFound)

	_, err := tasks.GetByID(ctx(t), task.ID, owner.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func testTaskUnknownOwner(t *testing.T, newStores Factory) {
	_, tasks := newStores(t)

	task, err := domain.NewTask(uuid.New(), "orphan", "")
	require.NoError(t, err)

	err = tasks.Create(ctx(t), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
