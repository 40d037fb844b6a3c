package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore that counts operations so
// tests can observe whether the cache-aside path touched the repository.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	order []uuid.UUID

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	copied := *task
	f.tasks[task.ID] = &copied
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	result := make([]*domain.Task, 0)
	for _, id := range f.order {
		if task, ok := f.tasks[id]; ok && task.OwnerID == ownerID {
			copied := *task
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTaskService(t *testing.T) (TaskService, *fakeTaskStore, *cache.TTLCache) {
	t.Helper()
	taskStore := newFakeTaskStore()
	taskCache := cache.New(time.Minute, 0)
	t.Cleanup(taskCache.Close)
	svc := NewTaskService(taskStore, taskCache, nil, testLogger())
	return svc, taskStore, taskCache
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), ownerID, "ab", false)
	assert.ErrorIs(t, err, domain.ErrTitleTooShort, "2-char title must fail")

	task, err := svc.Create(context.Background(), ownerID, "abc", false)
	require.NoError(t, err, "3-char title must succeed")
	assert.False(t, task.Completed, "completed must default to false")
}

func TestListByOwnerCacheAside(t *testing.T) {
	t.Parallel()
	svc, taskStore, _ := newTestTaskService(t)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	first, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, taskStore.listCalls, "first listing must hit the repository")

	second, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, taskStore.listCalls, "second listing within TTL must be a cache hit")
	assert.Equal(t, first, second, "cache hit must return the identical snapshot")
}

func TestOwnerIsolation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerA := uuid.New()
	ownerB := uuid.New()

	created, err := svc.Create(context.Background(), ownerA, "Buy milk", false)
	require.NoError(t, err)

	listA, err := svc.ListByOwner(context.Background(), ownerA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, created.ID, listA[0].ID)

	listB, err := svc.ListByOwner(context.Background(), ownerB)
	require.NoError(t, err)
	assert.Empty(t, listB, "owner B must not see owner A's tasks")
}

func TestCreateInvalidatesListing(t *testing.T) {
	t.Parallel()
	svc, taskStore, _ := newTestTaskService(t)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), ownerID, "first task", false)
	require.NoError(t, err)

	listed, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = svc.Create(context.Background(), ownerID, "second task", false)
	require.NoError(t, err)

	listed, err = svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, listed, 2, "listing after create must observe the mutation")
	assert.Equal(t, 2, taskStore.listCalls, "create must have invalidated the cached listing")
}

func TestUpdateInvalidatesListing(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	_, err = svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(context.Background(), task.ID, domain.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt) || updated.UpdatedAt.Equal(task.UpdatedAt))

	listed, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Completed, "listing after update must observe the mutation")
}

func TestUpdateRejectsShortTitle(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	short := "ab"
	_, err = svc.Update(context.Background(), task.ID, domain.TaskPatch{Title: &short})
	assert.ErrorIs(t, err, domain.ErrTitleTooShort)
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)

	done := true
	_, err := svc.Update(context.Background(), uuid.New(), domain.TaskPatch{Completed: &done})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestDeleteInvalidatesListing(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	listed, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.Delete(context.Background(), task.ID))

	listed, err = svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, listed, "listing after delete must observe the mutation")
}

func TestDoubleDelete(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), task.ID))

	err = svc.Delete(context.Background(), task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound,
		"second delete must report not found, not crash or silently succeed")
}

func TestExpiredCacheRefetchesFromStore(t *testing.T) {
	t.Parallel()
	taskStore := newFakeTaskStore()
	// A zero TTL expires every entry immediately, forcing a repository
	// re-fetch each time the listing is requested.
	taskCache := cache.New(0, 0)
	t.Cleanup(taskCache.Close)
	svc := NewTaskService(taskStore, taskCache, nil, testLogger())
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, "Buy milk", false)
	require.NoError(t, err)

	first, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)

	second, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Equal(t, 2, taskStore.listCalls, "expired entries must force a repository access")
	require.Len(t, second, 1)
	assert.Equal(t, created.ID, second[0].ID, "re-fetch must return the durably stored task")
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestGetUnscopedByOwner(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTaskService(t)

	// Lookup by ID works regardless of who asks; there is no owner check
	// on this path.
	task, err := svc.Create(context.Background(), uuid.New(), "Buy milk", false)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
