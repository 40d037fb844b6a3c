package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/metrics"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskService provides task CRUD plus the cache-aside listing path.
//
// Consistency contract: every mutation invalidates the affected owner's
// cached listing synchronously, before the call returns. A caller that
// mutates and then lists therefore always observes the mutation. This is
// mandatory, not an optimization.
type TaskService interface {
	// Create validates and durably stores a new task for the owner.
	Create(ctx context.Context, ownerID uuid.UUID, title string, completed bool) (*domain.Task, error)

	// Get retrieves a task by ID, regardless of owner.
	// Returns store.ErrTaskNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner returns the owner's tasks in insertion order, serving
	// from the cache when a fresh snapshot exists.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update applies a partial patch to the task and refreshes updated_at.
	// Returns store.ErrTaskNotFound when absent, domain validation errors
	// when the patched title is too short.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task. Not idempotent: a second delete of the same
	// ID returns store.ErrTaskNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	cache     cache.Cache
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. The cache and store are shared,
// process-wide resources constructed once at startup and injected here.
func NewTaskService(
	taskStore store.TaskStore,
	taskCache cache.Cache,
	recorder metrics.Recorder,
	logger *slog.Logger,
) TaskService {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		cache:     taskCache,
		recorder:  recorder,
		logger:    logger.With("component", "task_service"),
	}
}

// Create validates and durably stores a new task for the owner.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, title string, completed bool) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, completed)
	if err != nil {
		s.logger.Debug("task creation rejected by validation", "error", err)
		return nil, err
	}

	s.recorder.RecordStoreQuery("create")
	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to store task", "error", err, "task_id", task.ID)
		return nil, err
	}

	// Invalidate before returning so the caller's next listing cannot
	// observe a snapshot taken before this mutation.
	s.cache.Invalidate(cache.ListKey(ownerID))

	s.logger.Debug("task created", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// Get retrieves a task by ID, regardless of owner.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.recorder.RecordStoreQuery("get_by_id")
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListByOwner returns the owner's tasks, serving from the cache when a
// fresh snapshot exists. On a miss the repository result is cached before
// it is returned.
func (s *TaskServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	key := cache.ListKey(ownerID)

	if value, ok := s.cache.Get(key); ok {
		if tasks, ok := value.([]*domain.Task); ok {
			s.recorder.RecordCacheHit()
			s.logger.Debug("task listing served from cache", "owner_id", ownerID)
			return tasks, nil
		}
		// A foreign value under our key means the keyspace is corrupted;
		// drop it and fall through to the repository.
		s.cache.Invalidate(key)
	}
	s.recorder.RecordCacheMiss()

	s.recorder.RecordStoreQuery("list_by_owner")
	tasks, err := s.taskStore.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "owner_id", ownerID)
		return nil, err
	}

	s.cache.Put(key, tasks)
	return tasks, nil
}

// Update applies a partial patch to the task and refreshes updated_at.
func (s *TaskServiceImpl) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	s.recorder.RecordStoreQuery("get_by_id")
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := task.Apply(patch); err != nil {
		s.logger.Debug("task update rejected by validation", "error", err, "task_id", id)
		return nil, err
	}

	s.recorder.RecordStoreQuery("update")
	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, err
	}

	s.cache.Invalidate(cache.ListKey(task.OwnerID))

	s.logger.Debug("task updated", "task_id", id, "owner_id", task.OwnerID)
	return task, nil
}

// Delete removes the task and invalidates its owner's cached listing.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// The row is fetched first because the delete path needs the owner for
	// invalidation and the store addresses deletes by ID alone.
	s.recorder.RecordStoreQuery("get_by_id")
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.RecordStoreQuery("delete")
	if err := s.taskStore.Delete(ctx, id); err != nil {
		// A concurrent delete may have won the race between the fetch and
		// this call; the owner's listing still changed, so invalidate
		// before reporting the outcome.
		s.cache.Invalidate(cache.ListKey(task.OwnerID))
		return err
	}

	s.cache.Invalidate(cache.ListKey(task.OwnerID))

	s.logger.Debug("task deleted", "task_id", id, "owner_id", task.OwnerID)
	return nil
}
