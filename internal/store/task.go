package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Scoping is deliberately asymmetric: ListByOwner is the only owner-scoped
// operation. GetByID, Update, and Delete address tasks by ID alone and do
// not check ownership. The asymmetry mirrors the service's external
// contract and is covered by tests; do not "fix" it here.
type TaskStore interface {
	// Create durably saves a new task. The task must have been built by
	// domain.NewTask, so it already carries its ID, owner, and timestamps.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of owner.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner returns the tasks whose owner matches, in insertion
	// order. Returns an empty slice, not an error, when none exist.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update persists the task's current title, completed flag, and
	// updated_at. Returns ErrTaskNotFound if no task has that ID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task. Not idempotent: deleting twice yields
	// ErrTaskNotFound on the second call.
	Delete(ctx context.Context, id uuid.UUID) error
}
