package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TitleMinLength is the minimum title length in characters, counted after
// trimming. Characters, not bytes: a single multi-byte rune counts as one.
const TitleMinLength = 3

// Task represents a single to-do item belonging to exactly one user.
// A task is only visible through listings scoped to its owner; lookup
// by ID is deliberately unscoped (see the store contract).
type Task struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. It trims the title,
// generates the task ID, and stamps creation/update times.
// Returns a validation error if the title is too short or the owner is missing.
func NewTask(ownerID uuid.UUID, title string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the Task satisfies its invariants.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}
	if utf8.RuneCountInString(strings.TrimSpace(t.Title)) < TitleMinLength {
		return ErrTitleTooShort
	}
	return nil
}

// TaskPatch describes a partial update to a task. Nil fields are left
// unchanged.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Apply applies the patch to the task, refreshing UpdatedAt. The patched
// title is re-validated so an update cannot shrink a title below the
// creation-time minimum.
func (t *Task) Apply(patch TaskPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if utf8.RuneCountInString(title) < TitleMinLength {
			return ErrTitleTooShort
		}
		t.Title = title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}
