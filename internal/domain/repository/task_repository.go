package repository

import (
	"context"
	"errors"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task matches the given ID.
var ErrTaskNotFound = errors.New("task not found")

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title *string
	Todo  *string
}

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// Create persists a new task and fills in the generated ID and creation timestamp.
	Create(ctx context.Context, task *entity.Task) error

	// FindByOwner returns the owner's tasks ordered by creation time,
	// skipping offset records and returning at most limit.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Task, error)

	// UpdateByID applies a partial update and returns the merged record.
	UpdateByID(ctx context.Context, id uuid.UUID, patch TaskPatch) (*entity.Task, error)

	// DeleteByID removes a task. Returns ErrTaskNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
