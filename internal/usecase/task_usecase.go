// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Title string `json:"title" validate:"required"`
	Todo  string `json:"todo" validate:"required"`
}

// ToEntity builds the domain task owned by the given account.
func (in *CreateTaskInput) ToEntity(ownerID uuid.UUID) *entity.Task {
	return &entity.Task{
		Title:  in.Title,
		Todo:   in.Todo,
		UserID: ownerID,
	}
}

// UpdateTaskInput carries a partial task update. Absent fields keep their
// current value; present fields must not be empty.
type UpdateTaskInput struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Todo  *string `json:"todo" validate:"omitempty,min=1"`
}

// TaskView is the outward representation of a task.
type TaskView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Todo      string    `json:"todo"`
	UserID    uuid.UUID `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}

// NewTaskView maps a domain task onto its outward representation.
func NewTaskView(task *entity.Task) *TaskView {
	return &TaskView{
		ID:        task.ID,
		Title:     task.Title,
		Todo:      task.Todo,
		UserID:    task.UserID,
		CreatedOn: task.CreatedOn,
	}
}

// TaskUsecase defines the interface for task-related business operations.
// Task identifiers arrive as raw path strings; the usecase validates their
// shape before any store call.
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *CreateTaskInput) (*TaskView, error)
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*TaskView, error)
	Update(ctx context.Context, rawTaskID string, input *UpdateTaskInput) (*TaskView, error)
	Delete(ctx context.Context, rawTaskID string) error
}
