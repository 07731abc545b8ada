package impl

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/errors"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// Caps keep (page-1)*limit far from integer overflow; past the cap a
	// negative offset would read as "no offset" in the store and serve
	// page 1 again.
	maxPage  = 1_000_000
	maxLimit = 100
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

// Create stores a new task for the owner.
func (srv *taskService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*usecase.TaskView, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Todo) == "" {
		return nil, domainerrors.ErrMissingTaskFields.WrapMessage("title and todo are required")
	}

	task := input.ToEntity(ownerID)
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		srv.logger.Error("Failed to create task", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.logger.Debug("Task created", slog.Any("taskID", task.ID), slog.Any("ownerID", ownerID))

	return usecase.NewTaskView(task), nil
}

// List returns one page of the owner's tasks, oldest first.
// An empty result is a distinct not-found outcome, mirroring the public API
// contract: clients probing an empty list get 404, not an empty page.
func (srv *taskService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*usecase.TaskView, error) {
	if page < 1 {
		page = defaultPage
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit

	tasks, err := srv.taskRepo.FindByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		srv.logger.Error("Failed to list tasks", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list tasks")
	}

	if len(tasks) == 0 {
		return nil, domainerrors.ErrNoTasks.WrapMessage("no tasks for this page")
	}

	views := make([]*usecase.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, usecase.NewTaskView(task))
	}

	return views, nil
}

// Update validates the identifier shape before touching the store, then
// applies a partial update with field-level validation on the patch.
func (srv *taskService) Update(ctx context.Context, rawTaskID string, input *usecase.UpdateTaskInput) (*usecase.TaskView, error) {
	taskID, err := parseTaskID(rawTaskID)
	if err != nil {
		return nil, err
	}

	patch, err := buildTaskPatch(input)
	if err != nil {
		return nil, err
	}

	task, err := srv.taskRepo.UpdateByID(ctx, taskID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("nothing to update")
		}
		srv.logger.Error("Failed to update task", slog.Any("taskID", taskID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update task")
	}

	srv.logger.Debug("Task updated", slog.Any("taskID", taskID))

	return usecase.NewTaskView(task), nil
}

// Delete validates the identifier shape before touching the store.
func (srv *taskService) Delete(ctx context.Context, rawTaskID string) error {
	taskID, err := parseTaskID(rawTaskID)
	if err != nil {
		return err
	}

	if err := srv.taskRepo.DeleteByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("nothing to delete")
		}
		srv.logger.Error("Failed to delete task", slog.Any("taskID", taskID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete task")
	}

	srv.logger.Debug("Task deleted", slog.Any("taskID", taskID))

	return nil
}

// parseTaskID rejects malformed identifiers before any store call.
func parseTaskID(raw string) (uuid.UUID, error) {
	taskID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidTaskID.WrapMessage("malformed task id")
	}

	return taskID, nil
}

// buildTaskPatch re-validates each supplied field: a present-but-empty value
// would blank a required column on the merged record.
func buildTaskPatch(input *usecase.UpdateTaskInput) (repository.TaskPatch, error) {
	patch := repository.TaskPatch{}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return patch, domainerrors.ErrValidationFailed.WrapMessage("title cannot be empty")
		}
		patch.Title = input.Title
	}
	if input.Todo != nil {
		if strings.TrimSpace(*input.Todo) == "" {
			return patch, domainerrors.ErrValidationFailed.WrapMessage("todo cannot be empty")
		}
		patch.Todo = input.Todo
	}

	return patch, nil
}
