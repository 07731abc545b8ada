package postgres

import (
	"context"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements repository.TaskRepository using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// Create persists a new task to the database.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedOn = taskM.CreatedOn

	return nil
}

// FindByOwner returns the owner's tasks ordered by creation time.
// The sort key is explicit; store iteration order is never relied on.
func (repo *taskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Task, error) {
	var taskMs []model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_on ASC").
		Offset(offset).
		Limit(limit).
		Find(&taskMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find tasks by owner")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for i := range taskMs {
		tasks = append(tasks, toTaskDomain(&taskMs[i]))
	}

	return tasks, nil
}

// UpdateByID applies a partial update and returns the merged record.
// Concurrent updates to the same task are last-writer-wins.
func (repo *taskRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch repository.TaskPatch) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Todo != nil {
		updates["todo"] = *patch.Todo
	}

	if len(updates) > 0 {
		if err := repo.db.WithContext(ctx).Model(&taskM).Updates(updates).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update task")
		}
	}

	return toTaskDomain(&taskM), nil
}

// DeleteByID removes a task. Zero rows affected means the task never existed.
func (repo *taskRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TaskModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func toTaskDomain(taskM *model.TaskModel) *entity.Task {
	return &entity.Task{
		ID:        taskM.ID,
		Title:     taskM.Title,
		Todo:      taskM.Todo,
		UserID:    taskM.UserID,
		CreatedOn: taskM.CreatedOn,
	}
}

func fromTaskDomain(task *entity.Task) *model.TaskModel {
	return &model.TaskModel{
		ID:     task.ID,
		Title:  task.Title,
		Todo:   task.Todo,
		UserID: task.UserID,
	}
}
