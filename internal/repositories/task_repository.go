package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskFilter struct {
	OwnerID    string
	Status     constants.TaskStatus
	Categories []constants.Category
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.Version == 0 {
		task.Version = 1
	}
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Categories != nil {
		if len(filter.Categories) == 0 {
			return []model.Task{}, nil
		}
		query = query.Where("category IN ?", filter.Categories)
	}

	tasks := []model.Task{}
	err := query.Order("created_at desc").Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	return r.List(ctx, TaskFilter{OwnerID: ownerID})
}

// Update writes the task when its stored version still matches and bumps
// the version. Every write to a task's sub-graph goes through here, so a
// stale writer surfaces as ErrOptimisticLock.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"name":                   task.Name,
			"description":            task.Description,
			"category":               task.Category,
			"hourly_rate":            task.HourlyRate,
			"currency":               task.Currency,
			"expected_working_hours": task.ExpectedWorkingHours,
			"expected_start_date":    task.ExpectedStartDate,
			"status":                 task.Status,
			"updated_at":             task.UpdatedAt,
			"version":                gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}
