package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/lifecycle"
	"task-market.com/task-market/internal/locks"
	"task-market.com/task-market/internal/metrics"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

const (
	minTaskNameLength        = 3
	minTaskDescriptionLength = 10
)

type TaskInput struct {
	Name                 string
	Description          string
	Category             constants.Category
	HourlyRate           decimal.Decimal
	Currency             constants.Currency
	ExpectedWorkingHours int
	ExpectedStartDate    *time.Time
}

type TaskService struct {
	store   *repository.Store
	guard   taskGuard
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     clock
}

func NewTaskService(
	store *repository.Store,
	locker locks.TaskLocker,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *TaskService {
	return &TaskService{
		store:   store,
		guard:   taskGuard{store: store, locker: locker},
		log:     log,
		metrics: m,
		now:     utcNow,
	}
}

func (in TaskInput) validate() error {
	var problems []string

	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minTaskNameLength {
		problems = append(problems, fmt.Sprintf("name must be at least %d characters", minTaskNameLength))
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < minTaskDescriptionLength {
		problems = append(problems, fmt.Sprintf("description must be at least %d characters", minTaskDescriptionLength))
	}
	if !in.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", in.Category))
	}
	if !in.Currency.Valid() {
		problems = append(problems, fmt.Sprintf("unknown currency %q", in.Currency))
	}
	if !in.HourlyRate.IsPositive() {
		problems = append(problems, "hourly rate must be greater than 0")
	}
	if in.ExpectedWorkingHours <= 0 {
		problems = append(problems, "expected working hours must be greater than 0")
	}

	if len(problems) > 0 {
		return apperrors.ErrInvalidTaskTerms.WithDetail(strings.Join(problems, "; "))
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in TaskInput) (*model.Task, error) {
	if ownerID == "" {
		return nil, apperrors.ErrActorRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	task := &model.Task{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		Name:                 strings.TrimSpace(in.Name),
		Description:          strings.TrimSpace(in.Description),
		Category:             in.Category,
		HourlyRate:           in.HourlyRate,
		Currency:             in.Currency,
		ExpectedWorkingHours: in.ExpectedWorkingHours,
		ExpectedStartDate:    in.ExpectedStartDate,
		Status:               constants.TaskOpen,
		Version:              1,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.metrics.TaskEntered(constants.TaskOpen)
	s.log.WithFields(logrus.Fields{"task_id": task.ID, "owner_id": ownerID}).Info("task created")

	return task, nil
}

// UpdateTask rewrites a task's terms. Only the owner may do so, and only
// while the task is still open.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, actingUserID string, in TaskInput) (*model.Task, error) {
	var updated *model.Task

	err := s.guard.run(ctx, taskID, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := lifecycle.RequireOwner(task, actingUserID); err != nil {
			return err
		}
		if task.Status != constants.TaskOpen {
			return apperrors.ErrTaskNotOpen
		}
		if err := in.validate(); err != nil {
			return err
		}

		task.Name = strings.TrimSpace(in.Name)
		task.Description = strings.TrimSpace(in.Description)
		task.Category = in.Category
		task.HourlyRate = in.HourlyRate
		task.Currency = in.Currency
		task.ExpectedWorkingHours = in.ExpectedWorkingHours
		task.ExpectedStartDate = in.ExpectedStartDate
		task.UpdatedAt = s.now()

		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": taskID, "actor": actingUserID}).Info("task updated")
	return updated, nil
}

// CompleteTask finalizes an in-progress task on behalf of its owner.
func (s *TaskService) CompleteTask(ctx context.Context, taskID, actingUserID string) (*model.Task, error) {
	var completed *model.Task

	err := s.guard.run(ctx, taskID, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := lifecycle.RequireOwner(task, actingUserID); err != nil {
			return err
		}
		if err := lifecycle.AdvanceTask(task, constants.TaskCompleted, s.now()); err != nil {
			return err
		}
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		completed = task
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"task_id": taskID, "actor": actingUserID}).
			WithError(err).Debug("complete task refused")
		return nil, err
	}

	s.metrics.TaskEntered(constants.TaskCompleted)
	s.log.WithFields(logrus.Fields{"task_id": taskID, "actor": actingUserID}).Info("task completed")

	return completed, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.store.Tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.ErrInvalidPayload.WithDetail(fmt.Sprintf("unknown task status %q", filter.Status))
	}
	return s.store.Tasks.List(ctx, filter)
}

// ListTasksForProvider returns the open tasks in the categories the
// provider lists skills for.
func (s *TaskService) ListTasksForProvider(ctx context.Context, providerID string) ([]model.Task, error) {
	categories, err := s.store.Skills.CategoriesForProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("load provider categories: %w", err)
	}
	if len(categories) == 0 {
		return []model.Task{}, nil
	}

	return s.store.Tasks.List(ctx, repository.TaskFilter{
		Status:     constants.TaskOpen,
		Categories: categories,
	})
}
