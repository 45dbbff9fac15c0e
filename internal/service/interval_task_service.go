package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

const defaultHistoryLimit = 20

type IntervalTaskService struct {
	repo repository.IntervalTasksRepositoryI
}

func NewIntervalTaskService(intervalTasksRepo repository.IntervalTasksRepositoryI) *IntervalTaskService {
	if intervalTasksRepo == nil {
		log.Fatal("provided nil intervalTasksRepo")
	}
	return &IntervalTaskService{
		repo: intervalTasksRepo,
	}
}

// derive fills the read-time fields: the anchor is the latest completion, or
// the creation time when the task was never completed.
func derive(task *entity.IntervalTask, today time.Time) {
	anchor := task.CreatedAt
	if task.LastCompletedAt != nil {
		anchor = *task.LastCompletedAt
	}
	status := recurrence.Due(anchor, task.IntervalDays, today)
	task.DueDate = status.DueDate
	task.DaysRemaining = status.DaysRemaining
	task.Status = status.State
}

func (is *IntervalTaskService) Create(ctx context.Context, req *IntervalTaskRequest, today time.Time) (*entity.IntervalTask, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	task := entity.IntervalTask{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: req.IntervalDays,
		CreatedBy:    req.CreatedBy,
	}
	id, err := is.repo.Create(ctx, &task)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	return is.Get(ctx, id, today)
}

func (is *IntervalTaskService) Get(ctx context.Context, id uuid.UUID, today time.Time) (*entity.IntervalTask, error) {
	task, err := is.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	derive(task, today)
	return task, nil
}

func (is *IntervalTaskService) List(ctx context.Context, today time.Time) ([]*entity.IntervalTask, error) {
	tasks, err := is.repo.List(ctx)
	if err != nil {
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	for _, task := range tasks {
		derive(task, today)
	}
	return tasks, nil
}

func (is *IntervalTaskService) Update(ctx context.Context, id uuid.UUID, req *IntervalTaskRequest, today time.Time) (*entity.IntervalTask, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	task, err := is.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	task.Title = req.Title
	task.Category = req.Category
	task.IntervalDays = req.IntervalDays
	if err = is.repo.Update(ctx, task); err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	derive(task, today)
	return task, nil
}

func (is *IntervalTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	err := is.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return err
		}
		return errors.New("interval tasks repository error: " + err.Error())
	}
	return nil
}

func (is *IntervalTaskService) Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	err := is.repo.Complete(ctx, id, userID, at)
	if err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return err
		}
		return errors.New("interval tasks repository error: " + err.Error())
	}
	return nil
}

func (is *IntervalTaskService) History(ctx context.Context, id uuid.UUID, limit int) ([]entity.IntervalCompletion, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	// Confirm the task exists so an unknown id reads as not-found rather
	// than as an empty log.
	if _, err := is.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, errorvalues.ErrIntervalTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	completions, err := is.repo.History(ctx, id, limit)
	if err != nil {
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	return completions, nil
}

func (is *IntervalTaskService) Categories(ctx context.Context) ([]string, error) {
	categories, err := is.repo.Categories(ctx)
	if err != nil {
		return nil, errors.New("interval tasks repository error: " + err.Error())
	}
	return categories, nil
}
