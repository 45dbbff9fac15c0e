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

// defaultIntervalDays is used when create requests leave the interval out;
// household chores default to a weekly rhythm.
const defaultIntervalDays = 7

type ScheduleService struct {
	repo repository.SchedulesRepositoryI
}

func NewScheduleService(schedulesRepo repository.SchedulesRepositoryI) *ScheduleService {
	if schedulesRepo == nil {
		log.Fatal("provided nil schedulesRepo")
	}
	return &ScheduleService{
		repo: schedulesRepo,
	}
}

func (ss *ScheduleService) Create(ctx context.Context, req *CreateScheduleRequest) (*entity.Schedule, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if req.IsBoth && req.AssignedTo != nil {
		return nil, errorvalues.ErrAssignmentConflict
	}
	interval := req.IntervalDays
	if interval == 0 {
		interval = defaultIntervalDays
	}
	startDate := recurrence.DateOnly(time.Now())
	if req.StartDate != nil {
		startDate = recurrence.DateOnly(*req.StartDate)
	}
	schedule := entity.Schedule{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: interval,
		AssignedTo:   req.AssignedTo,
		IsBoth:       req.IsBoth,
		CreatedBy:    req.CreatedBy,
	}
	id, err := ss.repo.Create(ctx, &schedule, startDate)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	created, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	return created, nil
}

func (ss *ScheduleService) Update(ctx context.Context, id uuid.UUID, req *UpdateScheduleRequest) (*entity.Schedule, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if req.IsBoth && req.AssignedTo != nil {
		return nil, errorvalues.ErrAssignmentConflict
	}
	schedule, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return nil, err
		}
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	schedule.Title = req.Title
	schedule.Category = req.Category
	schedule.IntervalDays = req.IntervalDays
	schedule.AssignedTo = req.AssignedTo
	schedule.IsBoth = req.IsBoth
	if err = ss.repo.Update(ctx, schedule); err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return nil, err
		}
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	return schedule, nil
}

func (ss *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := ss.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return err
		}
		return errors.New("schedules repository error: " + err.Error())
	}
	return nil
}

func (ss *ScheduleService) List(ctx context.Context) ([]*entity.ScheduleOverview, error) {
	overviews, err := ss.repo.List(ctx)
	if err != nil {
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	return overviews, nil
}

func (ss *ScheduleService) Get(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	schedule, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return nil, err
		}
		return nil, errors.New("schedules repository error: " + err.Error())
	}
	return schedule, nil
}
