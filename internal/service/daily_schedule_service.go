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

type DailyScheduleService struct {
	repo repository.DailyEntriesRepositoryI
}

func NewDailyScheduleService(dailyEntriesRepo repository.DailyEntriesRepositoryI) *DailyScheduleService {
	if dailyEntriesRepo == nil {
		log.Fatal("provided nil dailyEntriesRepo")
	}
	return &DailyScheduleService{
		repo: dailyEntriesRepo,
	}
}

func entryFromRequest(req *DailyEntryRequest) entity.DailyScheduleEntry {
	interval := req.IntervalWeeks
	if interval == 0 {
		interval = 1
	}
	var reference *time.Time
	if interval > 1 && req.ReferenceDate != nil {
		d := recurrence.DateOnly(*req.ReferenceDate)
		reference = &d
	}
	return entity.DailyScheduleEntry{
		UserID:        req.UserID,
		DayOfWeek:     req.DayOfWeek,
		Label:         req.Label,
		IntervalWeeks: interval,
		ReferenceDate: reference,
	}
}

func (ds *DailyScheduleService) Create(ctx context.Context, req *DailyEntryRequest) (*entity.DailyScheduleEntry, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	entry := entryFromRequest(req)
	id, err := ds.repo.Create(ctx, &entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("daily entries repository error: " + err.Error())
	}
	entry.ID = id
	return &entry, nil
}

func (ds *DailyScheduleService) List(ctx context.Context) ([]*entity.DailyScheduleEntry, error) {
	entries, err := ds.repo.List(ctx)
	if err != nil {
		return nil, errors.New("daily entries repository error: " + err.Error())
	}
	return entries, nil
}

func (ds *DailyScheduleService) ForDate(ctx context.Context, date time.Time) ([]*entity.DailyScheduleEntry, error) {
	entries, err := ds.repo.List(ctx)
	if err != nil {
		return nil, errors.New("daily entries repository error: " + err.Error())
	}
	matching := make([]*entity.DailyScheduleEntry, 0)
	for _, entry := range entries {
		if recurrence.AppliesOn(recurrence.DateOnly(date), entry.DayOfWeek, entry.IntervalWeeks, entry.ReferenceDate) {
			matching = append(matching, entry)
		}
	}
	return matching, nil
}

func (ds *DailyScheduleService) Update(ctx context.Context, id uuid.UUID, req *DailyEntryRequest) (*entity.DailyScheduleEntry, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	entry := entryFromRequest(req)
	entry.ID = id
	if err := ds.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) || errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("daily entries repository error: " + err.Error())
	}
	return &entry, nil
}

func (ds *DailyScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := ds.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("daily entries repository error: " + err.Error())
	}
	return nil
}
