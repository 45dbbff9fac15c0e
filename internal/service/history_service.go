package service

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

type HistoryService struct {
	repo repository.HistoryRepositoryI
}

func NewHistoryService(historyRepo repository.HistoryRepositoryI) *HistoryService {
	if historyRepo == nil {
		log.Fatal("provided nil historyRepo")
	}
	return &HistoryService{
		repo: historyRepo,
	}
}

// Stats filters completion records by the stored ISO week/year buckets.
// Week: the current bucket only. Month: every week number between the first
// and last day of the current month, keyed strictly on the current ISO year.
// Year: the current ISO year. All: no filter.
func (hs *HistoryService) Stats(ctx context.Context, period StatsPeriod, today time.Time) ([]*entity.HistoryEntry, error) {
	year, week := recurrence.WeekBucket(today)
	var filter repository.HistoryFilter
	switch period {
	case PeriodWeek:
		filter = repository.HistoryFilter{Year: &year, WeekFrom: &week, WeekTo: &week}
	case PeriodMonth:
		firstWeek, lastWeek := recurrence.MonthWeekSpan(today)
		filter = repository.HistoryFilter{Year: &year, WeekFrom: &firstWeek, WeekTo: &lastWeek}
	case PeriodYear:
		filter = repository.HistoryFilter{Year: &year}
	case PeriodAll:
		filter = repository.HistoryFilter{}
	default:
		return nil, errorvalues.ErrUnknownPeriod
	}
	entries, err := hs.repo.Filter(ctx, filter)
	if err != nil {
		return nil, errors.New("history repository error: " + err.Error())
	}
	return entries, nil
}
