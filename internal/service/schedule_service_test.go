package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/entity"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateNotFoundError
	stateUserNotFoundError
)

// Variables for tests
var (
	userID       = uuid.New()
	scheduleID   = uuid.New()
	testSchedule = entity.Schedule{
		ID:           scheduleID,
		Title:        "vacuum living room",
		Category:     "cleaning",
		IntervalDays: 7,
		IsBoth:       true,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type scheduleRepoMock struct {
	state mockState

	createdSchedule  *entity.Schedule
	createdStartDate time.Time
}

func (srmock *scheduleRepoMock) Create(ctx context.Context, schedule *entity.Schedule, startDate time.Time) (uuid.UUID, error) {
	switch srmock.state {
	case stateUserNotFoundError:
		return uuid.UUID{}, errorvalues.ErrUserNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		srmock.createdSchedule = schedule
		srmock.createdStartDate = startDate
		return scheduleID, nil
	}
}

func (srmock *scheduleRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	switch srmock.state {
	case stateNotFoundError:
		return nil, errorvalues.ErrScheduleNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		s := testSchedule
		return &s, nil
	}
}

func (srmock *scheduleRepoMock) List(ctx context.Context) ([]*entity.ScheduleOverview, error) {
	switch srmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []*entity.ScheduleOverview{
			{Schedule: testSchedule, CompletedCount: 3},
		}, nil
	}
}

func (srmock *scheduleRepoMock) Update(ctx context.Context, schedule *entity.Schedule) error {
	switch srmock.state {
	case stateNotFoundError:
		return errorvalues.ErrScheduleNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (srmock *scheduleRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch srmock.state {
	case stateNotFoundError:
		return errorvalues.ErrScheduleNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestCreateSchedule(t *testing.T) {
	mock := &scheduleRepoMock{state: stateSuccess}
	s := service.NewScheduleService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		result, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:        testSchedule.Title,
			Category:     testSchedule.Category,
			IntervalDays: testSchedule.IntervalDays,
			IsBoth:       true,
			CreatedBy:    userID,
		})
		assert.NoError(t, err)
		assert.Equal(t, testSchedule, *result)
	})
	t.Run("interval defaults to a week", func(t *testing.T) {
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:     testSchedule.Title,
			CreatedBy: userID,
		})
		assert.NoError(t, err)
		assert.Equal(t, 7, mock.createdSchedule.IntervalDays)
	})
	t.Run("explicit start date is normalized", func(t *testing.T) {
		start := time.Date(2024, time.January, 8, 18, 45, 0, 0, time.UTC)
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:     testSchedule.Title,
			CreatedBy: userID,
			StartDate: &start,
		})
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), mock.createdStartDate)
	})
	t.Run("validation error on empty title", func(t *testing.T) {
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			CreatedBy: userID,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("assignment conflict", func(t *testing.T) {
		assignee := uuid.New()
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:      testSchedule.Title,
			CreatedBy:  userID,
			AssignedTo: &assignee,
			IsBoth:     true,
		})
		assert.ErrorIs(t, err, errorvalues.ErrAssignmentConflict)
	})
	t.Run("creator not found", func(t *testing.T) {
		mock.state = stateUserNotFoundError
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:     testSchedule.Title,
			CreatedBy: userID,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Create(ctx, &service.CreateScheduleRequest{
			Title:     testSchedule.Title,
			CreatedBy: userID,
		})
		assert.Error(t, err)
	})
}

func TestUpdateSchedule(t *testing.T) {
	mock := &scheduleRepoMock{state: stateSuccess}
	s := service.NewScheduleService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		result, err := s.Update(ctx, scheduleID, &service.UpdateScheduleRequest{
			Title:        "vacuum whole flat",
			Category:     "cleaning",
			IntervalDays: 10,
			IsBoth:       true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "vacuum whole flat", result.Title)
		assert.Equal(t, 10, result.IntervalDays)
	})
	t.Run("validation error", func(t *testing.T) {
		_, err := s.Update(ctx, scheduleID, &service.UpdateScheduleRequest{
			Title: "vacuum whole flat",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		_, err := s.Update(ctx, scheduleID, &service.UpdateScheduleRequest{
			Title:        "vacuum whole flat",
			IntervalDays: 10,
		})
		assert.ErrorIs(t, err, errorvalues.ErrScheduleNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Update(ctx, scheduleID, &service.UpdateScheduleRequest{
			Title:        "vacuum whole flat",
			IntervalDays: 10,
		})
		assert.Error(t, err)
	})
}

func TestDeleteSchedule(t *testing.T) {
	mock := &scheduleRepoMock{state: stateSuccess}
	s := service.NewScheduleService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		err := s.Delete(ctx, scheduleID)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		err := s.Delete(ctx, scheduleID)
		assert.ErrorIs(t, err, errorvalues.ErrScheduleNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		err := s.Delete(ctx, scheduleID)
		assert.Error(t, err)
	})
}

func TestListSchedules(t *testing.T) {
	mock := &scheduleRepoMock{state: stateSuccess}
	s := service.NewScheduleService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		result, err := s.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(result))
		assert.Equal(t, 3, result[0].CompletedCount)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.List(ctx)
		assert.Error(t, err)
	})
}

func TestGetSchedule(t *testing.T) {
	mock := &scheduleRepoMock{state: stateSuccess}
	s := service.NewScheduleService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		result, err := s.Get(ctx, scheduleID)
		assert.NoError(t, err)
		assert.Equal(t, testSchedule, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		_, err := s.Get(ctx, scheduleID)
		assert.ErrorIs(t, err, errorvalues.ErrScheduleNotFound)
	})
}
