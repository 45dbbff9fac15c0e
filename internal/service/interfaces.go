package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/pkg/entity"
)

type CreateScheduleRequest struct {
	Title        string `validate:"required,min=1,max=200"`
	Category     string `validate:"max=100"`
	IntervalDays int    `validate:"omitempty,min=1"`
	AssignedTo   *uuid.UUID
	IsBoth       bool
	StartDate    *time.Time
	CreatedBy    uuid.UUID `validate:"required"`
}

type UpdateScheduleRequest struct {
	Title        string `validate:"required,min=1,max=200"`
	Category     string `validate:"max=100"`
	IntervalDays int    `validate:"required,min=1"`
	AssignedTo   *uuid.UUID
	IsBoth       bool
}

type CreateTaskRequest struct {
	Title      string `validate:"required,min=1,max=200"`
	Category   string `validate:"max=100"`
	Date       *time.Time
	AssignedTo *uuid.UUID
	IsBoth     bool
}

type IntervalTaskRequest struct {
	Title        string `validate:"required,min=1,max=200"`
	Category     string `validate:"max=100"`
	IntervalDays int    `validate:"required,min=1"`
	CreatedBy    uuid.UUID
}

type DailyEntryRequest struct {
	UserID        uuid.UUID `validate:"required"`
	DayOfWeek     int       `validate:"min=0,max=6"`
	Label         string    `validate:"required,min=1,max=200"`
	IntervalWeeks int       `validate:"omitempty,min=1"`
	ReferenceDate *time.Time
}

// RangeView is what "this week" queries return: persisted occurrences in
// the window plus non-actionable ghost previews.
type RangeView struct {
	Tasks  []*entity.TaskOccurrence  `json:"tasks"`
	Ghosts []*entity.GhostOccurrence `json:"ghosts"`
}

// StatsPeriod selects the completion-history window.
type StatsPeriod string

const (
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
	PeriodYear  StatsPeriod = "year"
	PeriodAll   StatsPeriod = "all"
)

type ScheduleServiceI interface {
	// Validates the definition and creates the schedule together with its
	// first open occurrence (startDate, default today)
	Create(ctx context.Context, req *CreateScheduleRequest) (*entity.Schedule, error)
	// Updates the definition; the open occurrence follows, history doesn't
	Update(ctx context.Context, id uuid.UUID, req *UpdateScheduleRequest) (*entity.Schedule, error)
	// Detaches completed occurrences, drops the open one, drops the schedule
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entity.ScheduleOverview, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
}

type TaskServiceI interface {
	// Creates an occurrence with no schedule behind it
	CreateStandalone(ctx context.Context, req *CreateTaskRequest, today time.Time) (*entity.TaskOccurrence, error)
	// Completes the occurrence, records history and, for schedule-linked
	// occurrences, returns the freshly generated successor
	Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) (*entity.TaskOccurrence, error)
	// Reopens a completed occurrence unless its successor is already open
	Uncomplete(ctx context.Context, id uuid.UUID) error
	// Moves the date forward (nil: one day); original_date never changes
	Postpone(ctx context.Context, id uuid.UUID, newDate *time.Time) (*entity.TaskOccurrence, error)
	Reassign(ctx context.Context, id uuid.UUID, assignment entity.Assignment) error
	// Deletes a standalone occurrence; schedule-linked ones are refused
	Remove(ctx context.Context, id uuid.UUID) error
	// Housekeeps as of today, then returns occurrences in [from, to] plus
	// ghost previews falling inside the window
	RangeView(ctx context.Context, from, to, today time.Time) (*RangeView, error)
	// Advances stale open occurrences to today; idempotent for a fixed today
	RunHousekeeping(ctx context.Context, today time.Time) (int, error)
}

type IntervalTaskServiceI interface {
	Create(ctx context.Context, req *IntervalTaskRequest, today time.Time) (*entity.IntervalTask, error)
	Get(ctx context.Context, id uuid.UUID, today time.Time) (*entity.IntervalTask, error)
	List(ctx context.Context, today time.Time) ([]*entity.IntervalTask, error)
	Update(ctx context.Context, id uuid.UUID, req *IntervalTaskRequest, today time.Time) (*entity.IntervalTask, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Appends to the completion log; the task row itself never changes
	Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	History(ctx context.Context, id uuid.UUID, limit int) ([]entity.IntervalCompletion, error)
	Categories(ctx context.Context) ([]string, error)
}

type DailyScheduleServiceI interface {
	Create(ctx context.Context, req *DailyEntryRequest) (*entity.DailyScheduleEntry, error)
	List(ctx context.Context) ([]*entity.DailyScheduleEntry, error)
	// Entries whose recurrence lands on the given date
	ForDate(ctx context.Context, date time.Time) ([]*entity.DailyScheduleEntry, error)
	Update(ctx context.Context, id uuid.UUID, req *DailyEntryRequest) (*entity.DailyScheduleEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type HistoryServiceI interface {
	// Completion records for the period, most recent first, joined with
	// task/user display data
	Stats(ctx context.Context, period StatsPeriod, today time.Time) ([]*entity.HistoryEntry, error)
}

type UserServiceI interface {
	Create(ctx context.Context, name string) (*entity.User, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
