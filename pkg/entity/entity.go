package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DueState is the derived urgency of a recurring task relative to today.
type DueState string

const (
	StateOverdue  DueState = "overdue"
	StateDue      DueState = "due"
	StateUpcoming DueState = "upcoming"
)

// Assignment tells who a task is for. AssignedTo and IsBoth are mutually
// exclusive: IsBoth means the whole household, no single assignee.
type Assignment struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
	IsBoth     bool       `json:"is_both"`
}

// Schedule is a recurrence definition. Every IntervalDays it produces one
// dated TaskOccurrence.
type Schedule struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	IntervalDays int        `json:"interval_days"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	IsBoth       bool       `json:"is_both"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ScheduleOverview enriches a schedule with the date of its open occurrence
// and how many occurrences were completed so far.
type ScheduleOverview struct {
	Schedule
	NextDate       *time.Time `json:"next_date"`
	CompletedCount int        `json:"completed_count"`
}

// TaskOccurrence is one dated instance of a schedule, or a standalone task
// when ScheduleID is nil. OriginalDate is set once at generation and never
// changes; Date may only move forward (postpone, housekeeping).
type TaskOccurrence struct {
	ID           uuid.UUID  `json:"id"`
	ScheduleID   *uuid.UUID `json:"schedule_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Date         time.Time  `json:"date"`
	OriginalDate time.Time  `json:"original_date"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	IsBoth       bool       `json:"is_both"`
	CompletedAt  *time.Time `json:"completed_at"`
	CompletedBy  *uuid.UUID `json:"completed_by"`
}

// Open reports whether the occurrence still awaits completion.
func (t *TaskOccurrence) Open() bool {
	return t.CompletedAt == nil
}

// GhostOccurrence is a non-persisted preview of the occurrence that will
// follow the currently open one. It is a separate type on purpose: lifecycle
// operations take a TaskOccurrence id and a ghost has none, so a preview can
// never be completed, edited or deleted.
type GhostOccurrence struct {
	ScheduleID uuid.UUID  `json:"schedule_id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Date       time.Time  `json:"date"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	IsBoth     bool       `json:"is_both"`
}

// IntervalTask is a recurring task without dated occurrences. The derived
// fields are never stored; services fill them from the completion log on
// every read.
type IntervalTask struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	IntervalDays int       `json:"interval_days"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`

	// Derived per read, never persisted.
	LastCompletedAt *time.Time `json:"last_completed_at"`
	DueDate         time.Time  `json:"due_date"`
	DaysRemaining   int        `json:"days_remaining"`
	Status          DueState   `json:"status"`
}

// IntervalCompletion is an append-only log row. Rows are never mutated and
// only disappear when their task is deleted.
type IntervalCompletion struct {
	ID          int        `json:"id"`
	TaskID      uuid.UUID  `json:"task_id"`
	UserID      *uuid.UUID `json:"user_id"`
	CompletedAt time.Time  `json:"completed_at"`
}

// DailyScheduleEntry is a recurring "who is where on which weekday" entry,
// independent of the task system. DayOfWeek follows time.Weekday
// (0 = Sunday .. 6 = Saturday). ReferenceDate is only meaningful when
// IntervalWeeks > 1.
type DailyScheduleEntry struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	DayOfWeek     int        `json:"day_of_week"`
	Label         string     `json:"label"`
	IntervalWeeks int        `json:"interval_weeks"`
	ReferenceDate *time.Time `json:"reference_date"`
}

// HistoryEntry is a completed-task record joined with display data. Task and
// user references may be orphaned (deleted since); those fields stay nil and
// the row is still returned.
type HistoryEntry struct {
	ID          int        `json:"id"`
	TaskID      *uuid.UUID `json:"task_id"`
	TaskTitle   *string    `json:"task_title"`
	TaskDate    *time.Time `json:"task_date"`
	UserID      *uuid.UUID `json:"user_id"`
	UserName    *string    `json:"user_name"`
	Week        int        `json:"week"`
	Year        int        `json:"year"`
	CompletedAt time.Time  `json:"completed_at"`
}
