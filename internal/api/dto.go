package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/pkg/entity"
)

// Response shapes exist to keep the wire contract stable: calendar dates go
// out as YYYY-MM-DD strings, completion instants as RFC3339.

type taskResponse struct {
	ID           uuid.UUID  `json:"id"`
	ScheduleID   *uuid.UUID `json:"schedule_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Date         string     `json:"date"`
	OriginalDate string     `json:"original_date"`
	Postponed    bool       `json:"postponed"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	IsBoth       bool       `json:"is_both"`
	CompletedAt  *time.Time `json:"completed_at"`
	CompletedBy  *uuid.UUID `json:"completed_by"`
}

func toTaskResponse(t *entity.TaskOccurrence) taskResponse {
	return taskResponse{
		ID:           t.ID,
		ScheduleID:   t.ScheduleID,
		Title:        t.Title,
		Category:     t.Category,
		Date:         t.Date.Format(dateLayout),
		OriginalDate: t.OriginalDate.Format(dateLayout),
		Postponed:    !t.Date.Equal(t.OriginalDate),
		AssignedTo:   t.AssignedTo,
		IsBoth:       t.IsBoth,
		CompletedAt:  t.CompletedAt,
		CompletedBy:  t.CompletedBy,
	}
}

type ghostResponse struct {
	Ghost      bool       `json:"ghost"`
	ScheduleID uuid.UUID  `json:"schedule_id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Date       string     `json:"date"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	IsBoth     bool       `json:"is_both"`
}

func toGhostResponse(g *entity.GhostOccurrence) ghostResponse {
	return ghostResponse{
		Ghost:      true,
		ScheduleID: g.ScheduleID,
		Title:      g.Title,
		Category:   g.Category,
		Date:       g.Date.Format(dateLayout),
		AssignedTo: g.AssignedTo,
		IsBoth:     g.IsBoth,
	}
}

type rangeViewResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Tasks  []taskResponse  `json:"tasks"`
	Ghosts []ghostResponse `json:"ghosts"`
}

type scheduleOverviewResponse struct {
	entity.Schedule
	NextDate       *string `json:"next_date"`
	CompletedCount int     `json:"completed_count"`
}

func toScheduleOverviewResponse(o *entity.ScheduleOverview) scheduleOverviewResponse {
	resp := scheduleOverviewResponse{
		Schedule:       o.Schedule,
		CompletedCount: o.CompletedCount,
	}
	if o.NextDate != nil {
		next := o.NextDate.Format(dateLayout)
		resp.NextDate = &next
	}
	return resp
}

type intervalTaskResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Category        string          `json:"category"`
	IntervalDays    int             `json:"interval_days"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	LastCompletedAt *time.Time      `json:"last_completed_at"`
	DueDate         string          `json:"due_date"`
	DaysRemaining   int             `json:"days_remaining"`
	Status          entity.DueState `json:"status"`
}

func toIntervalTaskResponse(t *entity.IntervalTask) intervalTaskResponse {
	return intervalTaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Category:        t.Category,
		IntervalDays:    t.IntervalDays,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		LastCompletedAt: t.LastCompletedAt,
		DueDate:         t.DueDate.Format(dateLayout),
		DaysRemaining:   t.DaysRemaining,
		Status:          t.Status,
	}
}

type dailyEntryResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	DayOfWeek     int       `json:"day_of_week"`
	Label         string    `json:"label"`
	IntervalWeeks int       `json:"interval_weeks"`
	ReferenceDate *string   `json:"reference_date"`
}

func toDailyEntryResponse(e *entity.DailyScheduleEntry) dailyEntryResponse {
	resp := dailyEntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		DayOfWeek:     e.DayOfWeek,
		Label:         e.Label,
		IntervalWeeks: e.IntervalWeeks,
	}
	if e.ReferenceDate != nil {
		ref := e.ReferenceDate.Format(dateLayout)
		resp.ReferenceDate = &ref
	}
	return resp
}

type historyEntryResponse struct {
	ID          int        `json:"id"`
	TaskID      *uuid.UUID `json:"task_id"`
	TaskTitle   *string    `json:"task_title"`
	TaskDate    *string    `json:"task_date"`
	UserID      *uuid.UUID `json:"user_id"`
	UserName    *string    `json:"user_name"`
	Week        int        `json:"week"`
	Year        int        `json:"year"`
	CompletedAt time.Time  `json:"completed_at"`
}

func toHistoryEntryResponse(e *entity.HistoryEntry) historyEntryResponse {
	resp := historyEntryResponse{
		ID:          e.ID,
		TaskID:      e.TaskID,
		TaskTitle:   e.TaskTitle,
		UserID:      e.UserID,
		UserName:    e.UserName,
		Week:        e.Week,
		Year:        e.Year,
		CompletedAt: e.CompletedAt,
	}
	if e.TaskDate != nil {
		date := e.TaskDate.Format(dateLayout)
		resp.TaskDate = &date
	}
	return resp
}
