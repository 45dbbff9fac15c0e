package recurrence_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDue(t *testing.T) {
	anchor := date(2024, time.January, 1)
	cases := []struct {
		name      string
		today     time.Time
		state     entity.DueState
		remaining int
	}{
		{"due exactly on due date", date(2024, time.January, 8), entity.StateDue, 0},
		{"overdue past due date", date(2024, time.January, 10), entity.StateOverdue, -2},
		{"upcoming before due date", date(2024, time.January, 5), entity.StateUpcoming, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := recurrence.Due(anchor, 7, tc.today)
			assert.Equal(t, tc.state, status.State)
			assert.Equal(t, tc.remaining, status.DaysRemaining)
			assert.Equal(t, date(2024, time.January, 8), status.DueDate)
		})
	}
}

func TestDueStripsTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC)
	today := time.Date(2024, time.January, 8, 1, 15, 0, 0, time.UTC)
	status := recurrence.Due(anchor, 7, today)
	assert.Equal(t, entity.StateDue, status.State)
	assert.Equal(t, 0, status.DaysRemaining)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, recurrence.DaysBetween(date(2024, time.January, 1), date(2024, time.January, 8)))
	assert.Equal(t, -7, recurrence.DaysBetween(date(2024, time.January, 8), date(2024, time.January, 1)))
	assert.Equal(t, 0, recurrence.DaysBetween(date(2024, time.January, 1), date(2024, time.January, 1)))
	// Across a DST change in local wall time the calendar difference stays exact.
	loc, err := time.LoadLocation("Europe/Berlin")
	if err == nil {
		from := time.Date(2024, time.March, 30, 12, 0, 0, 0, loc)
		to := time.Date(2024, time.April, 1, 12, 0, 0, 0, loc)
		assert.Equal(t, 2, recurrence.DaysBetween(from, to))
	}
}

func TestAppliesOn(t *testing.T) {
	reference := date(2024, time.January, 1) // a Monday
	cases := []struct {
		name      string
		candidate time.Time
		applies   bool
	}{
		{"two weeks after reference", date(2024, time.January, 15), true},
		{"one week after reference", date(2024, time.January, 8), false},
		{"wrong weekday", date(2024, time.January, 2), false},
		{"reference date itself", date(2024, time.January, 1), true},
		{"two weeks before reference", date(2023, time.December, 18), true},
		{"one week before reference", date(2023, time.December, 25), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.applies, recurrence.AppliesOn(tc.candidate, 1, 2, &reference))
		})
	}
}

func TestAppliesOnWeekly(t *testing.T) {
	// interval 1 or missing reference: every matching weekday applies.
	assert.True(t, recurrence.AppliesOn(date(2024, time.January, 8), 1, 1, nil))
	assert.True(t, recurrence.AppliesOn(date(2024, time.January, 8), 1, 3, nil))
	assert.False(t, recurrence.AppliesOn(date(2024, time.January, 9), 1, 1, nil))
}

func TestProjectGhost(t *testing.T) {
	schedule := &entity.Schedule{
		ID:           uuid.New(),
		Title:        "vacuum living room",
		Category:     "cleaning",
		IntervalDays: 7,
	}
	open := &entity.TaskOccurrence{
		ScheduleID: &schedule.ID,
		Title:      schedule.Title,
		Date:       date(2024, time.January, 8),
	}
	ghost := recurrence.ProjectGhost(schedule, open)
	if assert.NotNil(t, ghost) {
		assert.Equal(t, date(2024, time.January, 15), ghost.Date)
		assert.Equal(t, "vacuum living room", ghost.Title)
		assert.Equal(t, "cleaning", ghost.Category)
	}

	assert.Nil(t, recurrence.ProjectGhost(schedule, nil))

	completedAt := time.Now()
	open.CompletedAt = &completedAt
	assert.Nil(t, recurrence.ProjectGhost(schedule, open))
}

func TestWeekBucket(t *testing.T) {
	// ISO weeks are Thursday-anchored: the edges of a calendar year may
	// bucket into the neighboring ISO year.
	year, week := recurrence.WeekBucket(date(2023, time.January, 1))
	assert.Equal(t, 2022, year)
	assert.Equal(t, 52, week)

	year, week = recurrence.WeekBucket(date(2024, time.December, 31))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 1, week)

	year, week = recurrence.WeekBucket(date(2024, time.June, 6))
	assert.Equal(t, 2024, year)
	assert.Equal(t, 23, week)
}

func TestMonthWeekSpan(t *testing.T) {
	t.Run("mid-year month", func(t *testing.T) {
		firstWeek, lastWeek := recurrence.MonthWeekSpan(date(2024, time.February, 15))
		assert.Equal(t, 5, firstWeek)
		assert.Equal(t, 9, lastWeek)
	})
	t.Run("december ends in next year's week 1", func(t *testing.T) {
		// 2024-12-31 is ISO 2025 week 1; the span must stay within 2024.
		firstWeek, lastWeek := recurrence.MonthWeekSpan(date(2024, time.December, 15))
		assert.Equal(t, 48, firstWeek)
		assert.Equal(t, 52, lastWeek)
	})
	t.Run("january starts in prior year's week 53", func(t *testing.T) {
		// 2027-01-01 is ISO 2026 week 53; the span must start at week 1.
		firstWeek, lastWeek := recurrence.MonthWeekSpan(date(2027, time.January, 15))
		assert.Equal(t, 1, firstWeek)
		assert.Equal(t, 4, lastWeek)
	})
}
