// Package recurrence holds the pure date arithmetic of the scheduling core:
// due-status derivation, weekday/interval-week matching and ghost projection.
// Everything operates on calendar dates; time-of-day components are stripped
// before any comparison so DST transitions cannot shift a day boundary.
package recurrence

import (
	"math"
	"time"

	"github.com/hearthhold/homekeep/pkg/entity"
)

// DateOnly strips the time-of-day, keeping only the calendar components.
// The result is anchored in UTC so subtraction always yields whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// DueStatus is what the calculator derives for a recurring task.
type DueStatus struct {
	DueDate       time.Time
	DaysRemaining int
	State         entity.DueState
}

// Due computes when a task anchored at anchor with the given interval is due,
// relative to today. Interval arithmetic adds calendar days (AddDate), not
// epoch seconds.
func Due(anchor time.Time, intervalDays int, today time.Time) DueStatus {
	dueDate := DateOnly(anchor).AddDate(0, 0, intervalDays)
	remaining := DaysBetween(today, dueDate)
	state := entity.StateUpcoming
	switch {
	case remaining < 0:
		state = entity.StateOverdue
	case remaining == 0:
		state = entity.StateDue
	}
	return DueStatus{
		DueDate:       dueDate,
		DaysRemaining: remaining,
		State:         state,
	}
}

// AppliesOn decides whether a daily-schedule entry occurs on candidate.
// The weekday must match; with an interval above one week and a reference
// date set, the whole-week distance to the reference must be a multiple of
// the interval. The reference may lie in the future, so the difference is
// rounded, not truncated, before the modulo.
func AppliesOn(candidate time.Time, dayOfWeek, intervalWeeks int, referenceDate *time.Time) bool {
	if int(candidate.Weekday()) != dayOfWeek {
		return false
	}
	if intervalWeeks <= 1 || referenceDate == nil {
		return true
	}
	diffWeeks := int(math.Round(float64(DaysBetween(*referenceDate, candidate)) / 7))
	return ((diffWeeks % intervalWeeks) + intervalWeeks) % intervalWeeks == 0
}

// ProjectGhost previews the occurrence that will follow the currently open
// one. Nothing is persisted; it returns nil when the schedule has no open
// occurrence to project from.
func ProjectGhost(schedule *entity.Schedule, open *entity.TaskOccurrence) *entity.GhostOccurrence {
	if open == nil || !open.Open() {
		return nil
	}
	return &entity.GhostOccurrence{
		ScheduleID: schedule.ID,
		Title:      schedule.Title,
		Category:   schedule.Category,
		Date:       DateOnly(open.Date).AddDate(0, 0, schedule.IntervalDays),
		AssignedTo: schedule.AssignedTo,
		IsBoth:     schedule.IsBoth,
	}
}

// WeekBucket returns the ISO-8601 (year, week) pair completions are bucketed
// under. ISO weeks are Thursday-anchored, so dates near a year boundary may
// bucket into the neighboring year.
func WeekBucket(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// MonthWeekSpan returns the ISO week numbers of the first and last day of
// the month containing today. Stats for period "month" include every week in
// that span, keyed strictly on the current ISO year.
func MonthWeekSpan(today time.Time) (firstWeek, lastWeek int) {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	firstYear, firstWeek := first.ISOWeek()
	lastYear, lastWeek := last.ISOWeek()
	// January can start in the prior ISO year's week 52/53 and December can
	// end in the next year's week 1. Clamp both ends to this calendar year,
	// otherwise the span inverts (e.g. 48..1) and matches nothing.
	if firstYear < first.Year() {
		firstWeek = 1
	}
	if lastYear > last.Year() {
		// December 28 always falls in the year's final ISO week.
		_, lastWeek = time.Date(last.Year(), time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	}
	return firstWeek, lastWeek
}
