package errorvalues

import "errors"

// Not-found errors: unknown id, no side effect happened.
var (
	ErrScheduleNotFound     = errors.New("schedule doesn't exist")
	ErrTaskNotFound         = errors.New("task occurrence doesn't exist")
	ErrIntervalTaskNotFound = errors.New("interval task doesn't exist")
	ErrEntryNotFound        = errors.New("daily schedule entry doesn't exist")
	ErrUserNotFound         = errors.New("user doesn't exist")
)

// Illegal-transition errors: the occurrence exists but refuses the operation.
var (
	ErrTaskCompleted    = errors.New("task occurrence is already completed")
	ErrTaskNotCompleted = errors.New("task occurrence is not completed")
	ErrSuccessorOpen    = errors.New("a newer open occurrence exists for this schedule")
	ErrScheduleLinked   = errors.New("occurrence belongs to a schedule and cannot be removed directly")
	ErrDateBackward     = errors.New("occurrence date can only move forward")
)

// Validation errors: malformed input, nothing was applied. ErrValidation is
// joined into field-level validator output so callers can classify it.
var (
	ErrValidation         = errors.New("validation error")
	ErrAssignmentConflict = errors.New("assigned_to and is_both are mutually exclusive")
	ErrUnknownPeriod      = errors.New("unknown stats period")
)

// ErrOpenOccurrenceExists guards the one-open-occurrence invariant. Hitting
// it means a bug in the core, not bad user input.
var ErrOpenOccurrenceExists = errors.New("schedule already has an open occurrence")
