package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hearthhold/homekeep/pkg/entity"
)

type SchedulesRepositoryI interface {
	// Creates the schedule and its first open occurrence dated startDate in
	// one transaction. A schedule with zero occurrences never exists.
	Create(ctx context.Context, schedule *entity.Schedule, startDate time.Time) (uuid.UUID, error)
	// Searches schedule with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	// Lists all schedules enriched with next occurrence date and completed count
	List(ctx context.Context) ([]*entity.ScheduleOverview, error)
	// Updates the schedule (ID is necessary) and propagates title, category
	// and assignment onto its open occurrence
	Update(ctx context.Context, schedule *entity.Schedule) error
	// Detaches completed occurrences (snapshotting category), deletes the
	// open one and the schedule row, all in one transaction
	Delete(ctx context.Context, id uuid.UUID) error
}

type TasksRepositoryI interface {
	// Creates a standalone occurrence (no schedule reference)
	CreateStandalone(ctx context.Context, task *entity.TaskOccurrence) (uuid.UUID, error)
	// Searches occurrence with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaskOccurrence, error)
	// Lists occurrences whose date lies in [from, to]
	ListRange(ctx context.Context, from, to time.Time) ([]*entity.TaskOccurrence, error)
	// Lists all open schedule-linked occurrences with their schedule's interval
	OpenScheduled(ctx context.Context) ([]*OpenScheduledTask, error)
	// Marks the occurrence completed, appends the history record and, for a
	// schedule-linked occurrence, generates the successor at date + interval.
	// One transaction; returns the successor (nil for standalone tasks).
	Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) (*entity.TaskOccurrence, error)
	// Clears completion fields. Refused while a newer open occurrence exists
	// for the same schedule.
	Uncomplete(ctx context.Context, id uuid.UUID) error
	// Moves date to newDate (nil: one day past the current date)
	Postpone(ctx context.Context, id uuid.UUID, newDate *time.Time) (*entity.TaskOccurrence, error)
	// Changes assignee / is_both on an open occurrence
	Reassign(ctx context.Context, id uuid.UUID, assignment entity.Assignment) error
	// Deletes a standalone occurrence. Schedule-linked ids are refused.
	Delete(ctx context.Context, id uuid.UUID) error
	// Advances open schedule-linked occurrences with date < today to today,
	// returning how many rows moved
	AdvanceOverdue(ctx context.Context, today time.Time) (int, error)
}

type IntervalTasksRepositoryI interface {
	Create(ctx context.Context, task *entity.IntervalTask) (uuid.UUID, error)
	// Returns the raw row plus the latest completion timestamp (nil if never)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IntervalTask, error)
	List(ctx context.Context) ([]*entity.IntervalTask, error)
	Update(ctx context.Context, task *entity.IntervalTask) error
	// Deletes the task; its completion log cascades with it
	Delete(ctx context.Context, id uuid.UUID) error
	// Appends a completion log row
	Complete(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error
	// Completion log, most recent first
	History(ctx context.Context, taskID uuid.UUID, limit int) ([]entity.IntervalCompletion, error)
	// Distinct non-empty categories in use
	Categories(ctx context.Context) ([]string, error)
}

type DailyEntriesRepositoryI interface {
	Create(ctx context.Context, entry *entity.DailyScheduleEntry) (uuid.UUID, error)
	List(ctx context.Context) ([]*entity.DailyScheduleEntry, error)
	Update(ctx context.Context, entry *entity.DailyScheduleEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// HistoryFilter narrows completed-task queries. Nil fields mean no bound.
// WeekFrom/WeekTo are only consulted when Year is set.
type HistoryFilter struct {
	Year     *int
	WeekFrom *int
	WeekTo   *int
}

type HistoryRepositoryI interface {
	// Completed-task records joined with task title/date and user name,
	// most recent first. Orphaned references come back as nil fields.
	Filter(ctx context.Context, f HistoryFilter) ([]*entity.HistoryEntry, error)
}

type UsersRepositoryI interface {
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// OpenScheduledTask pairs an open occurrence with its schedule's recurrence
// data, enough to project the following ghost occurrence.
type OpenScheduledTask struct {
	Occurrence   entity.TaskOccurrence
	IntervalDays int
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
