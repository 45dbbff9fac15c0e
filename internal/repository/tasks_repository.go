package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

type TasksRepository struct {
	conn PgConnection
}

func NewTasksRepo(cfg DBConfig) *TasksRepository {
	return &TasksRepository{
		conn: newPool("tasksRepo", cfg),
	}
}

func NewTasksRepoWithConn(conn PgConnection) *TasksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	return &TasksRepository{
		conn: conn,
	}
}

const taskColumns = `id, schedule_id, title, category, date, original_date, assigned_to, is_both, completed_at, completed_by`

func scanTask(row pgx.Row) (*entity.TaskOccurrence, error) {
	var t entity.TaskOccurrence
	err := row.Scan(
		&t.ID,
		&t.ScheduleID,
		&t.Title,
		&t.Category,
		&t.Date,
		&t.OriginalDate,
		&t.AssignedTo,
		&t.IsBoth,
		&t.CompletedAt,
		&t.CompletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (tr *TasksRepository) CreateStandalone(ctx context.Context, task *entity.TaskOccurrence) (uuid.UUID, error) {
	var id uuid.UUID
	row := tr.conn.QueryRow(ctx, `INSERT INTO tasks (title, category, date, original_date, assigned_to, is_both)
		VALUES ($1, $2, $3, $3, $4, $5) RETURNING id;`,
		task.Title,
		task.Category,
		task.Date,
		task.AssignedTo,
		task.IsBoth,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.UUID{}, errorvalues.ErrUserNotFound
		}
		return uuid.UUID{}, errors.New("creating standalone occurrence error: " + err.Error())
	}
	return id, nil
}

func (tr *TasksRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaskOccurrence, error) {
	task, err := scanTask(tr.conn.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("getting occurrence by id error: " + err.Error())
	}
	return task, nil
}

func (tr *TasksRepository) ListRange(ctx context.Context, from, to time.Time) ([]*entity.TaskOccurrence, error) {
	tasks := make([]*entity.TaskOccurrence, 0)
	rows, err := tr.conn.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE date >= $1 AND date <= $2 ORDER BY date, title;`, from, to)
	if err != nil {
		return nil, errors.New("listing occurrences for range error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.New("unmarshalling occurrence error: " + err.Error())
		}
		tasks = append(tasks, t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning occurrences: " + rows.Err().Error())
	}
	return tasks, nil
}

func (tr *TasksRepository) OpenScheduled(ctx context.Context) ([]*OpenScheduledTask, error) {
	open := make([]*OpenScheduledTask, 0)
	rows, err := tr.conn.Query(ctx, `SELECT t.id, t.schedule_id, t.title, t.category, t.date, t.original_date, t.assigned_to, t.is_both, t.completed_at, t.completed_by, s.interval_days
		FROM tasks t JOIN schedules s ON s.id = t.schedule_id
		WHERE t.completed_at IS NULL ORDER BY t.date;`)
	if err != nil {
		return nil, errors.New("listing open scheduled occurrences error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		o := OpenScheduledTask{}
		t := &o.Occurrence
		err = rows.Scan(
			&t.ID,
			&t.ScheduleID,
			&t.Title,
			&t.Category,
			&t.Date,
			&t.OriginalDate,
			&t.AssignedTo,
			&t.IsBoth,
			&t.CompletedAt,
			&t.CompletedBy,
			&o.IntervalDays,
		)
		if err != nil {
			return nil, errors.New("unmarshalling open occurrence error: " + err.Error())
		}
		open = append(open, &o)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning open occurrences: " + rows.Err().Error())
	}
	return open, nil
}

func (tr *TasksRepository) Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) (*entity.TaskOccurrence, error) {
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("beginning completion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	task, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("locking occurrence for completion error: " + err.Error())
	}
	if !task.Open() {
		return nil, errorvalues.ErrTaskCompleted
	}
	_, err = tx.Exec(ctx, `UPDATE tasks SET completed_at = $1, completed_by = $2 WHERE id = $3;`, at, userID, id)
	if err != nil {
		return nil, errors.New("marking occurrence completed error: " + err.Error())
	}
	year, week := recurrence.WeekBucket(at)
	_, err = tx.Exec(ctx, `INSERT INTO completed_tasks (task_id, user_id, week, year, completed_at) VALUES ($1, $2, $3, $4, $5);`,
		id, userID, week, year, at,
	)
	if err != nil {
		return nil, errors.New("appending completion history error: " + err.Error())
	}
	var next *entity.TaskOccurrence
	if task.ScheduleID != nil {
		next, err = tr.generateNext(ctx, tx, *task.ScheduleID, task.Date)
		if err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing completion error: " + err.Error())
	}
	return next, nil
}

// generateNext materializes the successor occurrence at completedDate +
// interval inside the caller's transaction. The single-open-occurrence
// invariant is re-checked under the schedule row lock; a hit means a bug in
// the core, not user error.
func (tr *TasksRepository) generateNext(ctx context.Context, tx pgx.Tx, scheduleID uuid.UUID, completedDate time.Time) (*entity.TaskOccurrence, error) {
	var schedule entity.Schedule
	row := tx.QueryRow(ctx, `SELECT title, category, interval_days, assigned_to, is_both FROM schedules WHERE id = $1 FOR UPDATE;`, scheduleID)
	err := row.Scan(&schedule.Title, &schedule.Category, &schedule.IntervalDays, &schedule.AssignedTo, &schedule.IsBoth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrScheduleNotFound
		}
		return nil, errors.New("locking schedule for generation error: " + err.Error())
	}
	var openExists bool
	row = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE schedule_id = $1 AND completed_at IS NULL);`, scheduleID)
	if err = row.Scan(&openExists); err != nil {
		return nil, errors.New("checking open occurrence before generation error: " + err.Error())
	}
	if openExists {
		log.Printf("INVARIANT VIOLATION: schedule %s already has an open occurrence, refusing to generate another", scheduleID)
		return nil, errorvalues.ErrOpenOccurrenceExists
	}
	next := &entity.TaskOccurrence{
		ScheduleID: &scheduleID,
		Title:      schedule.Title,
		Category:   schedule.Category,
		Date:       recurrence.DateOnly(completedDate).AddDate(0, 0, schedule.IntervalDays),
		AssignedTo: schedule.AssignedTo,
		IsBoth:     schedule.IsBoth,
	}
	next.OriginalDate = next.Date
	row = tx.QueryRow(ctx, `INSERT INTO tasks (schedule_id, title, category, date, original_date, assigned_to, is_both)
		VALUES ($1, $2, $3, $4, $4, $5, $6) RETURNING id;`,
		scheduleID,
		next.Title,
		next.Category,
		next.Date,
		next.AssignedTo,
		next.IsBoth,
	)
	if err = row.Scan(&next.ID); err != nil {
		return nil, errors.New("generating next occurrence error: " + err.Error())
	}
	return next, nil
}

func (tr *TasksRepository) Uncomplete(ctx context.Context, id uuid.UUID) error {
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning uncompletion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	task, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorvalues.ErrTaskNotFound
		}
		return errors.New("locking occurrence for uncompletion error: " + err.Error())
	}
	if task.Open() {
		return errorvalues.ErrTaskNotCompleted
	}
	if task.ScheduleID != nil {
		// Completing this occurrence generated a successor; reopening it now
		// would leave two open occurrences for one schedule.
		var successorOpen bool
		row := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE schedule_id = $1 AND completed_at IS NULL);`, *task.ScheduleID)
		if err = row.Scan(&successorOpen); err != nil {
			return errors.New("checking successor before uncompletion error: " + err.Error())
		}
		if successorOpen {
			return errorvalues.ErrSuccessorOpen
		}
	}
	_, err = tx.Exec(ctx, `UPDATE tasks SET completed_at = NULL, completed_by = NULL WHERE id = $1;`, id)
	if err != nil {
		return errors.New("clearing completion fields error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing uncompletion error: " + err.Error())
	}
	return nil
}

func (tr *TasksRepository) Postpone(ctx context.Context, id uuid.UUID, newDate *time.Time) (*entity.TaskOccurrence, error) {
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("beginning postpone tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	task, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("locking occurrence for postpone error: " + err.Error())
	}
	if !task.Open() {
		return nil, errorvalues.ErrTaskCompleted
	}
	target := recurrence.DateOnly(task.Date).AddDate(0, 0, 1)
	if newDate != nil {
		target = recurrence.DateOnly(*newDate)
	}
	// original_date stays untouched so the UI can surface the drift.
	if target.Before(recurrence.DateOnly(task.Date)) {
		return nil, errorvalues.ErrDateBackward
	}
	_, err = tx.Exec(ctx, `UPDATE tasks SET date = $1 WHERE id = $2;`, target, id)
	if err != nil {
		return nil, errors.New("postponing occurrence error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing postpone error: " + err.Error())
	}
	task.Date = target
	return task, nil
}

func (tr *TasksRepository) Reassign(ctx context.Context, id uuid.UUID, assignment entity.Assignment) error {
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning reassign tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	task, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorvalues.ErrTaskNotFound
		}
		return errors.New("locking occurrence for reassign error: " + err.Error())
	}
	if !task.Open() {
		return errorvalues.ErrTaskCompleted
	}
	_, err = tx.Exec(ctx, `UPDATE tasks SET assigned_to = $1, is_both = $2 WHERE id = $3;`,
		assignment.AssignedTo, assignment.IsBoth, id)
	if err != nil {
		return errors.New("reassigning occurrence error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing reassign error: " + err.Error())
	}
	return nil
}

func (tr *TasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND schedule_id IS NULL;`, id)
	if err != nil {
		return errors.New("deleting occurrence error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		// Schedule-linked occurrences only go away through schedule deletion.
		var linked bool
		row := tr.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1);`, id)
		if scanErr := row.Scan(&linked); scanErr != nil {
			return errors.New("checking occurrence after refused deletion error: " + scanErr.Error())
		}
		if linked {
			return errorvalues.ErrScheduleLinked
		}
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) AdvanceOverdue(ctx context.Context, today time.Time) (int, error) {
	ct, err := tr.conn.Exec(ctx, `UPDATE tasks SET date = $1 WHERE completed_at IS NULL AND schedule_id IS NOT NULL AND date < $1;`, today)
	if err != nil {
		return 0, errors.New("advancing overdue occurrences error: " + err.Error())
	}
	return int(ct.RowsAffected()), nil
}
