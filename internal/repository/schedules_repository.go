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
)

type SchedulesRepository struct {
	conn PgConnection
}

func NewSchedulesRepo(cfg DBConfig) *SchedulesRepository {
	return &SchedulesRepository{
		conn: newPool("schedulesRepo", cfg),
	}
}

func NewSchedulesRepoWithConn(conn PgConnection) *SchedulesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for schedulesRepo: " + err.Error())
	}
	return &SchedulesRepository{
		conn: conn,
	}
}

func (sr *SchedulesRepository) Create(ctx context.Context, schedule *entity.Schedule, startDate time.Time) (uuid.UUID, error) {
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return uuid.UUID{}, errors.New("beginning schedule creation tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	var id uuid.UUID
	row := tx.QueryRow(ctx, `INSERT INTO schedules (title, category, interval_days, assigned_to, is_both, created_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		schedule.Title,
		schedule.Category,
		schedule.IntervalDays,
		schedule.AssignedTo,
		schedule.IsBoth,
		schedule.CreatedBy,
	)
	if err = row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// FK violation on created_by
			return uuid.UUID{}, errorvalues.ErrUserNotFound
		}
		return uuid.UUID{}, errors.New("creating schedule db error: " + err.Error())
	}
	// The first open occurrence is born in the same transaction: a schedule
	// without one is an invalid state.
	_, err = tx.Exec(ctx, `INSERT INTO tasks (schedule_id, title, category, date, original_date, assigned_to, is_both)
		VALUES ($1, $2, $3, $4, $4, $5, $6);`,
		id,
		schedule.Title,
		schedule.Category,
		startDate,
		schedule.AssignedTo,
		schedule.IsBoth,
	)
	if err != nil {
		return uuid.UUID{}, errors.New("creating first occurrence db error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return uuid.UUID{}, errors.New("committing schedule creation error: " + err.Error())
	}
	return id, nil
}

func (sr *SchedulesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	schedule.ID = id
	row := sr.conn.QueryRow(ctx, `SELECT title, category, interval_days, assigned_to, is_both, created_by, created_at
		FROM schedules WHERE id = $1;`, id)
	err := row.Scan(
		&schedule.Title,
		&schedule.Category,
		&schedule.IntervalDays,
		&schedule.AssignedTo,
		&schedule.IsBoth,
		&schedule.CreatedBy,
		&schedule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrScheduleNotFound
		}
		return nil, errors.New("getting schedule by id error: " + err.Error())
	}
	return &schedule, nil
}

func (sr *SchedulesRepository) List(ctx context.Context) ([]*entity.ScheduleOverview, error) {
	overviews := make([]*entity.ScheduleOverview, 0)
	rows, err := sr.conn.Query(ctx, `SELECT s.id, s.title, s.category, s.interval_days, s.assigned_to, s.is_both, s.created_by, s.created_at,
		MIN(t.date) FILTER (WHERE t.completed_at IS NULL) AS next_date,
		COUNT(t.id) FILTER (WHERE t.completed_at IS NOT NULL) AS completed_count
		FROM schedules s LEFT JOIN tasks t ON t.schedule_id = s.id
		GROUP BY s.id ORDER BY s.created_at;`)
	if err != nil {
		return nil, errors.New("listing schedules error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		o := entity.ScheduleOverview{}
		err = rows.Scan(
			&o.ID,
			&o.Title,
			&o.Category,
			&o.IntervalDays,
			&o.AssignedTo,
			&o.IsBoth,
			&o.CreatedBy,
			&o.CreatedAt,
			&o.NextDate,
			&o.CompletedCount,
		)
		if err != nil {
			return nil, errors.New("unmarshalling schedule overview error: " + err.Error())
		}
		overviews = append(overviews, &o)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning schedules: " + rows.Err().Error())
	}
	return overviews, nil
}

func (sr *SchedulesRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning schedule update tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	ct, err := tx.Exec(ctx, `UPDATE schedules SET title = $1, category = $2, interval_days = $3, assigned_to = $4, is_both = $5
		WHERE id = $6;`,
		schedule.Title,
		schedule.Category,
		schedule.IntervalDays,
		schedule.AssignedTo,
		schedule.IsBoth,
		schedule.ID,
	)
	if err != nil {
		return errors.New("updating schedule error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrScheduleNotFound
	}
	// Ongoing work reflects the edited definition; completed history stays.
	_, err = tx.Exec(ctx, `UPDATE tasks SET title = $1, category = $2, assigned_to = $3, is_both = $4
		WHERE schedule_id = $5 AND completed_at IS NULL;`,
		schedule.Title,
		schedule.Category,
		schedule.AssignedTo,
		schedule.IsBoth,
		schedule.ID,
	)
	if err != nil {
		return errors.New("propagating schedule update to open occurrence error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing schedule update error: " + err.Error())
	}
	return nil
}

func (sr *SchedulesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning schedule deletion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	// Completed occurrences are history: snapshot the category onto them and
	// detach instead of deleting.
	_, err = tx.Exec(ctx, `UPDATE tasks SET schedule_id = NULL, category = (SELECT category FROM schedules WHERE id = $1)
		WHERE schedule_id = $1 AND completed_at IS NOT NULL;`, id)
	if err != nil {
		return errors.New("detaching completed occurrences error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `DELETE FROM tasks WHERE schedule_id = $1 AND completed_at IS NULL;`, id)
	if err != nil {
		return errors.New("deleting open occurrence error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting schedule error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrScheduleNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing schedule deletion error: " + err.Error())
	}
	return nil
}
