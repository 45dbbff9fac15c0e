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

type IntervalTasksRepository struct {
	conn PgConnection
}

func NewIntervalTasksRepo(cfg DBConfig) *IntervalTasksRepository {
	return &IntervalTasksRepository{
		conn: newPool("intervalTasksRepo", cfg),
	}
}

func NewIntervalTasksRepoWithConn(conn PgConnection) *IntervalTasksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for intervalTasksRepo: " + err.Error())
	}
	return &IntervalTasksRepository{
		conn: conn,
	}
}

func (ir *IntervalTasksRepository) Create(ctx context.Context, task *entity.IntervalTask) (uuid.UUID, error) {
	var id uuid.UUID
	row := ir.conn.QueryRow(ctx, `INSERT INTO interval_tasks (title, category, interval_days, created_by)
		VALUES ($1, $2, $3, $4) RETURNING id;`,
		task.Title,
		task.Category,
		task.IntervalDays,
		task.CreatedBy,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.UUID{}, errorvalues.ErrUserNotFound
		}
		return uuid.UUID{}, errors.New("creating interval task error: " + err.Error())
	}
	return id, nil
}

const intervalTaskQuery = `SELECT t.id, t.title, t.category, t.interval_days, t.created_by, t.created_at, MAX(c.completed_at) AS last_completed_at
	FROM interval_tasks t LEFT JOIN interval_completions c ON c.task_id = t.id `

func scanIntervalTask(row pgx.Row) (*entity.IntervalTask, error) {
	var t entity.IntervalTask
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Category,
		&t.IntervalDays,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.LastCompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (ir *IntervalTasksRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IntervalTask, error) {
	task, err := scanIntervalTask(ir.conn.QueryRow(ctx, intervalTaskQuery+`WHERE t.id = $1 GROUP BY t.id;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrIntervalTaskNotFound
		}
		return nil, errors.New("getting interval task by id error: " + err.Error())
	}
	return task, nil
}

func (ir *IntervalTasksRepository) List(ctx context.Context) ([]*entity.IntervalTask, error) {
	tasks := make([]*entity.IntervalTask, 0)
	rows, err := ir.conn.Query(ctx, intervalTaskQuery+`GROUP BY t.id ORDER BY t.created_at;`)
	if err != nil {
		return nil, errors.New("listing interval tasks error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanIntervalTask(rows)
		if err != nil {
			return nil, errors.New("unmarshalling interval task error: " + err.Error())
		}
		tasks = append(tasks, t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning interval tasks: " + rows.Err().Error())
	}
	return tasks, nil
}

func (ir *IntervalTasksRepository) Update(ctx context.Context, task *entity.IntervalTask) error {
	ct, err := ir.conn.Exec(ctx, `UPDATE interval_tasks SET title = $1, category = $2, interval_days = $3 WHERE id = $4;`,
		task.Title,
		task.Category,
		task.IntervalDays,
		task.ID,
	)
	if err != nil {
		return errors.New("updating interval task error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrIntervalTaskNotFound
	}
	return nil
}

func (ir *IntervalTasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := ir.conn.Exec(ctx, `DELETE FROM interval_tasks WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting interval task error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrIntervalTaskNotFound
	}
	return nil
}

func (ir *IntervalTasksRepository) Complete(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error {
	_, err := ir.conn.Exec(ctx, `INSERT INTO interval_completions (task_id, user_id, completed_at) VALUES ($1, $2, $3);`,
		taskID, userID, at,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Two FKs can fire here; the constraint tells whose id was bad.
			if pgErr.ConstraintName == "interval_completions_user_id_fkey" {
				return errorvalues.ErrUserNotFound
			}
			return errorvalues.ErrIntervalTaskNotFound
		}
		return errors.New("appending interval completion error: " + err.Error())
	}
	return nil
}

func (ir *IntervalTasksRepository) History(ctx context.Context, taskID uuid.UUID, limit int) ([]entity.IntervalCompletion, error) {
	completions := make([]entity.IntervalCompletion, 0, limit)
	rows, err := ir.conn.Query(ctx, `SELECT id, task_id, user_id, completed_at FROM interval_completions
		WHERE task_id = $1 ORDER BY completed_at DESC LIMIT $2;`, taskID, limit)
	if err != nil {
		return nil, errors.New("getting interval completion history error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.IntervalCompletion{}
		err = rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.CompletedAt)
		if err != nil {
			return nil, errors.New("unmarshalling interval completion error: " + err.Error())
		}
		completions = append(completions, c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning interval completions: " + rows.Err().Error())
	}
	return completions, nil
}

func (ir *IntervalTasksRepository) Categories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	rows, err := ir.conn.Query(ctx, `SELECT DISTINCT category FROM interval_tasks WHERE category <> '' ORDER BY category;`)
	if err != nil {
		return nil, errors.New("listing interval task categories error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return nil, errors.New("unmarshalling category error: " + err.Error())
		}
		categories = append(categories, c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning categories: " + rows.Err().Error())
	}
	return categories, nil
}
