package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
)

var intervalTaskColumns = []string{"id", "title", "category", "interval_days", "created_by", "created_at", "last_completed_at"}

const intervalTaskSelect = `SELECT t.id, t.title, t.category, t.interval_days, t.created_by, t.created_at, MAX(c.completed_at) AS last_completed_at
		FROM interval_tasks t LEFT JOIN interval_completions c ON c.task_id = t.id `

func TestCreateIntervalTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	task := entity.IntervalTask{
		Title:        "descale coffee machine",
		Category:     "kitchen",
		IntervalDays: 30,
		CreatedBy:    userID,
	}
	tid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO interval_tasks (title, category, interval_days, created_by)
			VALUES ($1, $2, $3, $4) RETURNING id;`)
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(task.Title, task.Category, task.IntervalDays, task.CreatedBy).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(tid))
		id, err := repo.Create(ctx, &task)
		assert.NoError(t, err)
		assert.Equal(t, tid, id)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(task.Title, task.Category, task.IntervalDays, task.CreatedBy).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &task)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(task.Title, task.Category, task.IntervalDays, task.CreatedBy).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &task)
		assert.Error(t, err)
	})
}

func TestGetIntervalTaskByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	id := uuid.New()
	createdAt := time.Now()
	lastCompleted := day(2024, time.January, 8)
	query := regexp.QuoteMeta(intervalTaskSelect + `WHERE t.id = $1 GROUP BY t.id;`)
	ctx := context.Background()
	t.Run("success with completion", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(intervalTaskColumns).
				AddRow(id, "descale coffee machine", "kitchen", 30, userID, createdAt, &lastCompleted),
			)
		result, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, 30, result.IntervalDays)
		if assert.NotNil(t, result.LastCompletedAt) {
			assert.Equal(t, lastCompleted, *result.LastCompletedAt)
		}
	})
	t.Run("success never completed", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(intervalTaskColumns).
				AddRow(id, "descale coffee machine", "kitchen", 30, userID, createdAt, nil),
			)
		result, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, result.LastCompletedAt)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, errorvalues.ErrIntervalTaskNotFound)
	})
}

func TestUpdateIntervalTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	task := entity.IntervalTask{
		ID:           uuid.New(),
		Title:        "descale coffee machine",
		Category:     "kitchen",
		IntervalDays: 45,
	}
	query := regexp.QuoteMeta(`UPDATE interval_tasks SET title = $1, category = $2, interval_days = $3 WHERE id = $4;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(task.Title, task.Category, task.IntervalDays, task.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Update(ctx, &task)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(task.Title, task.Category, task.IntervalDays, task.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.Update(ctx, &task)
		assert.ErrorIs(t, err, errorvalues.ErrIntervalTaskNotFound)
	})
}

func TestCompleteIntervalTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	taskID := uuid.New()
	at := time.Now()
	query := regexp.QuoteMeta(`INSERT INTO interval_completions (task_id, user_id, completed_at) VALUES ($1, $2, $3);`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(taskID, userID, at).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Complete(ctx, taskID, userID, at)
		assert.NoError(t, err)
	})
	t.Run("unknown task", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(taskID, userID, at).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "interval_completions_task_id_fkey"})
		err := repo.Complete(ctx, taskID, userID, at)
		assert.ErrorIs(t, err, errorvalues.ErrIntervalTaskNotFound)
	})
	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(taskID, userID, at).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "interval_completions_user_id_fkey"})
		err := repo.Complete(ctx, taskID, userID, at)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestIntervalTaskHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	taskID := uuid.New()
	query := regexp.QuoteMeta(`SELECT id, task_id, user_id, completed_at FROM interval_completions
			WHERE task_id = $1 ORDER BY completed_at DESC LIMIT $2;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(taskID, 2).
			WillReturnRows(pgxmock.NewRows([]string{"id", "task_id", "user_id", "completed_at"}).
				AddRow(2, taskID, &userID, day(2024, time.January, 15)).
				AddRow(1, taskID, &userID, day(2024, time.January, 8)),
			)
		result, err := repo.History(ctx, taskID, 2)
		assert.NoError(t, err)
		if assert.Equal(t, 2, len(result)) {
			assert.True(t, result[0].CompletedAt.After(result[1].CompletedAt))
		}
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(taskID, 2).
			WillReturnError(errors.New("db error"))
		_, err := repo.History(ctx, taskID, 2)
		assert.Error(t, err)
	})
}

func TestIntervalTaskCategories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewIntervalTasksRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT DISTINCT category FROM interval_tasks WHERE category <> '' ORDER BY category;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"category"}).AddRow("garden").AddRow("kitchen"))
		result, err := repo.Categories(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"garden", "kitchen"}, result)
	})
	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"category"}))
		result, err := repo.Categories(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(result))
	})
}
