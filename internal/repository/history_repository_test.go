package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hearthhold/homekeep/internal/repository"
)

const historySelect = `SELECT h.id, h.task_id, t.title, t.date, h.user_id, u.name, h.week, h.year, h.completed_at
			FROM completed_tasks h
			LEFT JOIN tasks t ON t.id = h.task_id
			LEFT JOIN users u ON u.id = h.user_id`

var historyColumns = []string{"id", "task_id", "title", "date", "user_id", "name", "week", "year", "completed_at"}

func TestFilterHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHistoryRepoWithConn(mock)
	taskID := uuid.New()
	title := "vacuum living room"
	name := "alice"
	taskDate := day(2024, time.January, 8)
	completedAt := time.Date(2024, time.January, 8, 16, 0, 0, 0, time.UTC)
	ctx := context.Background()
	t.Run("no filter returns everything", func(t *testing.T) {
		query := regexp.QuoteMeta(historySelect + ` ORDER BY h.completed_at DESC;`)
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows(historyColumns).
				AddRow(1, &taskID, &title, &taskDate, &userID, &name, 2, 2024, completedAt),
			)
		result, err := repo.Filter(ctx, repository.HistoryFilter{})
		assert.NoError(t, err)
		if assert.Equal(t, 1, len(result)) {
			assert.Equal(t, 2, result[0].Week)
			assert.Equal(t, 2024, result[0].Year)
			if assert.NotNil(t, result[0].TaskTitle) {
				assert.Equal(t, title, *result[0].TaskTitle)
			}
		}
	})
	t.Run("year filter", func(t *testing.T) {
		year := 2024
		query := regexp.QuoteMeta(historySelect + ` WHERE h.year = $1 ORDER BY h.completed_at DESC;`)
		mock.ExpectQuery(query).
			WithArgs(year).
			WillReturnRows(pgxmock.NewRows(historyColumns))
		result, err := repo.Filter(ctx, repository.HistoryFilter{Year: &year})
		assert.NoError(t, err)
		assert.Equal(t, 0, len(result))
	})
	t.Run("year and week span filter", func(t *testing.T) {
		year, weekFrom, weekTo := 2024, 5, 9
		query := regexp.QuoteMeta(historySelect + ` WHERE h.year = $1 AND h.week >= $2 AND h.week <= $3 ORDER BY h.completed_at DESC;`)
		mock.ExpectQuery(query).
			WithArgs(year, weekFrom, weekTo).
			WillReturnRows(pgxmock.NewRows(historyColumns).
				AddRow(1, &taskID, &title, &taskDate, &userID, &name, 6, 2024, completedAt),
			)
		result, err := repo.Filter(ctx, repository.HistoryFilter{Year: &year, WeekFrom: &weekFrom, WeekTo: &weekTo})
		assert.NoError(t, err)
		assert.Equal(t, 1, len(result))
	})
	t.Run("orphaned task and user stay listed", func(t *testing.T) {
		query := regexp.QuoteMeta(historySelect + ` ORDER BY h.completed_at DESC;`)
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows(historyColumns).
				AddRow(7, nil, nil, nil, nil, nil, 2, 2024, completedAt),
			)
		result, err := repo.Filter(ctx, repository.HistoryFilter{})
		assert.NoError(t, err)
		if assert.Equal(t, 1, len(result)) {
			assert.Nil(t, result[0].TaskID)
			assert.Nil(t, result[0].TaskTitle)
			assert.Nil(t, result[0].UserName)
			assert.Equal(t, completedAt, result[0].CompletedAt)
		}
	})
	t.Run("db error", func(t *testing.T) {
		query := regexp.QuoteMeta(historySelect + ` ORDER BY h.completed_at DESC;`)
		mock.ExpectQuery(query).
			WillReturnError(errors.New("db error"))
		_, err := repo.Filter(ctx, repository.HistoryFilter{})
		assert.Error(t, err)
	})
}
