package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO users (name) VALUES ($1) RETURNING id;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uid))
		id, err := repo.Create(ctx, &entity.User{Name: "alice"})
		assert.NoError(t, err)
		assert.Equal(t, uid, id)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("alice").
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &entity.User{Name: "alice"})
		assert.Error(t, err)
	})
}

func TestFindUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT name FROM users WHERE id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("alice"))
		user, err := repo.FindByID(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, entity.User{ID: uid, Name: "alice"}, *user)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestListUsers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, name FROM users ORDER BY name;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(uuid.New(), "alice").
				AddRow(uuid.New(), "bob"),
			)
		users, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(users))
	})
	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))
		users, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(users))
	})
}
