package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/entity"
)

type userRepoMock struct {
	state mockState
}

func (urmock *userRepoMock) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	switch urmock.state {
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		return userID, nil
	}
}

func (urmock *userRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateNotFoundError:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return &entity.User{ID: userID, Name: "alice"}, nil
	}
}

func (urmock *userRepoMock) List(ctx context.Context) ([]*entity.User, error) {
	switch urmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []*entity.User{
			{ID: userID, Name: "alice"},
			{ID: uuid.New(), Name: "bob"},
		}, nil
	}
}

func TestCreateUser(t *testing.T) {
	mock := &userRepoMock{state: stateSuccess}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success trims whitespace", func(t *testing.T) {
		user, err := s.Create(ctx, "  alice  ")
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Name)
		assert.Equal(t, userID, user.ID)
	})
	t.Run("blank name refused", func(t *testing.T) {
		_, err := s.Create(ctx, "   ")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Create(ctx, "alice")
		assert.Error(t, err)
	})
}

func TestGetUser(t *testing.T) {
	mock := &userRepoMock{state: stateSuccess}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := s.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Name)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		_, err := s.Get(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestListUsers(t *testing.T) {
	mock := &userRepoMock{state: stateSuccess}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		users, err := s.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(users))
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.List(ctx)
		assert.Error(t, err)
	})
}
