package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	if usersRepo == nil {
		log.Fatal("provided nil usersRepo")
	}
	return &UserService{
		repo: usersRepo,
	}
}

func (us *UserService) Create(ctx context.Context, name string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Join(errorvalues.ErrValidation, errors.New("user name is required"))
	}
	user := entity.User{Name: name}
	id, err := us.repo.Create(ctx, &user)
	if err != nil {
		return nil, errors.New("users repository error: " + err.Error())
	}
	user.ID = id
	return &user, nil
}

func (us *UserService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := us.repo.List(ctx)
	if err != nil {
		return nil, errors.New("users repository error: " + err.Error())
	}
	return users, nil
}
