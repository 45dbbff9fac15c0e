package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/pkg/entity"
)

// UsersRepository stores household members. Authentication lives outside
// this service; users exist here for assignment and history display only.
type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	return &UsersRepository{
		conn: newPool("usersRepo", cfg),
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	var id uuid.UUID
	row := ur.conn.QueryRow(ctx, `INSERT INTO users (name) VALUES ($1) RETURNING id;`, user.Name)
	if err := row.Scan(&id); err != nil {
		return uuid.UUID{}, errors.New("creating user error: " + err.Error())
	}
	return id, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	user.ID = id
	row := ur.conn.QueryRow(ctx, `SELECT name FROM users WHERE id = $1;`, id)
	if err := row.Scan(&user.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("getting user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) List(ctx context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	rows, err := ur.conn.Query(ctx, `SELECT id, name FROM users ORDER BY name;`)
	if err != nil {
		return nil, errors.New("listing users error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		u := entity.User{}
		if err = rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, errors.New("unmarshalling user error: " + err.Error())
		}
		users = append(users, &u)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning users: " + rows.Err().Error())
	}
	return users, nil
}
