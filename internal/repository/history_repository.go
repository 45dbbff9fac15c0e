package repository

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/hearthhold/homekeep/pkg/entity"
)

type HistoryRepository struct {
	conn PgConnection
}

func NewHistoryRepo(cfg DBConfig) *HistoryRepository {
	return &HistoryRepository{
		conn: newPool("historyRepo", cfg),
	}
}

func NewHistoryRepoWithConn(conn PgConnection) *HistoryRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for historyRepo: " + err.Error())
	}
	return &HistoryRepository{
		conn: conn,
	}
}

func (hr *HistoryRepository) Filter(ctx context.Context, f HistoryFilter) ([]*entity.HistoryEntry, error) {
	// LEFT JOINs keep rows whose task or user has since been deleted; those
	// display fields just come back nil.
	query := `SELECT h.id, h.task_id, t.title, t.date, h.user_id, u.name, h.week, h.year, h.completed_at
		FROM completed_tasks h
		LEFT JOIN tasks t ON t.id = h.task_id
		LEFT JOIN users u ON u.id = h.user_id`
	args := make([]any, 0, 3)
	if f.Year != nil {
		args = append(args, *f.Year)
		query += ` WHERE h.year = $1`
		if f.WeekFrom != nil && f.WeekTo != nil {
			args = append(args, *f.WeekFrom, *f.WeekTo)
			query += ` AND h.week >= $2 AND h.week <= $` + strconv.Itoa(len(args))
		}
	}
	query += ` ORDER BY h.completed_at DESC;`
	entries := make([]*entity.HistoryEntry, 0)
	rows, err := hr.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("filtering completion history error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.HistoryEntry{}
		err = rows.Scan(
			&e.ID,
			&e.TaskID,
			&e.TaskTitle,
			&e.TaskDate,
			&e.UserID,
			&e.UserName,
			&e.Week,
			&e.Year,
			&e.CompletedAt,
		)
		if err != nil {
			return nil, errors.New("unmarshalling history entry error: " + err.Error())
		}
		entries = append(entries, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning history: " + rows.Err().Error())
	}
	return entries, nil
}
