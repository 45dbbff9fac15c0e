package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/pkg/entity"
)

type DailyEntriesRepository struct {
	conn PgConnection
}

func NewDailyEntriesRepo(cfg DBConfig) *DailyEntriesRepository {
	return &DailyEntriesRepository{
		conn: newPool("dailyEntriesRepo", cfg),
	}
}

func NewDailyEntriesRepoWithConn(conn PgConnection) *DailyEntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dailyEntriesRepo: " + err.Error())
	}
	return &DailyEntriesRepository{
		conn: conn,
	}
}

func (dr *DailyEntriesRepository) Create(ctx context.Context, entry *entity.DailyScheduleEntry) (uuid.UUID, error) {
	var id uuid.UUID
	row := dr.conn.QueryRow(ctx, `INSERT INTO daily_entries (user_id, day_of_week, label, interval_weeks, reference_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		entry.UserID,
		entry.DayOfWeek,
		entry.Label,
		entry.IntervalWeeks,
		entry.ReferenceDate,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.UUID{}, errorvalues.ErrUserNotFound
		}
		return uuid.UUID{}, errors.New("creating daily entry error: " + err.Error())
	}
	return id, nil
}

func (dr *DailyEntriesRepository) List(ctx context.Context) ([]*entity.DailyScheduleEntry, error) {
	entries := make([]*entity.DailyScheduleEntry, 0)
	rows, err := dr.conn.Query(ctx, `SELECT id, user_id, day_of_week, label, interval_weeks, reference_date
		FROM daily_entries ORDER BY day_of_week, label;`)
	if err != nil {
		return nil, errors.New("listing daily entries error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.DailyScheduleEntry{}
		err = rows.Scan(&e.ID, &e.UserID, &e.DayOfWeek, &e.Label, &e.IntervalWeeks, &e.ReferenceDate)
		if err != nil {
			return nil, errors.New("unmarshalling daily entry error: " + err.Error())
		}
		entries = append(entries, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning daily entries: " + rows.Err().Error())
	}
	return entries, nil
}

func (dr *DailyEntriesRepository) Update(ctx context.Context, entry *entity.DailyScheduleEntry) error {
	ct, err := dr.conn.Exec(ctx, `UPDATE daily_entries SET user_id = $1, day_of_week = $2, label = $3, interval_weeks = $4, reference_date = $5
		WHERE id = $6;`,
		entry.UserID,
		entry.DayOfWeek,
		entry.Label,
		entry.IntervalWeeks,
		entry.ReferenceDate,
		entry.ID,
	)
	if err != nil {
		return errors.New("updating daily entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}

func (dr *DailyEntriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := dr.conn.Exec(ctx, `DELETE FROM daily_entries WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting daily entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}
