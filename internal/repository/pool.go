package repository

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthhold/homekeep/pkg/cleanup"
)

// newPool dials postgres for a repository constructor. Connection problems
// at startup are unrecoverable, so it fails hard like the rest of the wiring.
func newPool(name string, cfg DBConfig) *pgxpool.Pool {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for " + name + " error: " + err.Error())
	}
	if err = pool.Ping(context.Background()); err != nil {
		log.Fatal("error while pinging connection for " + name + ": " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool of " + name,
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool
}
