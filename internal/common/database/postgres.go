// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"time"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient owns the connection pool backing the job catalog.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool against the catalog database. The workload is
// read-mostly (snapshot refreshes and point lookups), so idle connections
// stay warm longer than they live.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
