package database

import (
	"context"
	"database/sql"
	"fmt"

	"hr-tracker/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient is the connection pool behind the postgres session backend.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool sized and aged from cfg. lib/pq connects lazily,
// so an unreachable server only shows up on Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres %s/%s: %w", cfg.Host, cfg.Database, err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(config.GetDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(config.GetDuration(cfg.ConnMaxIdleTime))

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
