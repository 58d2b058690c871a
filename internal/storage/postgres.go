package storage

import (
	"context"
	"database/sql"
	"errors"

	apperrors "hr-tracker/internal/common/errors"

	"github.com/lib/pq"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS client_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	selectValueSQL = `SELECT value FROM client_storage WHERE key = $1`
	upsertValueSQL = `INSERT INTO client_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	deleteValuesSQL = `DELETE FROM client_storage WHERE key = ANY($1)`
)

// PostgresStore keeps keys in the client_storage table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return apperrors.NewStorageUnavailableError("postgres", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewStorageUnavailableError("postgres", err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertValueSQL, key, value); err != nil {
		return apperrors.NewStorageUnavailableError("postgres", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, deleteValuesSQL, pq.Array(keys)); err != nil {
		return apperrors.NewStorageUnavailableError("postgres", err)
	}
	return nil
}
