package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hr-tracker/internal/common/config"
	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "user", `{"name":"Mona"}`))
	require.NoError(t, s.Set(ctx, "loginTime", "1767000000000"))

	v, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Mona"}`, v)

	require.NoError(t, s.Set(ctx, "user", `{"name":"Hala"}`))
	v, _, _ = s.Get(ctx, "user")
	assert.Equal(t, `{"name":"Hala"}`, v)

	require.NoError(t, s.Remove(ctx, "user", "loginTime"))
	_, ok, _ = s.Get(ctx, "user")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "loginTime")
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx))
}

// ==========================
// Backend Tests
// ==========================

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Set(ctx, "loginTime", "42"))

	v, ok, err := NewFileStore(path).Get(ctx, "loginTime")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestFileStore_GarbageFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok, err := NewFileStore(path).Get(context.Background(), "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	client, mr := setupRedis(t)
	s := NewRedisStore(client, "hr:client:")
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "user", "x"))
	assert.True(t, mr.Exists("hr:client:user"))
	assert.Equal(t, float64(0), mr.TTL("hr:client:user").Seconds())
}

func TestRedisStore_BackendErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, "p:")
	ctx := context.Background()

	mock.ExpectGet("p:user").SetErr(errors.New("connection reset"))
	_, _, err := s.Get(ctx, "user")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageUnavailable))

	mock.ExpectSet("p:loginTime", "1", 0).SetErr(errors.New("READONLY"))
	err = s.Set(ctx, "loginTime", "1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageUnavailable))

	mock.ExpectDel("p:user", "p:loginTime").SetVal(2)
	assert.NoError(t, s.Remove(ctx, "user", "loginTime"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_storage").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.EnsureSchema(ctx))

	mock.ExpectQuery("SELECT value FROM client_storage WHERE key = \\$1").
		WithArgs("user").
		WillReturnError(sql.ErrNoRows)
	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec("INSERT INTO client_storage").
		WithArgs("user", `{"name":"Mona"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Set(ctx, "user", `{"name":"Mona"}`))

	mock.ExpectQuery("SELECT value FROM client_storage WHERE key = \\$1").
		WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"name":"Mona"}`))
	v, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Mona"}`, v)

	mock.ExpectExec("DELETE FROM client_storage WHERE key = ANY").
		WithArgs(pq.Array([]string{"user", "loginTime"})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, s.Remove(ctx, "user", "loginTime"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectQuery("SELECT value FROM client_storage").
		WithArgs("loginTime").
		WillReturnError(errors.New("connection refused"))

	_, _, err := s.Get(context.Background(), "loginTime")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageUnavailable))
}

// ==========================
// Open
// ==========================

func TestOpen(t *testing.T) {
	log := logger.NewNoOpLogger()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Session: config.SessionConfig{Storage: config.StorageMemory}}
		s, closeFn, err := Open(ctx, cfg, log)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Session: config.SessionConfig{
			Storage:  config.StorageFile,
			FilePath: filepath.Join(t.TempDir(), "s.json"),
		}}
		s, _, err := Open(ctx, cfg, log)
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		_, mr := setupRedis(t)
		cfg := &config.Config{
			Session:  config.SessionConfig{Storage: config.StorageRedis, KeyPrefix: "t:"},
			Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: mr.Addr()}},
		}
		s, closeFn, err := Open(ctx, cfg, log)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, s.Set(ctx, "user", "u"))
		assert.True(t, mr.Exists("t:user"))
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Session: config.SessionConfig{Storage: "etcd"}}
		_, closeFn, err := Open(ctx, cfg, log)
		assert.Error(t, err)
		assert.NotNil(t, closeFn)
	})
}
