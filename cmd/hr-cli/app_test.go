package main

import (
	"context"
	"errors"
	"testing"

	"hr-tracker/internal/common/logger"
	"hr-tracker/internal/models"
	"hr-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenRemoveStore struct {
	*storage.MemoryStore
}

func (s brokenRemoveStore) Remove(context.Context, ...string) error {
	return errors.New("connection reset")
}

func observedApp(store storage.Store) (*app, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &app{store: store, log: logger.NewZapAdapter(zap.New(core))}, logs
}

func TestForgetCookies(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the key", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, models.StorageKeyCookies, `[{"name":"sid","value":"x"}]`))
		a, logs := observedApp(store)

		a.forgetCookies(ctx)

		_, ok, err := store.Get(ctx, models.StorageKeyCookies)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, logs.Len())
	})

	t.Run("logs a failed removal", func(t *testing.T) {
		a, logs := observedApp(brokenRemoveStore{storage.NewMemoryStore()})

		a.forgetCookies(ctx)

		entries := logs.FilterMessage("removing stored cookies failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})
}
