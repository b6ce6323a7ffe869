package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/database/config"
	"github.com/festy23/task_capacity/pkg/retry"
)

func quickRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}
}

func TestNewWithConfig_SQLite(t *testing.T) {
	cfg := config.Config{Driver: config.DriverSQLite, SQLitePath: ":memory:"}

	db, err := NewWithConfig(cfg, quickRetry(), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestNewWithConfig_InvalidConfig(t *testing.T) {
	db, err := NewWithConfig(config.Config{Driver: "oracle"}, quickRetry(), zap.NewNop().Sugar())
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestNewWithConfig_UnreachablePostgresIsSanitized(t *testing.T) {
	cfg := config.Config{
		Driver:   config.DriverPostgres,
		Host:     "127.0.0.1",
		User:     "tasks",
		Password: "hunter2-secret",
		DBName:   "tasks",
		Port:     "1",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	db, err := NewWithConfig(cfg, quickRetry(), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to database")
	assert.NotContains(t, err.Error(), "hunter2-secret")
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy connection", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		defer func() { _ = Close(db) }()

		assert.NoError(t, HealthCheck(context.Background(), db))
	})

	t.Run("nil database", func(t *testing.T) {
		err := HealthCheck(context.Background(), nil)
		assert.EqualError(t, err, "database connection is nil")
	})

	t.Run("closed connection", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, Close(db))

		assert.Error(t, HealthCheck(context.Background(), db))
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Close(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}

func TestGetStats(t *testing.T) {
	stats, err := GetStats(nil)
	assert.Error(t, err)
	assert.Nil(t, stats)
}
