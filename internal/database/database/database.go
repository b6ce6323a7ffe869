// Package database provides database connection management for PostgreSQL and SQLite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/task_capacity/internal/database/config"
	"github.com/festy23/task_capacity/internal/database/pool"
	"github.com/festy23/task_capacity/pkg/retry"
)

const connectTimeout = 2 * time.Minute

// NewWithConfig opens the configured driver, retrying transient failures, and tunes the pool.
func NewWithConfig(cfg config.Config, retryCfg retry.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warnw("database connection failed, retrying",
			"driver", cfg.Driver,
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	dialector, poolCfg := dialectorFor(cfg)
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		db, err := gorm.Open(dialector, gormCfg)
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, db); err != nil {
			_ = Close(db)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	log.Infow("database connected", "driver", cfg.Driver, "max_open_conns", poolCfg.MaxOpenConns)
	return db, nil
}

func dialectorFor(cfg config.Config) (gorm.Dialector, pool.Config) {
	if cfg.Driver == config.DriverSQLite {
		return sqlite.Open(cfg.SQLitePath), pool.SQLitePoolConfig()
	}
	return postgres.Open(config.BuildDSN(cfg)), config.LoadPoolConfigFromEnv()
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
