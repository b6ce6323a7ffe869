// Package config provides database configuration management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	appConfig "github.com/festy23/task_capacity/internal/config"
	"github.com/festy23/task_capacity/internal/database/pool"
	"github.com/festy23/task_capacity/pkg/retry"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver   string
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// SQLitePath is used when Driver is sqlite; ":memory:" is allowed.
	SQLitePath string
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:     appConfig.GetEnv("DB_DRIVER", DriverPostgres),
		Host:       appConfig.GetEnv("DB_HOST", "localhost"),
		User:       appConfig.GetEnv("DB_USER", "postgres"),
		Password:   appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:     appConfig.GetEnv("DB_NAME", "task_capacity"),
		Port:       appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:    appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:   appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		SQLitePath: appConfig.GetEnv("DB_SQLITE_PATH", "task_capacity.db"),
	}
}

// Validate validates database configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for postgres")
		}
		if _, err := strconv.Atoi(c.Port); err != nil {
			return fmt.Errorf("invalid DB_PORT: %s", c.Port)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be: postgres, sqlite)", c.Driver)
	}
	return nil
}

// SanitizeError removes sensitive information (password) from error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	safeDSN := fmt.Sprintf("host=%s user=%s password=*** dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
	errMsg = strings.ReplaceAll(errMsg, BuildDSN(cfg), safeDSN)
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}

// LoadRetryConfigFromEnv loads retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	if m, err := strconv.ParseFloat(appConfig.GetEnv("DB_RETRY_MULTIPLIER", ""), 64); err == nil {
		cfg.Multiplier = m
	}
	return cfg
}

// LoadPoolConfigFromEnv loads connection pool settings from environment variables.
func LoadPoolConfigFromEnv() pool.Config {
	cfg := pool.DefaultPoolConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}
