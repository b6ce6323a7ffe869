package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	appConfig "github.com/festy23/task_capacity/internal/config"
	dbConfig "github.com/festy23/task_capacity/internal/database/config"
	"github.com/festy23/task_capacity/internal/database/database"
	"github.com/festy23/task_capacity/internal/database/migrate"
	projectModel "github.com/festy23/task_capacity/internal/project/model"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
	"github.com/festy23/task_capacity/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "task-capacity",
	Short: "Capacity-aware task assignment service",
	Long: `task-capacity tracks teams, projects and tasks, warns when an assignment
would push a member past their capacity, picks best-fit assignees and
rebalances overloaded members on demand.

Without a subcommand it runs the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// newLogger builds the process logger from environment configuration.
func newLogger() (*zap.SugaredLogger, error) {
	cfg := appConfig.LoadLoggerConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("logger config validation failed: %w", err)
	}
	return logger.NewWithConfig(cfg)
}

// openDatabase connects with environment configuration and brings the schema
// up to date. PostgreSQL uses the SQL migrations; SQLite is auto-migrated
// from the models for local runs.
func openDatabase(log *zap.SugaredLogger, applySchema bool) (*gorm.DB, error) {
	cfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(cfg, dbConfig.LoadRetryConfigFromEnv(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if !applySchema {
		return db, nil
	}

	if cfg.Driver == dbConfig.DriverSQLite {
		err = db.AutoMigrate(
			&teamModel.Team{},
			&teamModel.Member{},
			&projectModel.Project{},
			&taskModel.Task{},
			&taskModel.Assignee{},
			&activityModel.Activity{},
		)
	} else {
		err = migrate.Migrate(db)
	}
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	log.Infow("database schema ready", "driver", cfg.Driver)
	return db, nil
}
