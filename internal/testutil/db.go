// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	"github.com/festy23/task_capacity/internal/database/pool"
	projectModel "github.com/festy23/task_capacity/internal/project/model"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
)

// NewDB opens an in-memory SQLite database with every table migrated.
// The pool is pinned to one connection so all queries see the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, pool.SetupConnectionPool(db, pool.SQLitePoolConfig()))

	err = db.AutoMigrate(
		&teamModel.Team{},
		&teamModel.Member{},
		&projectModel.Project{},
		&taskModel.Task{},
		&taskModel.Assignee{},
		&activityModel.Activity{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
