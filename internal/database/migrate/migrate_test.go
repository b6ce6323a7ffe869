package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetMigrationsPath(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "")
		assert.Equal(t, "migrations", GetMigrationsPath())
	})

	t.Run("custom path from env", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "custom/migrations")
		assert.Equal(t, "custom/migrations", GetMigrationsPath())
	})
}

// createTestDB creates a test SQLite database connection.
func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrate_NilDatabase(t *testing.T) {
	assert.EqualError(t, Migrate(nil), "database connection is nil")
	assert.EqualError(t, Down(nil, 1), "database connection is nil")

	_, _, err := Version(nil)
	assert.EqualError(t, err, "database connection is nil")
}

func TestMigrate_NonExistentDirectory(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", "/non/existent/path")

	err := Migrate(createTestDB(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory does not exist")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", t.TempDir())

	err := Migrate(createTestDB(t))
	assert.Error(t, err)
}

func TestDown_InvalidSteps(t *testing.T) {
	assert.EqualError(t, Down(createTestDB(t), 0), "steps must be greater than 0")
}
