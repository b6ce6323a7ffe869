package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/database/database"
	"github.com/festy23/task_capacity/internal/database/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrationDB(func(db *gorm.DB) error {
			if err := migrate.Migrate(db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down N",
	Short: "Roll back the last N migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := strconv.Atoi(args[0])
		if err != nil || steps <= 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrationDB(func(db *gorm.DB) error {
			if err := migrate.Down(db, steps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrationDB(func(db *gorm.DB) error {
			return printVersion(cmd, db)
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withMigrationDB(fn func(db *gorm.DB) error) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := openDatabase(log, false)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	return fn(db)
}

func printVersion(cmd *cobra.Command, db *gorm.DB) error {
	version, dirty, err := migrate.Version(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
