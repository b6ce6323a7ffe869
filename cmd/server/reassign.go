package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	assignmentModel "github.com/festy23/task_capacity/internal/assignment/model"
	"github.com/festy23/task_capacity/internal/assignment/repository"
	"github.com/festy23/task_capacity/internal/assignment/service"
	appConfig "github.com/festy23/task_capacity/internal/config"
	"github.com/festy23/task_capacity/internal/database/database"
	taskRepository "github.com/festy23/task_capacity/internal/task/repository"
	taskService "github.com/festy23/task_capacity/internal/task/service"
)

var reassignOwner string

var reassignCmd = &cobra.Command{
	Use:   "reassign",
	Short: "Rebalance every project of an owner against the database",
	Long: `Moves the newest excess tasks off overloaded members onto teammates with
spare capacity, for every project the owner has. Prints the result as JSON.`,
	Args: cobra.NoArgs,
	RunE: runReassign,
}

func init() {
	reassignCmd.Flags().StringVar(&reassignOwner, "owner", "", "owner whose projects are rebalanced")
	_ = reassignCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(reassignCmd)
}

func runReassign(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := openDatabase(log, true)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	pub, err := newPublisher(cmd.Context(), appConfig.LoadMessagingConfigFromEnv(), nil, log)
	if err != nil {
		return err
	}
	defer pub.Close()

	svc := service.New(repository.New(db, log), db, log, service.Dependencies{
		Tasks:     taskService.New(taskRepository.New(db, log), db, log),
		Publisher: pub,
	})
	resp, err := svc.ReassignAll(cmd.Context(), &assignmentModel.ReassignRequest{OwnerID: reassignOwner})
	if err != nil {
		return fmt.Errorf("reassignment failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
