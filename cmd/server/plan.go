package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/festy23/task_capacity/internal/capacity"
)

var planSnapshot string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run a bulk reassignment over a YAML snapshot",
	Long: `Reads an owner's projects, rosters and tasks from a YAML file and prints
the moves a bulk reassignment would make. Nothing is written anywhere.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planSnapshot, "snapshot", "", "path to the YAML snapshot")
	_ = planCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(planSnapshot)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snapshot, err := capacity.LoadSnapshotYAML(f)
	if err != nil {
		return err
	}

	plan := capacity.PlanReassignment(snapshot, time.Now().UTC())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, plan.Summary())
	for _, mv := range plan.Moves {
		fmt.Fprintf(out, "  %s  %q  %s -> %s\n", mv.ProjectID, mv.TaskTitle, mv.From.Name, mv.To.Name)
	}
	return nil
}
