package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Set a task's status",
	Long: `Set a task's status directly (todo, in-progress, completed,
cancelled). Setting "completed" records the completion time; any other
status clears it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatus(args[1])
		if err != nil {
			return err
		}

		svc, st, err := GetService()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				LogError("failed to close store", cerr)
			}
		}()

		t, err := svc.SetStatus(args[0], status)
		if err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}

		fmt.Printf("Task %s is now %s\n", ui.TruncateID(t.ID), t.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
