package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed, recording the completion time. Completing
an already-completed task is a no-op and keeps the original completion time.

If no ID is given, an interactive picker of incomplete tasks is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := GetService()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				LogError("failed to close store", cerr)
			}
		}()

		var id string
		if len(args) > 0 {
			id = args[0]
		} else {
			selected, err := selectTaskInteractive(svc, func(t models.Task) bool {
				return t.Status != models.StatusCompleted
			}, "Select a task to complete")
			if err != nil {
				return err
			}
			id = selected.ID
		}

		t, err := svc.MarkComplete(id)
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Task completed: %s (ID: %s)\n", t.Title, ui.TruncateID(t.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
