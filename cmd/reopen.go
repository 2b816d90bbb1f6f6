package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
)

// reopenCmd represents the reopen command
var reopenCmd = &cobra.Command{
	Use:   "reopen [id]",
	Short: "Reopen a completed task",
	Long: `Reopen a task: its status goes back to "todo" and the completion
time is cleared. Reopening a task that was never completed is a no-op.

If no ID is given, an interactive picker of completed tasks is shown.`,
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
				return t.Status == models.StatusCompleted
			}, "Select a task to reopen")
			if err != nil {
				return err
			}
			id = selected.ID
		}

		t, err := svc.MarkIncomplete(id)
		if err != nil {
			return fmt.Errorf("failed to reopen task: %w", err)
		}

		fmt.Printf("Task reopened: %s (ID: %s)\n", t.Title, ui.TruncateID(t.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reopenCmd)
}
