package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateDueDate     string
	updateClearDue    bool
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an existing task",
	Long: `Update a task's title, description, priority, or due date. Fields
not named by a flag keep their current value. Status is not updated here;
use "done" and "reopen" for that.

If no ID is given, an interactive picker is shown.`,
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

		current, err := resolveTask(svc, args, "Select a task to update")
		if err != nil {
			return err
		}

		title := current.Title
		if cmd.Flags().Changed("title") {
			title = updateTitle
		}
		description := current.Description
		if cmd.Flags().Changed("description") {
			description = updateDescription
		}

		priority := current.Priority
		if cmd.Flags().Changed("priority") {
			priority, err = parsePriority(updatePriority)
			if err != nil {
				return err
			}
		}

		due := current.DueDate
		if updateClearDue {
			due = nil
		} else if cmd.Flags().Changed("due") {
			due, err = parseDueDate(updateDueDate)
			if err != nil {
				return err
			}
		}

		t, err := svc.Update(current.ID, title, description, priority, due)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Printf("Task updated: %s (ID: %s)\n", t.Title, ui.TruncateID(t.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high, urgent)")
	updateCmd.Flags().StringVar(&updateDueDate, "due", "", "new due date (YYYY-MM-DD or RFC 3339)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due date")
}
