package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
)

var (
	addDescription string
	addPriority    string
	addDueDate     string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to your list. The title is required; description,
priority, and due date are optional flags. New tasks start as "todo" with
medium priority unless told otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		priority, err := parsePriority(addPriority)
		if err != nil {
			return err
		}
		due, err := parseDueDate(addDueDate)
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

		t, err := svc.Create(title, addDescription, priority, due)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Printf("Task added: %s (ID: %s)\n", t.Title, ui.TruncateID(t.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (low, medium, high, urgent)")
	addCmd.Flags().StringVar(&addDueDate, "due", "", "due date (YYYY-MM-DD or RFC 3339)")
}
