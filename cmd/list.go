package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
)

var (
	listStatus   string
	listPriority string
	listOverdue  bool
	listSearch   string
	listSortBy   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, optionally filtered by status, priority, overdue state,
or a keyword search over titles and descriptions. Filters combine: each one
narrows the result further.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatus(listStatus)
		if err != nil {
			return err
		}
		priority, err := parsePriority(listPriority)
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

		tasks, err := svc.List()
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		tasks = applyListFilters(svc, tasks, status, priority)

		less, err := sortFunc(listSortBy)
		if err != nil {
			return err
		}
		tasks = task.SortTasks(tasks, less)

		fmt.Print(ui.RenderTaskTable(tasks))
		return nil
	},
}

// applyListFilters narrows tasks by the list command's flags. Filters are
// applied in memory so they compose without extra store round-trips.
func applyListFilters(svc *task.Service, tasks []models.Task, status models.TaskStatus, priority models.TaskPriority) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	now := svc.Now()
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		if listOverdue && !task.IsOverdue(t, now) {
			continue
		}
		if listSearch != "" && !task.MatchesKeyword(t, listSearch) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func sortFunc(name string) (func(a, b models.Task) bool, error) {
	switch name {
	case "", "created":
		return task.LessByCreatedAt, nil
	case "priority":
		return task.LessByPriority, nil
	case "due":
		return task.LessByDueDate, nil
	default:
		return nil, fmt.Errorf("invalid sort key %q: valid values are priority, due, created", name)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (todo, in-progress, completed, cancelled)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high, urgent)")
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "show only overdue tasks")
	listCmd.Flags().StringVar(&listSearch, "search", "", "filter by keyword in title or description")
	listCmd.Flags().StringVar(&listSortBy, "sort", "created", "sort by: priority, due, created")
}
