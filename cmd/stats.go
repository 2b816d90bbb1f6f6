package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Long: `Show a summary of the collection: totals, completion rate, overdue
count, and per-status and per-priority breakdowns. Groups with no tasks are
shown with a zero count.`,
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

		stats, err := svc.Statistics()
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}
		byStatus, err := svc.CountByStatus()
		if err != nil {
			return fmt.Errorf("failed to count by status: %w", err)
		}
		byPriority, err := svc.CountByPriority()
		if err != nil {
			return fmt.Errorf("failed to count by priority: %w", err)
		}

		statusCounts := make(map[string]int, len(byStatus))
		statusOrder := make([]string, 0, len(models.AllStatuses))
		for _, s := range models.AllStatuses {
			statusOrder = append(statusOrder, string(s))
			statusCounts[string(s)] = byStatus[s]
		}
		priorityCounts := make(map[string]int, len(byPriority))
		priorityOrder := make([]string, 0, len(models.AllPriorities))
		for _, p := range models.AllPriorities {
			priorityOrder = append(priorityOrder, string(p))
			priorityCounts[string(p)] = byPriority[p]
		}

		fmt.Print(ui.RenderStatistics(stats.Total, stats.Completed, stats.Overdue, stats.CompletionRate, statusCounts, priorityCounts, statusOrder, priorityOrder))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
