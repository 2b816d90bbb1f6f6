package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a task's details",
	Long:  `Show the full details of a single task. If no ID is given, an interactive picker is shown.`,
	Args:  cobra.MaximumNArgs(1),
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

		t, err := resolveTask(svc, args, "Select a task to show")
		if err != nil {
			return err
		}

		fmt.Print(ui.RenderTaskDetail(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
