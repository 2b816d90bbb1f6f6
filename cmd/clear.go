package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var clearYes bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	Long:  `Delete every task in the collection. Asks for confirmation unless --yes is given.`,
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

		tasks, err := svc.List()
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks to clear.")
			return nil
		}

		if !clearYes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete all %d tasks", len(tasks)),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Println("Clear cancelled.")
					return nil
				}
				return err
			}
		}

		if err := svc.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}

		fmt.Printf("Cleared %d tasks.\n", len(tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
}
