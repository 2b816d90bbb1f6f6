package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var restoreYes bool

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [source]",
	Short: "Restore task data from a backup file",
	Long: `Replace the current task data with the contents of a backup file
created by "backup". The current data is overwritten, so confirmation is
asked unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		if !restoreYes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Restore from %s, replacing all current tasks", source),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Println("Restore cancelled.")
					return nil
				}
				return err
			}
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil {
				LogError("failed to close store", cerr)
			}
		}()

		if err := s.Restore(source); err != nil {
			return fmt.Errorf("failed to restore tasks: %w", err)
		}

		fmt.Printf("Tasks restored from %s\n", source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}
