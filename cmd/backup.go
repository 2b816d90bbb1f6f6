package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup [destination]",
	Short: "Back up the task data to a file",
	Long: `Copy the current task data to the given destination path. The backup
is a self-contained copy of the data file and can be restored later with
"restore".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := args[0]

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil {
				LogError("failed to close store", cerr)
			}
		}()

		if err := s.Backup(dest); err != nil {
			return fmt.Errorf("failed to back up tasks: %w", err)
		}

		fmt.Printf("Tasks backed up to %s\n", dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
