package cmd

import (
	"fmt"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Copy the data file to a backup location",
	Long: `Copy the saved data file to destination. With the sqlite format the
backup is a consistent snapshot of the database.`,
	Example: `  todowing backup ~/tasks-2025-03-14.json`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("backup")
		return withStore(cmd, func(taskStore store.TaskStore) error {
			if err := taskStore.Backup(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
			return nil
		})
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Replace the data file with a backup",
	Long: `Replace the data file with source, which must be in the configured data
format, and reload it. The current tasks are lost unless backed up first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var restoreYes bool

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}

func runRestore(cmd *cobra.Command, args []string) error {
	logger.SetCommand("restore")
	return withStore(cmd, func(taskStore store.TaskStore) error {
		if !restoreYes {
			question := fmt.Sprintf("Replace %d current task(s) with %s? (y/N): ", len(taskStore.Tasks()), args[0])
			if !confirmOrAbort(cmd, question) {
				fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
				return nil
			}
		}
		if err := taskStore.Restore(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d task(s) from %s\n", len(taskStore.Tasks()), args[0])
		return nil
	})
}
