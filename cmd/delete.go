/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <task_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID. A confirmation prompt is displayed unless --yes is given. Other tasks keep their IDs.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	logger.SetCommand("delete")
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(taskStore store.TaskStore) error {
		task, err := taskStore.FindByID(id)
		if err != nil {
			return err
		}

		if !deleteYes {
			question := fmt.Sprintf("Are you sure you want to delete task '%s'? (y/N): ", task.Title)
			if !confirmOrAbort(cmd, question) {
				fmt.Fprintln(cmd.OutOrStdout(), "Delete operation cancelled.")
				return nil
			}
		}

		if _, err := taskStore.Delete(id); err != nil {
			return err
		}
		if err := taskStore.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' deleted successfully!\n", task.Title)
		return nil
	})
}
