package cmd

import (
	"fmt"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <task_id>",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as completed",
	Example: `  todowing done 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("done")
		return setCompletion(cmd, args[0], true)
	},
}

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:     "undo <task_id>",
	Aliases: []string{"reopen"},
	Short:   "Mark a completed task as incomplete",
	Example: `  todowing undo 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("undo")
		return setCompletion(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
}

// setCompletion completes or reopens a task. A task already in the requested
// state is reported and nothing is saved.
func setCompletion(cmd *cobra.Command, arg string, completed bool) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	return withStore(cmd, func(taskStore store.TaskStore) error {
		mark, state := taskStore.MarkIncomplete, "incomplete"
		if completed {
			mark, state = taskStore.MarkCompleted, "completed"
		}

		task, changed, err := mark(id)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' is already %s!\n", task.Title, state)
			return nil
		}
		if err := taskStore.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' marked as %s!\n", task.Title, state)
		return nil
	})
}
