/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a"},
	Short:   "Add a new task",
	Long: `Add a task to the list. The title is required; the description is
optional and the category defaults to General.

Examples:
  todowing add "Buy milk"
  todowing add "Pay rent" -d "due on the 1st" -c Urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addCategory    string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "task category (default General)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	logger.SetCommand("add")
	title := strings.Join(args, " ")

	return withStore(cmd, func(taskStore store.TaskStore) error {
		task, err := taskStore.Add(title, addDescription, addCategory)
		if err != nil {
			return err
		}
		if err := taskStore.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' added successfully! (ID: %d)\n", task.Title, task.ID)
		return nil
	})
}
