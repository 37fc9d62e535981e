package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Change the title, description or category of a task",
	Long: `Change fields of a task. Only the flags you pass are applied; a blank
title or category is ignored, while --description "" clears the description.

Examples:
  todowing edit 2 --title "Pay rent and bills"
  todowing edit 2 --description ""
  todowing edit 2 -c Personal`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description (empty clears it)")
	editCmd.Flags().StringP("category", "c", "", "new category")
}

// changedString returns a pointer to the flag value if the flag was given.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func runEdit(cmd *cobra.Command, args []string) error {
	logger.SetCommand("edit")
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	edit := store.TaskEdit{
		Title:       changedString(cmd, "title"),
		Description: changedString(cmd, "description"),
		Category:    changedString(cmd, "category"),
	}
	if edit.Title == nil && edit.Description == nil && edit.Category == nil {
		return errors.New("nothing to edit: pass --title, --description or --category")
	}

	return withStore(cmd, func(taskStore store.TaskStore) error {
		task, err := taskStore.Edit(id, edit)
		if err != nil {
			return err
		}
		if err := taskStore.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' updated successfully!\n", task.Title)
		return nil
	})
}
