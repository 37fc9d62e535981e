/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/models"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks grouped by category",
	Long: `List tasks grouped by category. Within a category, open tasks come
first, then tasks are ordered by ID.

Examples:
  todowing list                  # All tasks
  todowing list --pending        # Incomplete tasks only
  todowing list --category work  # One category, any case`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCategory string
	listPending  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCategory, "category", "", "only show tasks of this category")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "only show incomplete tasks")
}

// categoryJSON keeps the group order of the text view in --json output.
type categoryJSON struct {
	Category string          `json:"category"`
	Tasks    []models.Record `json:"tasks"`
}

func runList(cmd *cobra.Command, _ []string) error {
	logger.SetCommand("list")
	return withStore(cmd, func(taskStore store.TaskStore) error {
		groups := taskStore.View(store.ViewOptions{
			Category:         listCategory,
			IncludeCompleted: !listPending,
		})

		if isJSON() {
			out := make([]categoryJSON, 0, len(groups))
			for _, g := range groups {
				out = append(out, categoryJSON{Category: g.Category, Tasks: taskRecords(g.Tasks)})
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		ui.RenderGroups(cmd.OutOrStdout(), groups, len(taskStore.Tasks()) > 0)
		return nil
	})
}
