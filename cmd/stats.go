package cmd

import (
	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics overall and per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetCommand("stats")
		return withStore(cmd, func(taskStore store.TaskStore) error {
			stats := taskStore.Statistics()
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), struct {
					store.Stats
					CompletionRate float64 `json:"completion_rate"`
				}{stats, stats.CompletionRate()})
			}
			ui.RenderStats(cmd.OutOrStdout(), stats)
			return nil
		})
	},
}

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the known categories",
	Long: `List the known categories: the built-in Work, Personal, Urgent, General,
Health and Learning plus every category used by a task.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetCommand("categories")
		return withStore(cmd, func(taskStore store.TaskStore) error {
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), taskStore.Categories())
			}
			ui.RenderCategories(cmd.OutOrStdout(), taskStore.Categories())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)
}
