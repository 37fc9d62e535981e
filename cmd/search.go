package cmd

import (
	"strings"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search tasks by title, description or category",
	Long: `Search tasks whose title, description or category contains the query,
ignoring case. Results are listed in creation order.

Examples:
  todowing search rent
  todowing search "due monthly"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger.SetCommand("search")
	query := strings.Join(args, " ")

	return withStore(cmd, func(taskStore store.TaskStore) error {
		matches := taskStore.Search(query)
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), taskRecords(matches))
		}
		ui.RenderSearchResults(cmd.OutOrStdout(), matches)
		return nil
	})
}
