package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/todowing/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// taskRecords converts tasks to their persisted form for --json output.
func taskRecords(tasks []models.Task) []models.Record {
	records := make([]models.Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}
	return records
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid task ID %q: please enter a valid number", arg)
	}
	return id, nil
}

// confirmOrAbort asks a y/N question on the command's input.
func confirmOrAbort(cmd *cobra.Command, question string) bool {
	prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), GetConfig().UI.Plain)
	answer, err := prompt.Prompt(question)
	if err != nil {
		return false
	}
	return isYes(answer)
}
