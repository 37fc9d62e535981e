package cmd

import (
	"fmt"
	"runtime"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/spf13/cobra"
)

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "todowing version %s\n", GetVersion())
		if isVerbose() {
			fmt.Fprintf(out, "go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "session: %s\n", logger.SessionID())
			fmt.Fprintf(out, "data:    %s (%s)\n", GetTaskFilePath(), GetConfig().Data.Format)
			if logs, err := logger.ListCrashLogs(); err == nil {
				fmt.Fprintf(out, "crashes: %d log(s) in %s\n", len(logs), logger.Dir())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
