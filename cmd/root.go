/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todowing",
	Short: "todowing is a personal to-do list for the terminal.",
	Long: `todowing keeps a personal to-do list in a local file (JSON by default).
Tasks have a title, an optional description and a category, and can be
marked completed, edited, searched and filtered.

Run without a subcommand to open the numbered menu, or use the subcommands
below for one-shot operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		HandleFatalError(userMessage(err), err)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.todowing/.todowing.yaml, $HOME/.todowing.yaml or ./.todowing.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.String("data-dir", ".", "directory holding the data file")
	flags.String("data-file", "tasks.json", "data file name or path")
	flags.String("format", "json", "data format: json, yaml, toml or sqlite")
	flags.Bool("plain", false, "disable colors and the terminal line editor")
	flags.Bool("pause", true, "wait for Enter after each menu action")
	flags.Bool("json", false, "print list, search, stats and categories output as JSON")

	// Flags are bound to viper in InitConfig.
}

// GetStore initializes and returns the task store using the unified types.AppConfig.
func GetStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	config := GetConfig()

	taskFilePath := GetTaskFilePath()
	logger.SetDataFile(taskFilePath)

	err := s.Initialize(map[string]string{
		"dataFile":       taskFilePath,
		"dataFileFormat": config.Data.Format,
		"verifyChecksum": fmt.Sprint(config.Data.VerifyChecksum),
		"lock":           fmt.Sprint(config.Data.Lock),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", taskFilePath, err)
	}
	return s, nil
}

// loadedStore opens the store for a one-shot subcommand. Unlike the menu, a
// load failure is fatal so a later save cannot overwrite unreadable data.
func loadedStore(errOut io.Writer) (store.TaskStore, error) {
	taskStore, err := GetStore()
	if err != nil {
		return nil, err
	}
	if err := taskStore.Load(); err != nil {
		_ = taskStore.Close()
		return nil, err
	}
	printWarnings(errOut, taskStore.Warnings())
	return taskStore, nil
}

// withStore runs fn against a loaded store and closes it afterwards. Load
// warnings go to the command's error output.
func withStore(cmd *cobra.Command, fn func(store.TaskStore) error) error {
	taskStore, err := loadedStore(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := taskStore.Close(); err != nil {
			LogError("failed to close task store", err)
		}
	}()
	return fn(taskStore)
}
