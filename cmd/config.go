/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/store"
	"github.com/josephgoksu/todowing/types"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
)

const (
	configName = ".todowing"
	configDir  = ".todowing"
	envPrefix  = "TODOWING"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Translate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// setDefaults registers the default of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.file", "tasks.json")
	v.SetDefault("data.format", "json")
	v.SetDefault("data.verifyChecksum", true)
	v.SetDefault("data.lock", true)
	v.SetDefault("ui.pause", true)
	v.SetDefault("ui.plain", false)
	v.SetDefault("log.crashDir", configDir)
}

// bindFlags connects the root persistent flags to their config keys. It runs
// on every InitConfig so a viper.Reset between commands does not lose them.
func bindFlags(v *viper.Viper) {
	flags := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		"config":      "config",
		"verbose":     "verbose",
		"data.dir":    "data-dir",
		"data.file":   "data-file",
		"data.format": "format",
		"ui.plain":    "plain",
		"ui.pause":    "pause",
		"json":        "json",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// loadConfig reads .env, the config file, environment variables and flags
// into GlobalAppConfig and validates the result.
func loadConfig(v *viper.Viper) error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	// Environment variable handling must be set up before reading the config
	// file, e.g. TODOWING_DATA_FORMAT for data.format.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindFlags(v)

	if cfgFileFlag := v.GetString("config"); cfgFileFlag != "" {
		if _, err := os.Stat(cfgFileFlag); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("specified config file not found: %s", cfgFileFlag)
		}
		v.SetConfigFile(cfgFileFlag)
	} else {
		// A project-specific ./.todowing/ directory wins over home and cwd.
		if _, err := os.Stat(configDir); err == nil {
			v.AddConfigPath(configDir)
		} else {
			if home, err := os.UserHomeDir(); err == nil {
				v.AddConfigPath(home)
			}
			v.AddConfigPath(".")
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if v.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		default:
			return fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	setDefaults(v)

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Data.Format = strings.ToLower(cfg.Data.Format)

	if err := validateAppConfig(&cfg); err != nil {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	GlobalAppConfig = cfg
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	if err := loadConfig(viper.GetViper()); err != nil {
		HandleFatalError(err.Error(), err)
	}

	logger.SetBasePath(GlobalAppConfig.Log.CrashDir)
	if GlobalAppConfig.UI.Plain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// GetTaskFilePath returns the full path to the tasks file. The default file
// name follows the configured format, e.g. tasks.yaml or tasks.db.
func GetTaskFilePath() string {
	config := GetConfig()
	file := config.Data.File
	if file == store.DefaultFileName("json") {
		file = store.DefaultFileName(config.Data.Format)
	}
	return filepath.Join(config.Data.Dir, file)
}
