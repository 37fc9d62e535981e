/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage todowing configuration",
	Long: `View and change todowing configuration settings.

Settings are read from .todowing.yaml (in ./.todowing/, $HOME or the current
directory), TODOWING_* environment variables and command-line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := runConfigSet(configFilePath(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// configKind tells how a settable key's value is parsed.
type configKind int

const (
	kindString configKind = iota
	kindBool
)

var settableKeys = map[string]configKind{
	"verbose":             kindBool,
	"data.dir":            kindString,
	"data.file":           kindString,
	"data.format":         kindString,
	"data.verifyChecksum": kindBool,
	"data.lock":           kindBool,
	"ui.pause":            kindBool,
	"ui.plain":            kindBool,
	"log.crashDir":        kindString,
}

func knownKeys() string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func runConfigShow(w io.Writer) error {
	cfg := *GetConfig()
	if isJSON() {
		return printJSON(w, cfg)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# config file: %s\n", used)
	}
	fmt.Fprintf(w, "# data file: %s\n", GetTaskFilePath())
	_, err = w.Write(out)
	return err
}

func runConfigGet(w io.Writer, key string) error {
	if _, ok := settableKeys[key]; !ok {
		return fmt.Errorf("unknown config key: %s (known keys: %s)", key, knownKeys())
	}
	value := viper.Get(key)
	if isJSON() {
		return printJSON(w, map[string]any{"key": key, "value": value})
	}
	fmt.Fprintln(w, value)
	return nil
}

// configFilePath is the file config set writes to: the file in use, or a new
// project file under ./.todowing/.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(configDir, configName+".yaml")
}

// runConfigSet stores key=value in the YAML file at path, keeping every other
// setting in that file as is.
func runConfigSet(path, key, raw string) (string, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s (known keys: %s)", key, knownKeys())
	}

	var value any = raw
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("invalid value for %s: %q is not a boolean", key, raw)
		}
		value = b
	case kindString:
		if strings.TrimSpace(raw) == "" {
			return "", fmt.Errorf("invalid value for %s: must not be empty", key)
		}
		if key == "data.format" {
			raw = strings.ToLower(raw)
			if err := validate.Var(raw, "oneof=json yaml toml sqlite"); err != nil {
				return "", fmt.Errorf("invalid value for %s: %q (use json, yaml, toml or sqlite)", key, raw)
			}
			value = raw
		}
	}

	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse config file %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}

	setNested(doc, strings.Split(key, "."), value)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("write config file %s: %w", path, err)
	}
	return path, nil
}

func setNested(doc map[string]any, path []string, value any) {
	for _, part := range path[:len(path)-1] {
		child, ok := doc[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			doc[part] = child
		}
		doc = child
	}
	doc[path[len(path)-1]] = value
}
