/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool       `mapstructure:"verbose" yaml:"verbose"`
	Config  string     `mapstructure:"config" yaml:"config,omitempty"`
	Data    DataConfig `mapstructure:"data" yaml:"data" validate:"required"`
	UI      UIConfig   `mapstructure:"ui" yaml:"ui"`
	Log     LogConfig  `mapstructure:"log" yaml:"log" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir            string `mapstructure:"dir" yaml:"dir" validate:"required"`
	File           string `mapstructure:"file" yaml:"file" validate:"required"`
	Format         string `mapstructure:"format" yaml:"format" validate:"required,oneof=json yaml toml sqlite"`
	VerifyChecksum bool   `mapstructure:"verifyChecksum" yaml:"verifyChecksum"`
	Lock           bool   `mapstructure:"lock" yaml:"lock"`
}

// UIConfig controls the interactive menu
type UIConfig struct {
	// Pause waits for Enter after each menu action
	Pause bool `mapstructure:"pause" yaml:"pause"`
	// Plain disables colors and the promptui line editor even on a terminal
	Plain bool `mapstructure:"plain" yaml:"plain"`
}

// LogConfig holds crash log settings
type LogConfig struct {
	CrashDir string `mapstructure:"crashDir" yaml:"crashDir" validate:"required"`
}
