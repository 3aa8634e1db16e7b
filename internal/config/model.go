package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hamidzr/flashcfg/constant"
	"github.com/hamidzr/flashcfg/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Dump formats understood by the dump command.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
	FormatYAML   = "yaml"
	FormatCBOR   = "cbor"
)

var formats = []string{FormatJSON, FormatPretty, FormatYAML, FormatCBOR}

// Config holds all configuration for the application
type Config struct {
	// flash emulation
	Root         string `mapstructure:"root" yaml:"root"`
	File         string `mapstructure:"file" yaml:"file"`
	Capacity     int    `mapstructure:"capacity" yaml:"capacity"`
	FormatOnFail bool   `mapstructure:"format_on_fail" yaml:"format_on_fail"`

	// output
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Format   string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		File:         store.DefaultPath,
		Capacity:     store.DefaultCapacity,
		FormatOnFail: false,
		LogLevel:     "warn",
		Format:       FormatJSON,
	}
}

// Validate checks values that viper cannot type check.
func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("invalid format %q, expected one of %s", c.Format, strings.Join(formats, ", "))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.File == "" {
		return fmt.Errorf("settings file name cannot be empty")
	}
	return nil
}

// BindFlags binds CLI flags to the cobra command
func BindFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()

	cmd.PersistentFlags().StringP("root", "r", defaults.Root, "Host directory that stands in for the flash filesystem")
	cmd.PersistentFlags().StringP("file", "f", defaults.File, "Settings file inside the root")
	cmd.PersistentFlags().IntP("capacity", "c", defaults.Capacity, "Settings document capacity in bytes (0 for unlimited)")
	cmd.PersistentFlags().Bool("format-on-fail", defaults.FormatOnFail, "Create the root directory when it does not exist")
	cmd.PersistentFlags().StringP("log-level", "l", defaults.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("format", defaults.Format, "Output format for dump ("+strings.Join(formats, ", ")+")")
	cmd.PersistentFlags().Bool("init-config", false, "Generate and save default config file")
}

// SetViperDefaults sets default values in viper configuration
func SetViperDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("file", defaults.File)
	v.SetDefault("capacity", defaults.Capacity)
	v.SetDefault("format_on_fail", defaults.FormatOnFail)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
}

// SetViperEnvSettings configures viper environment variable settings
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix(constant.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}
