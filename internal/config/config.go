package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamidzr/flashcfg/constant"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const configFileName = "config.yaml"

// getConfigPaths returns the config directory paths in priority order
// prefers ~/.config over the OS specific config dir
func getConfigPaths() []string {
	var paths []string

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constant.ProjectName))
		paths = append(paths, filepath.Join(homeDir, "."+constant.ProjectName))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constant.ProjectName))
	}
	paths = append(paths, ".")

	return paths
}

// getPreferredConfigDir returns the preferred config directory for writing
func getPreferredConfigDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", constant.ProjectName), nil
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(userConfigDir, constant.ProjectName), nil
	}

	return "", fmt.Errorf("unable to determine config directory")
}

// InitConfig initializes Viper configuration with proper priority:
// 1. CLI flags (highest priority)
// 2. Environment variables
// 3. Config file
// 4. Defaults
func InitConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range getConfigPaths() {
		v.AddConfigPath(path)
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is ok, we'll use defaults + env vars + flags
	} else if err := validateConfigFileKeys(v.ConfigFileUsed()); err != nil {
		return nil, err
	}
	registerConfigKeyAliases(v)

	if err := bindFlags(v, cmd.LocalFlags(), cmd.InheritedFlags()); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindFlags binds every flag that names a config key, so "--log-level"
// overrides "log_level".
func bindFlags(v *viper.Viper, sets ...*pflag.FlagSet) error {
	var bindErr error
	for _, fs := range sets {
		fs.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKey(f.Name)
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
	}
	return bindErr
}

// InitConfigFile generates and saves a default config file to the appropriate location
func InitConfigFile() (string, error) {
	configDir, err := getPreferredConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	configPath := filepath.Join(configDir, configFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	yamlData, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	header := `# flashcfg configuration file
# Generated automatically - customize as needed
#
# root: host directory used as the flash filesystem
# file: settings file inside root, e.g. /config.json
# capacity: settings document size limit in bytes, 0 for unlimited
# format: dump output format: json, pretty, yaml, cbor
#

`

	if err := os.WriteFile(configPath, []byte(header+string(yamlData)), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return configPath, nil
}
