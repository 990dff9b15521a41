package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
// The limits on arguments, entries and sizes are fixed and not configurable.
type Config struct {
	Editor     string `mapstructure:"editor"`      // Editor executable (e.g., "gvim")
	ServerName string `mapstructure:"server_name"` // Remote server name of the shared instance

	// Log contains logging settings
	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"` // "debug", "info", "warn" or "error"
	File  string `mapstructure:"file"`  // Log file path; empty logs to stderr
}

const (
	DefaultEditor     = "gvim"
	DefaultServerName = "GVIM"
	DefaultLogLevel   = "warn"

	// EnvPrefix is the prefix of environment variable overrides (e.g., GVL_EDITOR)
	EnvPrefix = "GVL"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gvl"), nil
}

// Load reads the default config file, if any, and applies environment overrides
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads the config from path. An empty path means the default location.
// A missing default config file is not an error; a missing explicit one is.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		configDir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
	}

	// Set defaults
	v.SetDefault("editor", DefaultEditor)
	v.SetDefault("server_name", DefaultServerName)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")

	// Allow environment variable overrides (GVL_LOG_LEVEL for log.level)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// Config file not found is okay, we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.Editor == "" {
		return errors.New("editor must not be empty")
	}
	if c.ServerName == "" {
		return errors.New("server_name must not be empty")
	}
	return nil
}
