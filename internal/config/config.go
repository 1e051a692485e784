// Package config provides configuration management for ucm using Viper.
package config

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/ucm/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "ucm"

// Config represents the tool's own configuration. It controls where
// managed config packages live, not their content.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// ConfDir is the directory of committed config packages.
	ConfDir string `mapstructure:"confdir" yaml:"confdir"`

	// SaveDir is the directory of staged, uncommitted package copies.
	SaveDir string `mapstructure:"savedir" yaml:"savedir"`

	// Format is the default render format for `ucm show`.
	Format string `mapstructure:"format" yaml:"format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigHome())

	// Environment variable support (UCM_CONFDIR etc.)
	viper.SetEnvPrefix("UCM")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("confdir", paths.ConfDir())
	viper.SetDefault("savedir", paths.SaveDir())
	viper.SetDefault("format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values that would break the
// CLI later in less obvious ways.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "text", "json", "yaml", "toml":
	default:
		return errors.Newf("invalid format %q (want text, json, yaml or toml)", c.Format)
	}
	if c.ConfDir != "" && !filepath.IsAbs(c.ConfDir) {
		return errors.Newf("confdir must be absolute, got %q", c.ConfDir)
	}
	if c.SaveDir != "" && !filepath.IsAbs(c.SaveDir) {
		return errors.Newf("savedir must be absolute, got %q", c.SaveDir)
	}
	return nil
}
