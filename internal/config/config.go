// Package config handles configuration management for healthgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for healthgen.
type Config struct {
	// Connection is a PostgreSQL connection string. When empty, healthgen
	// boots an embedded PostgreSQL server rooted at DataDir instead.
	Connection string `mapstructure:"connection"`

	// DataDir is the local directory holding the embedded database files.
	DataDir string `mapstructure:"data_dir"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// GenerateConfig holds the seed and per-table target row counts for
// dataset generation. Regenerating with identical seed and counts
// reproduces the same dataset row for row.
type GenerateConfig struct {
	Seed      uint64 `mapstructure:"seed"`
	Families  int    `mapstructure:"families"`
	Employers int    `mapstructure:"employers"`
	Members   int    `mapstructure:"members"`
	Providers int    `mapstructure:"providers"`
	Policies  int    `mapstructure:"policies"`
	Claims    int    `mapstructure:"claims"`

	// DropExisting drops any existing schema before generation.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "healthgen-data",
		LogLevel: "info",
		Generate: GenerateConfig{
			Seed:      42,
			Families:  2000,
			Employers: 50,
			Members:   8000,
			Providers: 300,
			Policies:  3000,
			Claims:    50000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./healthgen.yaml
// 3. ~/.config/healthgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("healthgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "healthgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" && c.DataDir == "" {
		return fmt.Errorf("either a connection string or a data directory is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
// Row counts must be positive: dimension generators fail fatally on
// non-positive counts before any generation begins.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}

	counts := []struct {
		name  string
		value int
	}{
		{"families", c.Generate.Families},
		{"employers", c.Generate.Employers},
		{"members", c.Generate.Members},
		{"providers", c.Generate.Providers},
		{"policies", c.Generate.Policies},
		{"claims", c.Generate.Claims},
	}
	for _, count := range counts {
		if count.value <= 0 {
			return fmt.Errorf("%s count must be positive, got %d", count.name, count.value)
		}
	}
	return nil
}
