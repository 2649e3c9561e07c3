// Package config loads and validates the lintgate configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lintgate/lintgate/internal/types"
)

// ToolSettings holds per-tool options within a severity group.
type ToolSettings struct {
	Fix bool `mapstructure:"fix"`
}

// SeverityGroup configures the tools reported at one severity and the
// optional maximum finding count for that severity's threshold bucket.
type SeverityGroup struct {
	Max   *int                    `mapstructure:"max"`
	Tools map[string]ToolSettings `mapstructure:"tools"`
}

// InspectionsConfig maps severity buckets to their configured tools.
type InspectionsConfig struct {
	Errors   SeverityGroup `mapstructure:"errors"`
	Warnings SeverityGroup `mapstructure:"warnings"`
	Info     SeverityGroup `mapstructure:"info"`
}

// Config represents the lintgate configuration.
type Config struct {
	Root        string            `mapstructure:"root"`
	Include     []string          `mapstructure:"include"`
	Exclude     []string          `mapstructure:"exclude"`
	Profile     string            `mapstructure:"profile"`
	ProfileDir  string            `mapstructure:"profileDir"`
	Inherit     bool              `mapstructure:"inherit"`
	Quiet       bool              `mapstructure:"quiet"`
	ApplyFixes  bool              `mapstructure:"applyFixes"`
	Format      string            `mapstructure:"format"`
	Output      string            `mapstructure:"output"`
	LogLevel    string            `mapstructure:"logLevel"`
	Inspections InspectionsConfig `mapstructure:"inspections"`
}

// Group pairs a severity with its configured group, for callers that iterate
// all three buckets.
type Group struct {
	Severity types.Severity
	Group    SeverityGroup
}

// Groups returns the configured severity groups in a stable order.
func (c *Config) Groups() []Group {
	return []Group{
		{Severity: types.SeverityError, Group: c.Inspections.Errors},
		{Severity: types.SeverityWarning, Group: c.Inspections.Warnings},
		{Severity: types.SeverityInfo, Group: c.Inspections.Info},
	}
}

// Limits returns the per-bucket maximum finding counts.
func (c *Config) Limits() types.Limits {
	return types.Limits{
		MaxErrors:   c.Inspections.Errors.Max,
		MaxWarnings: c.Inspections.Warnings.Max,
		MaxInfo:     c.Inspections.Info.Max,
	}
}

// FixEnabled reports whether automatic fixing is configured for a tool name.
// The name is the configured name, which may differ from the resolved id.
func (c *Config) FixEnabled(name string) bool {
	for _, g := range c.Groups() {
		if s, ok := g.Group.Tools[name]; ok && s.Fix {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from config file, environment, and defaults.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("include", []string{"**/*"})
	viper.SetDefault("format", "console")
	viper.SetDefault("profileDir", ".lintgate/profiles")
	viper.SetDefault("quiet", false)
	viper.SetDefault("applyFixes", false)
	viper.SetDefault("logLevel", "info")

	// Config file locations
	configPaths := []string{".lintgate.yaml", ".lintgate.yml", ".lintgate.json"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix("LINTGATE")
	viper.AutomaticEnv()

	// Schema-validate the raw settings before unmarshaling so that shape
	// errors carry CUE path context instead of mapstructure noise.
	if errs := ValidateSettings(viper.AllSettings()); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", errs[0])
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override root if provided
	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "xml" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'xml'", config.Format)
	}

	if config.Format != "console" && config.Output == "" {
		return fmt.Errorf("output file is required when format is not 'console'")
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel: %s. Must be 'debug', 'info', 'warn', or 'error'", config.LogLevel)
	}

	for _, g := range config.Groups() {
		if g.Group.Max != nil && *g.Group.Max < 0 {
			return fmt.Errorf("%s: max must not be negative", g.Severity)
		}
	}

	if config.Inherit && config.ProfileDir == "" {
		return fmt.Errorf("profileDir is required when inherit is enabled")
	}

	return nil
}
