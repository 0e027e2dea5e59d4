package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/security"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Extensions restricts scanning to these file extensions. Empty
	// means every file is considered.
	Extensions []string `yaml:"extensions"`

	// ExcludePatterns are glob patterns matched against each path
	// segment; matching files and directories are skipped.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// MinSize skips duplicate candidates smaller than this, e.g. "1KB".
	// Empty means no minimum.
	MinSize string `yaml:"min_size"`

	// Output is the default report path. Empty means stdout.
	Output string `yaml:"output"`

	// Format selects the report format: "text" or "json".
	Format string `yaml:"format"`

	Quiet    bool   `yaml:"quiet"`
	LogLevel string `yaml:"log_level"`
	NoColor  bool   `yaml:"no_color"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so a partial file keeps them.
	config := *GetDefault()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("format must be \"text\" or \"json\", got %q", c.Format)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	if _, err := c.MinSizeBytes(); err != nil {
		return fmt.Errorf("invalid min_size %q: %w", c.MinSize, err)
	}

	for _, ext := range c.Extensions {
		if strings.ContainsRune(ext, os.PathSeparator) {
			return fmt.Errorf("extension must not contain a path separator: %q", ext)
		}
	}

	if err := security.ValidateGlobPatterns(c.ExcludePatterns); err != nil {
		return fmt.Errorf("invalid exclude pattern: %w", err)
	}

	return nil
}

// MinSizeBytes parses the human-readable MinSize into bytes. An empty
// value means no minimum.
func (c *Config) MinSizeBytes() (int64, error) {
	if c.MinSize == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MinSize)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dupfind")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := GetDefault()
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
