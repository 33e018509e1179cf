// Package config holds the cprintf tool settings. Settings come from an
// optional YAML file, missing keys fall back to defaults and command line
// flags override both.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgolang/cprintf/internal/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyConfigPath  = errors.New("config path is empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrConfigValidation = errors.New("invalid config")
)

// Config represents the tool configuration.
type Config struct {
	LogLevel  string    `yaml:"log_level"`
	LogFormat string    `yaml:"log_format"`
	Toolchain Toolchain `yaml:"toolchain"`

	// Fixtures is a YAML fixtures file, empty means the built in suite.
	Fixtures string `yaml:"fixtures,omitempty"`
}

// Toolchain names the programs used to build the native harness.
type Toolchain struct {
	LLC string `yaml:"llc"`
	CC  string `yaml:"cc"`
}

// Default returns a configuration with defaults.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: string(logger.FormatText),
		Toolchain: Toolchain{
			LLC: "llc",
			CC:  "cc",
		},
	}
}

// Load reads a config file. A file that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("config file not found, using defaults", logger.Fields{"path": path})
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// fixture paths are relative to the config file
	if cfg.Fixtures != "" && !filepath.IsAbs(cfg.Fixtures) {
		cfg.Fixtures = filepath.Join(filepath.Dir(path), cfg.Fixtures)
	}
	return cfg, nil
}

// LoadFromReader decodes, completes and validates a config.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	if c.Toolchain.LLC == "" {
		c.Toolchain.LLC = defaults.Toolchain.LLC
	}
	if c.Toolchain.CC == "" {
		c.Toolchain.CC = defaults.Toolchain.CC
	}
}

// Validate checks that every setting holds a known value.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigValidation
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrConfigValidation, c.LogLevel)
	}
	switch logger.OutputFormat(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrConfigValidation, c.LogFormat)
	}
	if c.Toolchain.LLC == "" || c.Toolchain.CC == "" {
		return fmt.Errorf("%w: toolchain programs must be set", ErrConfigValidation)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
