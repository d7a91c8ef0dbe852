// Package config loads the configuration of the mailmsg command: defaults,
// then an optional YAML file, then MAILMSG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mailmsg/message"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatText = "text"
	FormatMIME = "mime"
)

// ErrInvalid is returned when a configuration value is not acceptable.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the complete configuration of the command.
type Config struct {
	LogLevel         string `yaml:"log_level"`
	Format           string `yaml:"format"`
	AttachmentPrefix string `yaml:"attachment_prefix"`
}

// Load returns the defaults overridden by environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, cfg.Validate()
}

// LoadFromFile loads configuration from a YAML file on top of the defaults,
// then overrides with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvVars()

	return cfg, cfg.Validate()
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	switch c.Format {
	case FormatYAML, FormatText, FormatMIME:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// applyDefaults sets default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.LogLevel = "warn"
	c.Format = FormatYAML
	c.AttachmentPrefix = message.DefaultFilenamePrefix
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("MAILMSG_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("MAILMSG_FORMAT"); v != "" {
		c.Format = strings.ToLower(v)
	}
	if v := os.Getenv("MAILMSG_ATTACHMENT_PREFIX"); v != "" {
		c.AttachmentPrefix = v
	}
}
