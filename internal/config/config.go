// Package config loads the optional ntm configuration file.
//
// Values are resolved in three layers: DefaultConfig, then the YAML file,
// then flags the user set explicitly on the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBudget = 1000
	DefaultFormat = "text"
)

// Config holds every setting the CLI reads from a file.
type Config struct {
	// Budget is the step budget used when `run` gets no steps argument.
	Budget int `yaml:"budget"`

	// Dedup enables the visited set.
	Dedup bool `yaml:"dedup"`

	// Format is the output format: text or json.
	Format string `yaml:"format"`

	// Database, when set, records every run in this SQLite ledger.
	Database string `yaml:"database,omitempty"`

	// LogFile, when set, additionally writes JSON logs to this file.
	LogFile string `yaml:"log_file,omitempty"`

	// LogJournal, when set, additionally sends logs to the systemd journal.
	LogJournal bool `yaml:"log_journal,omitempty"`

	// MetricsFile, when set, writes Prometheus metrics here after each run.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Budget: DefaultBudget,
		Dedup:  true,
		Format: DefaultFormat,
	}
}

// Load reads path over DefaultConfig. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
// Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings no command can honour.
func (c *Config) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", c.Budget)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	return nil
}
