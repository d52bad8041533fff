package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the optional file-based settings. Flags override file
// values; the file overrides defaults.
type Config struct {
	// DefaultAccount is used by notes operations when no --account is
	// given.
	DefaultAccount string `yaml:"default_account"`

	// DefaultCalendar is used by create-event when no --calendar is
	// given.
	DefaultCalendar string `yaml:"default_calendar"`

	// DefaultReminderList is used by create-reminder when no --list is
	// given.
	DefaultReminderList string `yaml:"default_reminder_list"`

	// OsascriptPath overrides the osascript binary location.
	OsascriptPath string `yaml:"osascript_path"`

	// RequestTimeoutSeconds bounds script executions and grant waits.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// Store selects the event store backend: "native" (default) or
	// "memory". The MACBRIDGE_STORE environment variable wins over the
	// file.
	Store string `yaml:"store"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RequestTimeoutSeconds: 30,
		Store:                 "native",
	}
}

// Path returns the config file location: $MACBRIDGE_CONFIG when set,
// otherwise ~/.config/macbridge/config.yaml.
func Path() string {
	if p := os.Getenv("MACBRIDGE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "macbridge", "config.yaml")
}

// Load reads the config file at path, falling back to Path() when path
// is empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 30
	}
	if cfg.Store == "" {
		cfg.Store = "native"
	}
	return cfg, nil
}

// RequestTimeout returns the configured bound as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// StoreBackend returns the effective event store backend, honoring the
// MACBRIDGE_STORE environment variable.
func (c *Config) StoreBackend() string {
	if s := os.Getenv("MACBRIDGE_STORE"); s != "" {
		return s
	}
	return c.Store
}
