// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// guide widget.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quorumhq/guide-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete guide widget configuration.
type Config struct {
	Version string `toml:"version"`

	// Portal connection configuration
	Portal PortalConfig `toml:"portal"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// State (local persistence) configuration
	State StateConfig `toml:"state"`
}

// PortalConfig contains connection settings for the portal assistant API.
type PortalConfig struct {
	// BaseURL is the portal API base URL
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `toml:"timeout_seconds"`
	// MaxRetries for transient failures
	MaxRetries int `toml:"max_retries"`
	// RetryDelayMs between retries
	RetryDelayMs int `toml:"retry_delay_ms"`
}

// UIConfig contains presentation configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// MobileColumns is the terminal width at or below which the widget
	// renders as a full-width sheet instead of an anchored panel
	MobileColumns int `toml:"mobile_columns"`
	// Markdown enables rendered markdown in assistant replies; when false
	// replies are shown as plain text
	Markdown bool `toml:"markdown"`
	// MaxInsightsCompact caps the insight feed in the compact layout
	MaxInsightsCompact int `toml:"max_insights_compact"`
	// MaxInsightsExpanded caps the insight feed in the expanded layout
	MaxInsightsExpanded int `toml:"max_insights_expanded"`
}

// StateConfig contains local persistence configuration.
type StateConfig struct {
	// DatabasePath is the sqlite file for dismissed insights
	// (empty = ~/.quorum-guide/state.db)
	DatabasePath string `toml:"database_path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Portal: PortalConfig{
			BaseURL:        "http://127.0.0.1:8420",
			TimeoutSeconds: 30,
			MaxRetries:     3,
			RetryDelayMs:   1000,
		},

		UI: UIConfig{
			Theme:               "dark",
			MobileColumns:       72,
			Markdown:            true,
			MaxInsightsCompact:  2,
			MaxInsightsExpanded: 4,
		},

		State: StateConfig{
			DatabasePath: "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the guide configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".quorum-guide"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabasePath resolves the sqlite path, applying the default when the
// config leaves it empty.
func (c *Config) DatabasePath() (string, error) {
	if c.State.DatabasePath != "" {
		return c.State.DatabasePath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back to
// defaults if it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file is not an error; defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		fillDefaults(cfg)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Portal.BaseURL == "" {
		cfg.Portal.BaseURL = defaults.Portal.BaseURL
	}
	if cfg.Portal.TimeoutSeconds == 0 {
		cfg.Portal.TimeoutSeconds = defaults.Portal.TimeoutSeconds
	}
	if cfg.Portal.MaxRetries == 0 {
		cfg.Portal.MaxRetries = defaults.Portal.MaxRetries
	}
	if cfg.Portal.RetryDelayMs == 0 {
		cfg.Portal.RetryDelayMs = defaults.Portal.RetryDelayMs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.MobileColumns == 0 {
		cfg.UI.MobileColumns = defaults.UI.MobileColumns
	}
	if cfg.UI.MaxInsightsCompact == 0 {
		cfg.UI.MaxInsightsCompact = defaults.UI.MaxInsightsCompact
	}
	if cfg.UI.MaxInsightsExpanded == 0 {
		cfg.UI.MaxInsightsExpanded = defaults.UI.MaxInsightsExpanded
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies QUORUM_GUIDE_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("QUORUM_GUIDE_PORTAL_URL"); v != "" {
		c.Portal.BaseURL = v
	}
	if v := os.Getenv("QUORUM_GUIDE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Portal.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("QUORUM_GUIDE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("QUORUM_GUIDE_DB_PATH"); v != "" {
		c.State.DatabasePath = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !strings.HasPrefix(c.Portal.BaseURL, "http://") && !strings.HasPrefix(c.Portal.BaseURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "portal.base_url",
			Message: fmt.Sprintf("invalid URL %q, must start with http:// or https://", c.Portal.BaseURL),
		})
	}
	if c.Portal.TimeoutSeconds < 1 || c.Portal.TimeoutSeconds > 300 {
		errs = append(errs, ValidationError{
			Field:   "portal.timeout_seconds",
			Message: fmt.Sprintf("invalid timeout %d, must be 1-300", c.Portal.TimeoutSeconds),
		})
	}
	if c.Portal.MaxRetries < 0 || c.Portal.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "portal.max_retries",
			Message: fmt.Sprintf("invalid retry count %d, must be 0-10", c.Portal.MaxRetries),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.MobileColumns < 20 {
		errs = append(errs, ValidationError{
			Field:   "ui.mobile_columns",
			Message: fmt.Sprintf("invalid breakpoint %d, must be at least 20", c.UI.MobileColumns),
		})
	}
	if c.UI.MaxInsightsCompact < 1 || c.UI.MaxInsightsExpanded < c.UI.MaxInsightsCompact {
		errs = append(errs, ValidationError{
			Field:   "ui.max_insights",
			Message: "compact cap must be at least 1 and no greater than the expanded cap",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the portal request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Portal.TimeoutSeconds) * time.Second
}

// RetryDelay returns the delay between portal retries as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Portal.RetryDelayMs) * time.Millisecond
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so
// a concurrent reload never observes a half-written file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# quorum-guide configuration file")
	fmt.Fprintln(&buf, "# Edit with care; the widget reloads this file live.")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
