// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/ragify-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ragify configuration.
type Config struct {
	Version string `toml:"version" yaml:"version"`

	// Storage configuration
	Storage StorageConfig `toml:"storage" yaml:"storage"`

	// Log configuration
	Log LogConfig `toml:"log" yaml:"log"`

	// UI configuration
	UI UIConfig `toml:"ui" yaml:"ui"`
}

// StorageConfig selects where chats and message logs are kept.
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "memory"
	Backend string `toml:"backend" yaml:"backend"`
	// DataDir holds the record files or the SQLite database
	DataDir string `toml:"data_dir" yaml:"data_dir"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level" yaml:"level"`
	// File is the log file path; empty disables logging
	File string `toml:"file" yaml:"file"`
	// MaxSizeMB rotates the file after this many megabytes
	MaxSizeMB int `toml:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is how many rotated files to keep
	MaxBackups int `toml:"max_backups" yaml:"max_backups"`
	// MaxAgeDays deletes rotated files older than this
	MaxAgeDays int `toml:"max_age_days" yaml:"max_age_days"`
	// Compress gzips rotated files
	Compress bool `toml:"compress" yaml:"compress"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" yaml:"theme"`
	// TypingSpeedMs is the per-character reveal delay for new output; 0 disables it
	TypingSpeedMs int `toml:"typing_speed_ms" yaml:"typing_speed_ms"`
	// SidebarWidth is the expanded sidebar width in cells
	SidebarWidth int `toml:"sidebar_width" yaml:"sidebar_width"`
	// ShowHints shows the key hint line under an empty terminal
	ShowHints bool `toml:"show_hints" yaml:"show_hints"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" yaml:"alt_screen"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".ragify"
	}

	return &Config{
		Version: "1.0.0",

		Storage: StorageConfig{
			Backend: "file",
			DataDir: filepath.Join(dir, "data"),
		},

		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dir, "logs", "ragify.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},

		UI: UIConfig{
			Theme:         "dark",
			TypingSpeedMs: 24,
			SidebarWidth:  28,
			ShowHints:     true,
			AltScreen:     true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ragify configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragify"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Path returns the config file Load would read, or "" when neither the
// TOML nor the YAML file exists.
func Path() string {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file.
// Tries TOML first, then YAML, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if path := Path(); path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .yaml or .yml are read as YAML, anything else as TOML. Keys missing from
// the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores defaults for string fields a file set to "".
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaults.Storage.DataDir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.SidebarWidth == 0 {
		cfg.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# ragify configuration file\n")
	buf.WriteString("# Changes are picked up while ragify is running.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidateErrors if anything
// is out of range.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validBackends := map[string]bool{"file": true, "sqlite": true, "memory": true}
	if !validBackends[c.Storage.Backend] {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, memory", c.Storage.Backend),
		})
	}
	if c.Storage.Backend != "memory" && c.Storage.DataDir == "" {
		errs = append(errs, ValidationError{Field: "storage.data_dir", Message: "must not be empty"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "log", Message: "rotation limits must not be negative"})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.TypingSpeedMs < 0 || c.UI.TypingSpeedMs > 1000 {
		errs = append(errs, ValidationError{Field: "ui.typing_speed_ms", Message: "must be between 0 and 1000"})
	}
	if c.UI.SidebarWidth < 12 || c.UI.SidebarWidth > 80 {
		errs = append(errs, ValidationError{Field: "ui.sidebar_width", Message: "must be between 12 and 80"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - RAGIFY_DATA_DIR: overrides storage.data_dir
//   - RAGIFY_STORAGE: overrides storage.backend
//   - RAGIFY_LOG_LEVEL: overrides log.level
//   - RAGIFY_LOG_FILE: overrides log.file ("" keeps the configured file)
//   - RAGIFY_THEME: overrides ui.theme
//   - RAGIFY_TYPING_SPEED_MS: overrides ui.typing_speed_ms
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("RAGIFY_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if backend := os.Getenv("RAGIFY_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if level := os.Getenv("RAGIFY_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if file := os.Getenv("RAGIFY_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	if theme := os.Getenv("RAGIFY_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if speed := os.Getenv("RAGIFY_TYPING_SPEED_MS"); speed != "" {
		if ms, err := strconv.Atoi(speed); err == nil {
			c.UI.TypingSpeedMs = ms
		}
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
