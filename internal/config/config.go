// Package config handles configuration for llmchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Time formats accepted by TimeFormat
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	TUITheme string `json:"tui_theme,omitempty"` // TUI color theme
	// TimeFormat selects how message times are shown: "12h" (03:04 PM) or "24h" (15:04).
	TimeFormat string `json:"time_format"`
	// MinDelayMs and MaxDelayMs bound the simulated typing delay.
	// The delay is drawn uniformly from [MinDelayMs, MaxDelayMs).
	MinDelayMs int `json:"min_delay_ms"`
	MaxDelayMs int `json:"max_delay_ms"`
	// ReplyTimeoutMs aborts a pending reply. Zero disables the timeout.
	ReplyTimeoutMs int `json:"reply_timeout_ms"`
	// ResponsesFile points at a JSON document replacing the built-in canned replies.
	ResponsesFile string `json:"responses_file,omitempty"`
	// LogFile receives structured logs. The TUI owns stdout so logs never go there.
	LogFile  string         `json:"log_file,omitempty"`
	Verbose  bool           `json:"verbose"`
	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		TUITheme:       "llmchat",
		TimeFormat:     TimeFormat12h,
		MinDelayMs:     1000,
		MaxDelayMs:     2000,
		ReplyTimeoutMs: 30000,
		LogFile:        filepath.Join(homeDir, ".llmchat", "llmchat.log"),
		Verbose:        false,
		Markdown:       DefaultMarkdownConfig(),
	}
}

// MinDelay returns the lower delay bound as a duration
func (c Config) MinDelay() time.Duration {
	return time.Duration(c.MinDelayMs) * time.Millisecond
}

// MaxDelay returns the upper delay bound as a duration
func (c Config) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// ReplyTimeout returns the reply timeout as a duration
func (c Config) ReplyTimeout() time.Duration {
	return time.Duration(c.ReplyTimeoutMs) * time.Millisecond
}

// TimeLayout returns the Go time layout for TimeFormat
func (c Config) TimeLayout() string {
	if c.TimeFormat == TimeFormat24h {
		return "15:04"
	}
	return "03:04 PM"
}

// Validate checks that the configuration values are usable
func (c Config) Validate() error {
	switch c.TimeFormat {
	case TimeFormat12h, TimeFormat24h:
	default:
		return fmt.Errorf("invalid time_format %q: expected %q or %q", c.TimeFormat, TimeFormat12h, TimeFormat24h)
	}
	if c.MinDelayMs < 0 || c.MaxDelayMs < 0 {
		return fmt.Errorf("delays must not be negative (min=%d, max=%d)", c.MinDelayMs, c.MaxDelayMs)
	}
	if c.MaxDelayMs < c.MinDelayMs {
		return fmt.Errorf("max_delay_ms (%d) is lower than min_delay_ms (%d)", c.MaxDelayMs, c.MinDelayMs)
	}
	if c.ReplyTimeoutMs < 0 {
		return fmt.Errorf("reply_timeout_ms must not be negative, got %d", c.ReplyTimeoutMs)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".llmchat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
