// ABOUTME: Configuration management for diary with YAML config loading.
// ABOUTME: Handles logging and remote journal settings, env overrides, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. DIARY_LOG_LEVEL.
const EnvPrefix = "DIARY"

// Config stores diary configuration loaded from ~/.config/diary/config.yaml.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Remote RemoteConfig `yaml:"remote"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`

	// Format is the log format: json, text, plain (default: text)
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// RemoteConfig holds settings for reading entries from a remote journal API.
type RemoteConfig struct {
	APIURL string `yaml:"api_url" envconfig:"REMOTE_API_URL"`
	APIKey string `yaml:"api_key" envconfig:"REMOTE_API_KEY"`
	TeamID string `yaml:"team_id" envconfig:"REMOTE_TEAM_ID"`
}

// HasRemote returns true if a remote journal is fully configured.
func (c *Config) HasRemote() bool {
	return c.Remote.APIKey != "" && c.Remote.TeamID != "" && c.Remote.APIURL != ""
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "diary", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk, then applies DIARY_* environment overrides.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from the given path, then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Process each section separately so env names stay flat (DIARY_LOG_LEVEL).
	if err := envconfig.Process(EnvPrefix, &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config from env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg.Remote); err != nil {
		return nil, fmt.Errorf("failed to load remote config from env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// ReadFile parses only the file at path: no env overrides, no defaults.
// A missing file yields an empty Config.
func ReadFile(path string) (*Config, error) {
	cfg := &Config{}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", expanded, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Keys lists the settings accepted by Set.
var Keys = []string{
	"log.level",
	"log.format",
	"remote.api_url",
	"remote.api_key",
	"remote.team_id",
}

// Set assigns one dotted setting, validating log values.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log.level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("invalid log level %q (want debug, info, warn, error)", value)
		}
		c.Log.Level = strings.ToLower(value)
	case "log.format":
		switch strings.ToLower(value) {
		case "text", "json", "plain":
		default:
			return fmt.Errorf("invalid log format %q (want text, json, plain)", value)
		}
		c.Log.Format = strings.ToLower(value)
	case "remote.api_url":
		c.Remote.APIURL = value
	case "remote.api_key":
		c.Remote.APIKey = value
	case "remote.team_id":
		c.Remote.TeamID = value
	default:
		return fmt.Errorf("unknown config key %q (want one of %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Save writes config to the default config path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes config to path, creating parent directories.
func (c *Config) SaveFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(expanded, data, 0600)
}
