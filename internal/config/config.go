// Package config provides configuration management for Stockyard.
//
// Config file locations (priority order):
//  1. $STOCKYARD_CONFIG
//  2. ./stockyard.yaml
//  3. ~/.config/stockyard/config.yaml
//  4. /etc/stockyard/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Backup   BackupConfig   `yaml:"backup"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the store file
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BackupConfig controls the backup scheduler
type BackupConfig struct {
	Enabled         bool   `yaml:"enabled"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	Directory       string `yaml:"directory"`
	MaxBackups      int    `yaml:"max_backups"`
}

// Interval returns the backup interval as a duration
func (b BackupConfig) Interval() time.Duration {
	return time.Duration(b.IntervalSeconds) * time.Second
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default
	// value (notably backup.enabled) while explicit values override.
	cfg := *DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./data/inventory.db"},
		Backup: BackupConfig{
			Enabled:         true,
			IntervalSeconds: 300,
			Directory:       "./backups",
			MaxBackups:      3,
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./data/inventory.db"
	}
	if c.Backup.IntervalSeconds <= 0 {
		c.Backup.IntervalSeconds = 300
	}
	if c.Backup.Directory == "" {
		c.Backup.Directory = "./backups"
	}
	if c.Backup.MaxBackups == 0 {
		c.Backup.MaxBackups = 3
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
}
