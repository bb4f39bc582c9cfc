// Package config resolves runtime settings from defaults, an optional YAML
// file and TASKBOARD_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskboard/internal/util"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr            string        `yaml:"addr"`
	DBPath          string        `yaml:"db_path"`
	StaticDir       string        `yaml:"static_dir"`
	StoreTimeout    time.Duration `yaml:"store_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Log             Log           `yaml:"log"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File enables rotated file output next to stdout when set.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Addr:            ":8080",
		DBPath:          "data/taskboard.db",
		StaticDir:       "web/dist",
		StoreTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Log: Log{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Addr = util.EnvOrDefault("TASKBOARD_ADDR", c.Addr)
	c.DBPath = util.EnvOrDefault("TASKBOARD_DB_PATH", c.DBPath)
	c.StaticDir = util.EnvOrDefault("TASKBOARD_STATIC_DIR", c.StaticDir)
	c.StoreTimeout = util.EnvDuration("TASKBOARD_STORE_TIMEOUT", c.StoreTimeout)
	c.ShutdownTimeout = util.EnvDuration("TASKBOARD_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.Log.Level = util.EnvOrDefault("TASKBOARD_LOG_LEVEL", c.Log.Level)
	c.Log.Format = util.EnvOrDefault("TASKBOARD_LOG_FORMAT", c.Log.Format)
	c.Log.File = util.EnvOrDefault("TASKBOARD_LOG_FILE", c.Log.File)
	c.Log.MaxSizeMB = util.EnvInt("TASKBOARD_LOG_MAX_SIZE_MB", c.Log.MaxSizeMB)
	c.Log.MaxBackups = util.EnvInt("TASKBOARD_LOG_MAX_BACKUPS", c.Log.MaxBackups)
	c.Log.MaxAgeDays = util.EnvInt("TASKBOARD_LOG_MAX_AGE_DAYS", c.Log.MaxAgeDays)
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store_timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}
