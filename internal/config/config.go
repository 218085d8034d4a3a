package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// EnvHome overrides the data directory
	EnvHome = "WORKLOG_HOME"

	// DefaultHistoryDays is how many working days history shows when not told otherwise
	DefaultHistoryDays = 7

	configFile = "config.json"
	dbFile     = "worklog.db"
)

// Config is the resolved runtime configuration
type Config struct {
	DataDir     string `json:"-"`
	DBPath      string `json:"db_path,omitempty"`
	HistoryDays int    `json:"history_days,omitempty"`
	Debug       bool   `json:"debug,omitempty"`
}

// DefaultDataDir returns $WORKLOG_HOME or ~/.worklog
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".worklog"), nil
}

// Load resolves the data directory and reads config.json from it if present.
// A missing file yields defaults.
func Load() (*Config, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json from dir and fills in defaults
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{DataDir: dir}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, dbFile)
	} else if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(dir, cfg.DBPath)
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}

	return cfg, nil
}
