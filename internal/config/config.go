package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	PageSize     int    `json:"pageSize"`     // records per page in list views
	MaxTags      int    `json:"maxTags"`      // sanity cap on tags per record, 0 = unlimited
	DatabasePath string `json:"databasePath"` // SQLite database file
	LogLevel     string `json:"logLevel"`     // "debug" | "info" | "warn" | "error"
	LogPath      string `json:"logPath"`      // structured log file
}

// DefaultConfig returns the default configuration. Path defaults are left
// empty here and resolved lazily so tests never touch the home directory.
func DefaultConfig() Config {
	return Config{
		PageSize: 12,
		MaxTags:  12,
		LogLevel: "info",
	}
}

// Load reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &cfg)
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.MaxTags < 0 {
		cfg.MaxTags = defaults.MaxTags
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	return &cfg, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/webdir/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "webdir", "config.json"), nil
}

// DatabaseFile resolves the SQLite database path, falling back to
// ~/.config/webdir/bookmarks.db when unset.
func (c *Config) DatabaseFile() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "webdir", "bookmarks.db"), nil
}

// LogFile resolves the log file path, falling back to
// ~/.config/webdir/webdir.log when unset.
func (c *Config) LogFile() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "webdir", "webdir.log"), nil
}
