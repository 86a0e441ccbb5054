package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Logs     string // Log directory
	Config   string // Config file
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "skilltrail.db"),
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
		Config:   filepath.Join(cfg.BaseDir, "config.yaml"),
	}
}

// DefaultBaseDir returns the default base directory (~/.skilltrail).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skilltrail"
	}
	return filepath.Join(home, ".skilltrail")
}
