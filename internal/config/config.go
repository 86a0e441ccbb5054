// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// Environment variables read by Load.
const (
	EnvHome         = "SKILLTRAIL_HOME"
	EnvPrincipal    = "SKILLTRAIL_PRINCIPAL"
	EnvDebug        = "SKILLTRAIL_DEBUG"
	EnvMCPRateLimit = "SKILLTRAIL_MCP_RATE_LIMIT"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all skilltrail data (~/.skilltrail)
	BaseDir string

	// Principal is the identity every call is made as. The host never lets
	// a caller choose it per operation.
	Principal string

	// Debug enables SQL logging.
	Debug bool

	// MCP server settings
	MCP MCPConfig
}

// MCPConfig holds settings for the MCP stdio server.
type MCPConfig struct {
	// Mutating tool calls allowed per minute (default: 60). Zero disables the limit.
	RateLimit int
	// Burst allowance on top of the steady rate (default: 10)
	Burst int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if home := os.Getenv(EnvHome); home != "" {
		cfg.BaseDir = home
	}

	if principal := strings.TrimSpace(os.Getenv(EnvPrincipal)); principal != "" {
		cfg.Principal = principal
	}

	if debug := os.Getenv(EnvDebug); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvDebug, err)
		}
		cfg.Debug = v
	}

	if limit := os.Getenv(EnvMCPRateLimit); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("parse %s: want a non-negative integer, got %q", EnvMCPRateLimit, limit)
		}
		cfg.MCP.RateLimit = v
	}

	// Ensure directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	for _, dir := range []string{cfg.BaseDir, paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// defaultPrincipal returns the OS user name, or "" if it cannot be determined.
func defaultPrincipal() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
