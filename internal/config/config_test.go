package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultBaseDir(), cfg.BaseDir)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 60, cfg.MCP.RateLimit)
	assert.Equal(t, 10, cfg.MCP.Burst)
}

func TestLoad_FromEnv(t *testing.T) {
	home := filepath.Join(t.TempDir(), "trail")
	t.Setenv(EnvHome, home)
	t.Setenv(EnvPrincipal, "  alice  ")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvMCPRateLimit, "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.Equal(t, "alice", cfg.Principal)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 5, cfg.MCP.RateLimit)

	// Directories are created on load
	for _, dir := range []string{home, GetPaths(cfg).Logs} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoad_PrincipalFallsBackToOSUser(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvPrincipal, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultPrincipal(), cfg.Principal)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"debug not a bool", EnvDebug, "sometimes"},
		{"rate limit not a number", EnvMCPRateLimit, "fast"},
		{"negative rate limit", EnvMCPRateLimit, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvHome, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/tmp/trail"}
	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/tmp/trail", "skilltrail.db"), paths.Database)
	assert.Equal(t, filepath.Join("/tmp/trail", "logs"), paths.Logs)
	assert.Equal(t, filepath.Join("/tmp/trail", "config.yaml"), paths.Config)
}
