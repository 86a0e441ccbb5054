// Package testutil provides testing utilities.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skilltrail/internal/config"
	"github.com/asteroid-belt/skilltrail/internal/db"
)

// NewDB opens a fresh ledger database in a temporary directory.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(db.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// Isolate points the data directory at a temporary directory and sets the
// principal, so config.Load never touches the real home directory.
// It returns the data directory.
func Isolate(t *testing.T, principal string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvPrincipal, principal)
	return home
}
