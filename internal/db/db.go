// Package db provides a GORM-based state store for SkillTrail.
// It uses the pure-Go SQLite driver.
package db

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// SchemaVersion is the version of the table layout written by this build.
const SchemaVersion = 1

// MaxKey is the largest identifier or height the driver can bind. SQLite
// integers are signed 64-bit.
const MaxKey = math.MaxInt64

// storable reports whether every key fits a SQLite integer. Rows keyed above
// MaxKey can never have been written, so lookups on them are answered as
// absent without a query.
func storable(keys ...uint64) bool {
	for _, k := range keys {
		if k > MaxKey {
			return false
		}
	}
	return true
}

// DB wraps the GORM database connection with ledger-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
// A single open connection serializes ledger operations across callers.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode keeps transaction visibility simple with the pure-Go driver
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedLedgerMeta(); err != nil {
		return nil, fmt.Errorf("seed ledger meta: %w", err)
	}

	if err := wrapped.seedUserState(); err != nil {
		return nil, fmt.Errorf("seed user state: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.UserProfile{},
		&models.Skill{},
		&models.ProgressUpdate{},
		&models.Goal{},
		&models.AccessGrant{},
		&models.IDCounter{},
		&models.LedgerMeta{},
		&models.UserState{},
	)
}

// seedLedgerMeta inserts default ledger metadata if not present.
func (db *DB) seedLedgerMeta() error {
	defaults := []models.LedgerMeta{
		{Key: models.LedgerMetaHeight, Value: "0"},
		{Key: models.LedgerMetaSchemaVersion, Value: strconv.Itoa(SchemaVersion)},
	}

	for _, meta := range defaults {
		// Only insert if not exists
		result := db.Where("key = ?", meta.Key).FirstOrCreate(&meta)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// seedUserState inserts the default state row if not present.
func (db *DB) seedUserState() error {
	defaultState := models.UserState{ID: "default"}
	result := db.Where("id = ?", "default").FirstOrCreate(&defaultState)
	return result.Error
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
// If the callback returns nil, the transaction is committed.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// GetStats returns aggregate statistics about the ledger.
func (db *DB) GetStats() (*models.LedgerStats, error) {
	var stats models.LedgerStats

	if err := db.Model(&models.UserProfile{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	if err := db.Model(&models.Skill{}).Count(&stats.TotalSkills).Error; err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}

	if err := db.Model(&models.ProgressUpdate{}).Count(&stats.TotalUpdates).Error; err != nil {
		return nil, fmt.Errorf("count updates: %w", err)
	}

	if err := db.Model(&models.Goal{}).Count(&stats.TotalGoals).Error; err != nil {
		return nil, fmt.Errorf("count goals: %w", err)
	}

	if err := db.Model(&models.AccessGrant{}).Where("can_view = ?", true).Count(&stats.ActiveGrants).Error; err != nil {
		return nil, fmt.Errorf("count grants: %w", err)
	}

	height, err := db.Height()
	if err != nil {
		return nil, err
	}
	stats.Height = height

	// Get database file size
	if info, err := os.Stat(db.path); err == nil {
		stats.DatabaseSizeBytes = info.Size()
	}

	return &stats, nil
}
