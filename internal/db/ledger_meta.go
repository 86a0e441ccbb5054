package db

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// GetLedgerMeta retrieves a ledger metadata value.
func (db *DB) GetLedgerMeta(key string) (string, error) {
	var meta models.LedgerMeta
	err := db.First(&meta, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetLedgerMeta sets a ledger metadata value.
func (db *DB) SetLedgerMeta(key, value string) error {
	meta := models.LedgerMeta{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}

// GetAllLedgerMeta retrieves all ledger metadata.
func (db *DB) GetAllLedgerMeta() (map[string]string, error) {
	var metas []models.LedgerMeta
	if err := db.Find(&metas).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, meta := range metas {
		result[meta.Key] = meta.Value
	}
	return result, nil
}

// Height returns the current logical clock value.
func (db *DB) Height() (uint64, error) {
	raw, err := db.GetLedgerMeta(models.LedgerMetaHeight)
	if err != nil {
		return 0, fmt.Errorf("read height: %w", err)
	}
	if raw == "" {
		return 0, nil
	}
	h, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse height %q: %w", raw, err)
	}
	return h, nil
}

// AdvanceHeight increments the logical clock by one and returns the new value.
// The read and write happen in one transaction so concurrent callers never
// observe the same height.
func (db *DB) AdvanceHeight() (uint64, error) {
	var next uint64
	err := db.Transaction(func(tx *DB) error {
		cur, err := tx.Height()
		if err != nil {
			return err
		}
		next = cur + 1
		return tx.SetLedgerMeta(models.LedgerMetaHeight, strconv.FormatUint(next, 10))
	})
	if err != nil {
		return 0, fmt.Errorf("advance height: %w", err)
	}
	return next, nil
}
