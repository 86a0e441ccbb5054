package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// AppendProgressUpdate inserts a progress update. Updates are never modified afterwards.
func (db *DB) AppendProgressUpdate(update *models.ProgressUpdate) error {
	return db.Create(update).Error
}

// GetProgressUpdate retrieves a single update. Returns nil if not found.
func (db *DB) GetProgressUpdate(owner string, skillID, updateID uint64) (*models.ProgressUpdate, error) {
	if !storable(skillID, updateID) {
		return nil, nil
	}
	var update models.ProgressUpdate
	err := db.Where("owner = ? AND skill_id = ? AND update_id = ?", owner, skillID, updateID).
		First(&update).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress update: %w", err)
	}
	return &update, nil
}

// HasProgressUpdates checks if a skill has at least one update recorded.
func (db *DB) HasProgressUpdates(owner string, skillID uint64) (bool, error) {
	if !storable(skillID) {
		return false, nil
	}
	var count int64
	err := db.Model(&models.ProgressUpdate{}).
		Where("owner = ? AND skill_id = ?", owner, skillID).
		Count(&count).Error
	return count > 0, err
}
