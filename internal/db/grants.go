package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// UpsertGrant records the latest grant or revoke decision for (owner, viewer).
func (db *DB) UpsertGrant(owner, viewer string, canView bool, height uint64) error {
	grant := models.AccessGrant{
		Owner:     owner,
		Viewer:    viewer,
		GrantedAt: height,
		CanView:   canView,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "viewer"}},
		DoUpdates: clause.AssignmentColumns([]string{"granted_at", "can_view"}),
	}).Create(&grant).Error
}

// GetGrant retrieves the grant record for (owner, viewer). Returns nil if none exists.
func (db *DB) GetGrant(owner, viewer string) (*models.AccessGrant, error) {
	var grant models.AccessGrant
	err := db.Where("owner = ? AND viewer = ?", owner, viewer).First(&grant).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}
	return &grant, nil
}
