package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// GetProfile returns the profile for a principal, or nil if none exists.
func (db *DB) GetProfile(principal string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.Where("principal = ?", principal).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// CreateProfile inserts a new profile. It fails if the principal already has one.
func (db *DB) CreateProfile(profile *models.UserProfile) error {
	return db.Create(profile).Error
}

// IncrementSkillCount bumps the skill count of a registered principal by one.
func (db *DB) IncrementSkillCount(principal string) error {
	result := db.Model(&models.UserProfile{}).
		Where("principal = ?", principal).
		Update("skill_count", gorm.Expr("skill_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("increment skill count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("increment skill count: no profile for %q", principal)
	}
	return nil
}
