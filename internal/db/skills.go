package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// GetSkill retrieves a skill by owner and ID. Returns nil if not found.
func (db *DB) GetSkill(owner string, skillID uint64) (*models.Skill, error) {
	if !storable(skillID) {
		return nil, nil
	}
	var skill models.Skill
	err := db.Where("owner = ? AND skill_id = ?", owner, skillID).First(&skill).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &skill, nil
}

// CreateSkill inserts a new skill.
func (db *DB) CreateSkill(skill *models.Skill) error {
	return db.Create(skill).Error
}

// UpdateSkillProficiency overwrites the current proficiency and last-updated height.
func (db *DB) UpdateSkillProficiency(owner string, skillID uint64, proficiency uint8, height uint64) error {
	return db.Model(&models.Skill{}).
		Where("owner = ? AND skill_id = ?", owner, skillID).
		Updates(map[string]interface{}{
			"current_proficiency": proficiency,
			"last_updated":        height,
		}).Error
}

// UpdateSkillVisibility overwrites only the visibility of a skill.
func (db *DB) UpdateSkillVisibility(owner string, skillID uint64, visibility models.Visibility) error {
	return db.Model(&models.Skill{}).
		Where("owner = ? AND skill_id = ?", owner, skillID).
		Update("visibility", visibility).Error
}

// ListSkillsByOwner returns all skills of an owner in creation order.
func (db *DB) ListSkillsByOwner(owner string) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Where("owner = ?", owner).Order("skill_id ASC").Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}
