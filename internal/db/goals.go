package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// CreateGoal inserts a new goal.
func (db *DB) CreateGoal(goal *models.Goal) error {
	return db.Create(goal).Error
}

// GetGoal retrieves a goal. Returns nil if not found.
func (db *DB) GetGoal(owner string, skillID, goalID uint64) (*models.Goal, error) {
	if !storable(skillID, goalID) {
		return nil, nil
	}
	var goal models.Goal
	err := db.Where("owner = ? AND skill_id = ? AND goal_id = ?", owner, skillID, goalID).
		First(&goal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &goal, nil
}

// MarkGoalCompleted flips an open goal to completed. Only rows that are still
// open are touched, so a completed goal is never rewritten.
// Returns false if no open goal matched.
func (db *DB) MarkGoalCompleted(owner string, skillID, goalID, height uint64) (bool, error) {
	if !storable(skillID, goalID) {
		return false, nil
	}
	result := db.Model(&models.Goal{}).
		Where("owner = ? AND skill_id = ? AND goal_id = ? AND completed = ?", owner, skillID, goalID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": height,
		})
	if result.Error != nil {
		return false, fmt.Errorf("complete goal: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// HasGoals checks if a skill has at least one goal.
func (db *DB) HasGoals(owner string, skillID uint64) (bool, error) {
	if !storable(skillID) {
		return false, nil
	}
	var count int64
	err := db.Model(&models.Goal{}).
		Where("owner = ? AND skill_id = ?", owner, skillID).
		Count(&count).Error
	return count > 0, err
}
