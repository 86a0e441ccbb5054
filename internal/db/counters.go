package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// NextID issues the next identifier for a scope and persists it.
// Skill IDs are scoped by owner (pass skillID 0); update and goal IDs are
// scoped by (owner, skill). The first call for a scope returns 1.
// There is no way to hand an identifier back: callers that need all-or-nothing
// behaviour run NextID and the write it feeds inside one Transaction.
func (db *DB) NextID(owner string, skillID uint64, kind models.CounterKind) (uint64, error) {
	counter := models.IDCounter{Owner: owner, SkillID: skillID, Kind: kind}
	err := db.Where("owner = ? AND skill_id = ? AND kind = ?", owner, skillID, kind).First(&counter).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("read %s counter: %w", kind, err)
	}

	counter.LastID++
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "skill_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_id"}),
	}).Create(&counter).Error; err != nil {
		return 0, fmt.Errorf("write %s counter: %w", kind, err)
	}

	return counter.LastID, nil
}

// LastID returns the last identifier issued for a scope, or 0 if none.
func (db *DB) LastID(owner string, skillID uint64, kind models.CounterKind) (uint64, error) {
	if !storable(skillID) {
		return 0, nil
	}
	var counter models.IDCounter
	err := db.Where("owner = ? AND skill_id = ? AND kind = ?", owner, skillID, kind).First(&counter).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("read %s counter: %w", kind, err)
	}
	return counter.LastID, nil
}
