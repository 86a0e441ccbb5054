package models

// CounterKind names the family of identifiers a counter issues.
type CounterKind string

const (
	CounterSkill  CounterKind = "skill"
	CounterUpdate CounterKind = "update"
	CounterGoal   CounterKind = "goal"
)

// IDCounter stores the last identifier issued for a scope.
// Skill counters are scoped by owner (SkillID is 0); update and goal
// counters are scoped by (owner, skill).
type IDCounter struct {
	Owner   string      `gorm:"primaryKey;size:255" json:"owner"`
	SkillID uint64      `gorm:"primaryKey;autoIncrement:false" json:"skill_id"`
	Kind    CounterKind `gorm:"primaryKey;size:20" json:"kind"`
	LastID  uint64      `gorm:"not null;default:0" json:"last_id"`
}

// TableName specifies the table name for GORM.
func (IDCounter) TableName() string {
	return "id_counters"
}
