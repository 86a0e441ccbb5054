package models

// GoalStatus is the derived state of a goal.
type GoalStatus string

const (
	GoalStatusOpen      GoalStatus = "OPEN"
	GoalStatusCompleted GoalStatus = "COMPLETED"
)

// Goal is a target proficiency for a skill, to be reached by a target height.
type Goal struct {
	Owner   string `gorm:"primaryKey;size:255" json:"owner"`
	SkillID uint64 `gorm:"primaryKey;autoIncrement:false" json:"skill_id"`
	GoalID  uint64 `gorm:"primaryKey;autoIncrement:false" json:"goal_id"`

	TargetProficiency uint8  `gorm:"not null" json:"target_proficiency"`
	TargetDate        uint64 `json:"target_date"`
	Description       string `gorm:"type:text" json:"description"`
	CreatedAt         uint64 `gorm:"autoCreateTime:false" json:"created_at"`

	Completed   bool   `gorm:"not null" json:"completed"`
	CompletedAt uint64 `json:"completed_at"` // zero until completed
}

// TableName specifies the table name for GORM.
func (Goal) TableName() string {
	return "goals"
}

// Status returns the state machine position of the goal.
func (g *Goal) Status() GoalStatus {
	if g.Completed {
		return GoalStatusCompleted
	}
	return GoalStatusOpen
}
