package models

// ProgressUpdate is an append-only proficiency record for a skill.
// Rows are never updated or deleted once written.
type ProgressUpdate struct {
	Owner    string `gorm:"primaryKey;size:255" json:"owner"`
	SkillID  uint64 `gorm:"primaryKey;autoIncrement:false" json:"skill_id"`
	UpdateID uint64 `gorm:"primaryKey;autoIncrement:false" json:"update_id"`

	Proficiency uint8  `gorm:"not null" json:"proficiency"`
	RecordedAt  uint64 `json:"recorded_at"`
	Evidence    string `gorm:"type:text" json:"evidence"`
	Milestone   string `gorm:"type:text" json:"milestone"`
}

// TableName specifies the table name for GORM.
func (ProgressUpdate) TableName() string {
	return "progress_updates"
}
