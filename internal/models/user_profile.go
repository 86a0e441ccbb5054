package models

// UserProfile is created once per principal at registration.
type UserProfile struct {
	Principal  string `gorm:"primaryKey;size:255" json:"principal"`
	CreatedAt  uint64 `gorm:"autoCreateTime:false" json:"created_at"`
	SkillCount uint64 `gorm:"default:0" json:"skill_count"`
}

// TableName specifies the table name for GORM.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// IsRegistered reports whether the profile came from a registration rather
// than being the zero default returned for unknown principals.
func (p *UserProfile) IsRegistered() bool {
	return p != nil && p.Principal != ""
}
