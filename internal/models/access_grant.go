package models

// AccessGrant records the latest grant or revoke decision of an owner about a viewer.
// Re-granting or revoking overwrites the row. A missing row means CanView is false.
type AccessGrant struct {
	Owner  string `gorm:"primaryKey;size:255" json:"owner"`
	Viewer string `gorm:"primaryKey;size:255" json:"viewer"`

	GrantedAt uint64 `json:"granted_at"`
	CanView   bool   `gorm:"not null" json:"can_view"`
}

// TableName specifies the table name for GORM.
func (AccessGrant) TableName() string {
	return "access_grants"
}
