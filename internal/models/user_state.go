package models

import (
	"time"
)

// UserState holds per-installation state that is not part of the ledger,
// such as the anonymous telemetry tracking ID.
// Note: The table name is "user_state" to avoid conflicts with reserved keywords.
type UserState struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	TrackingID string    `gorm:"size:64" json:"tracking_id"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}
