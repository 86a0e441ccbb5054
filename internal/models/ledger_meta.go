package models

import "time"

// LedgerMeta stores ledger metadata as key-value pairs.
type LedgerMeta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (LedgerMeta) TableName() string {
	return "ledger_meta"
}

// Common ledger meta keys.
const (
	LedgerMetaHeight        = "height"
	LedgerMetaSchemaVersion = "schema_version"
	LedgerMetaAppVersion    = "app_version"
)
