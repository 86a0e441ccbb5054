package models

// LedgerStats provides aggregate statistics.
type LedgerStats struct {
	TotalUsers        int64  `json:"total_users"`
	TotalSkills       int64  `json:"total_skills"`
	TotalUpdates      int64  `json:"total_updates"`
	TotalGoals        int64  `json:"total_goals"`
	ActiveGrants      int64  `json:"active_grants"`
	Height            uint64 `json:"height"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
}
