// Package models defines the core data structures for SkillTrail.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Visibility controls who may read a skill and its history.
type Visibility uint8

// Visibility codes. The numeric values are part of the external interface.
const (
	VisibilityPrivate Visibility = 1
	VisibilityShared  Visibility = 2
	VisibilityPublic  Visibility = 3
)

// Valid reports whether v is one of the known visibility codes.
func (v Visibility) Valid() bool {
	return v >= VisibilityPrivate && v <= VisibilityPublic
}

// String returns the lowercase name of the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityShared:
		return "shared"
	case VisibilityPublic:
		return "public"
	default:
		return fmt.Sprintf("visibility(%d)", uint8(v))
	}
}

// ParseVisibility accepts either a name ("private", "shared", "public") or a
// numeric code. Unknown numeric codes are returned as-is so that callers can
// surface an invalid-visibility error from the ledger rather than a parse error.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return VisibilityPrivate, nil
	case "shared":
		return VisibilityShared, nil
	case "public":
		return VisibilityPublic, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parse visibility %q: expected private, shared, public or 1-3", s)
	}
	return Visibility(n), nil
}

// Proficiency bounds (inclusive).
const (
	MinProficiency = 1
	MaxProficiency = 5
)

// ValidProficiency reports whether p lies in [MinProficiency, MaxProficiency].
func ValidProficiency(p uint8) bool {
	return p >= MinProficiency && p <= MaxProficiency
}

// InitialMilestone is the milestone text of the update synthesized at skill creation.
const InitialMilestone = "Initial skill level set"

// Skill is a declared skill owned by a single principal.
type Skill struct {
	Owner   string `gorm:"primaryKey;size:255" json:"owner"`
	SkillID uint64 `gorm:"primaryKey;autoIncrement:false" json:"skill_id"`

	Name        string `gorm:"size:255" json:"name"`
	Category    string `gorm:"size:100;index" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	Visibility         Visibility `gorm:"not null" json:"visibility"`
	CurrentProficiency uint8      `gorm:"not null" json:"current_proficiency"`

	// Logical clock heights, not wall time.
	CreatedAt   uint64 `gorm:"autoCreateTime:false" json:"created_at"`
	LastUpdated uint64 `json:"last_updated"`
}

// TableName specifies the table name for GORM.
func (Skill) TableName() string {
	return "skills"
}

// IsEmpty reports whether s is the zero skill returned for hidden or missing records.
func (s *Skill) IsEmpty() bool {
	return s == nil || s.SkillID == 0
}
