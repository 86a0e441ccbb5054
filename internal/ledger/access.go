package ledger

import "github.com/asteroid-belt/skilltrail/internal/models"

// CanView decides whether requester may see owner's skill, in precedence order:
// the owner always may; anyone may see a public skill; a shared skill is visible
// to viewers whose latest grant from owner has CanView set; nothing else is.
// grant may be nil when no record exists.
func CanView(requester, owner Principal, skill *models.Skill, grant *models.AccessGrant) bool {
	if skill == nil {
		return false
	}
	if requester == owner {
		return true
	}
	switch skill.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityShared:
		return grant != nil && grant.CanView
	default:
		return false
	}
}
