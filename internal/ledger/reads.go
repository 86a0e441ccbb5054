package ledger

import (
	"github.com/asteroid-belt/skilltrail/internal/models"
)

// Read accessors never report whether a hidden skill exists: a missing skill
// and a skill the requester may not see produce the same empty result.

// GetUserInfo returns user's profile, or the zero profile if user never registered.
func (l *Ledger) GetUserInfo(user Principal) (models.UserProfile, error) {
	profile, err := l.db.GetProfile(string(user))
	if err != nil {
		return models.UserProfile{}, err
	}
	if profile == nil {
		return models.UserProfile{}, nil
	}
	return *profile, nil
}

// GetSkill returns owner's skill if env.Caller may see it, otherwise nil.
func (l *Ledger) GetSkill(env Env, owner Principal, skillID uint64) (*models.Skill, error) {
	return l.visibleSkill(env.Caller, owner, skillID)
}

// GetSkillUpdates reports whether progress history exists for a skill the
// caller may see. It does not return the history itself.
func (l *Ledger) GetSkillUpdates(env Env, owner Principal, skillID uint64) (bool, error) {
	skill, err := l.visibleSkill(env.Caller, owner, skillID)
	if err != nil || skill == nil {
		return false, err
	}
	return l.db.HasProgressUpdates(string(owner), skillID)
}

// GetSkillGoals reports whether any goal exists for a skill the caller may
// see. It does not return the goals themselves.
func (l *Ledger) GetSkillGoals(env Env, owner Principal, skillID uint64) (bool, error) {
	skill, err := l.visibleSkill(env.Caller, owner, skillID)
	if err != nil || skill == nil {
		return false, err
	}
	return l.db.HasGoals(string(owner), skillID)
}

// HasSharedAccess returns the latest grant record from owner to viewer, or the
// zero record (CanView false) if none was ever written.
func (l *Ledger) HasSharedAccess(owner, viewer Principal) (models.AccessGrant, error) {
	grant, err := l.db.GetGrant(string(owner), string(viewer))
	if err != nil {
		return models.AccessGrant{}, err
	}
	if grant == nil {
		return models.AccessGrant{}, nil
	}
	return *grant, nil
}

// CanView reports whether env.Caller may read owner's skill. A missing skill
// is not viewable.
func (l *Ledger) CanView(env Env, owner Principal, skillID uint64) (bool, error) {
	skill, err := l.visibleSkill(env.Caller, owner, skillID)
	return skill != nil, err
}

// ListSkills returns owner's skills that env.Caller may see, in ID order.
func (l *Ledger) ListSkills(env Env, owner Principal) ([]models.Skill, error) {
	skills, err := l.db.ListSkillsByOwner(string(owner))
	if err != nil {
		return nil, err
	}

	grant, err := l.grantFor(env.Caller, owner)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Skill, 0, len(skills))
	for i := range skills {
		if CanView(env.Caller, owner, &skills[i], grant) {
			visible = append(visible, skills[i])
		}
	}
	return visible, nil
}

func (l *Ledger) visibleSkill(requester, owner Principal, skillID uint64) (*models.Skill, error) {
	skill, err := l.db.GetSkill(string(owner), skillID)
	if err != nil || skill == nil {
		return nil, err
	}

	var grant *models.AccessGrant
	if requester != owner && skill.Visibility == models.VisibilityShared {
		grant, err = l.grantFor(requester, owner)
		if err != nil {
			return nil, err
		}
	}

	if !CanView(requester, owner, skill, grant) {
		return nil, nil
	}
	return skill, nil
}

func (l *Ledger) grantFor(requester, owner Principal) (*models.AccessGrant, error) {
	if requester == owner {
		return nil, nil
	}
	return l.db.GetGrant(string(owner), string(requester))
}
