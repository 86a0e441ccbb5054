package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

func TestCanView(t *testing.T) {
	granted := &models.AccessGrant{Owner: "alice", Viewer: "bob", CanView: true}
	revoked := &models.AccessGrant{Owner: "alice", Viewer: "bob", CanView: false}

	tests := []struct {
		name       string
		requester  Principal
		visibility models.Visibility
		grant      *models.AccessGrant
		want       bool
	}{
		{"owner private", alice, models.VisibilityPrivate, nil, true},
		{"owner shared", alice, models.VisibilityShared, nil, true},
		{"owner public", alice, models.VisibilityPublic, nil, true},
		{"owner with revoked self grant", alice, models.VisibilityShared, revoked, true},
		{"stranger public", bob, models.VisibilityPublic, nil, true},
		{"stranger private", bob, models.VisibilityPrivate, nil, false},
		{"granted private", bob, models.VisibilityPrivate, granted, false},
		{"granted shared", bob, models.VisibilityShared, granted, true},
		{"revoked shared", bob, models.VisibilityShared, revoked, false},
		{"no grant shared", bob, models.VisibilityShared, nil, false},
		{"unknown visibility code", bob, models.Visibility(7), granted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skill := &models.Skill{Owner: "alice", SkillID: 1, Visibility: tt.visibility}
			assert.Equal(t, tt.want, CanView(tt.requester, alice, skill, tt.grant))
		})
	}
}

func TestCanView_NilSkill(t *testing.T) {
	assert.False(t, CanView(alice, alice, nil, nil))
}
