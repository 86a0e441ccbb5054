package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibility_Valid(t *testing.T) {
	tests := []struct {
		name string
		v    Visibility
		want bool
	}{
		{"zero is invalid", 0, false},
		{"private", VisibilityPrivate, true},
		{"shared", VisibilityShared, true},
		{"public", VisibilityPublic, true},
		{"four is invalid", 4, false},
		{"max uint8 is invalid", 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Valid())
		})
	}
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "private", VisibilityPrivate.String())
	assert.Equal(t, "shared", VisibilityShared.String())
	assert.Equal(t, "public", VisibilityPublic.String())
	assert.Equal(t, "visibility(9)", Visibility(9).String())
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		input   string
		want    Visibility
		wantErr bool
	}{
		{"private", VisibilityPrivate, false},
		{"Shared", VisibilityShared, false},
		{" PUBLIC ", VisibilityPublic, false},
		{"1", VisibilityPrivate, false},
		{"3", VisibilityPublic, false},
		{"4", Visibility(4), false},
		{"friends", 0, true},
		{"-1", 0, true},
		{"300", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidProficiency(t *testing.T) {
	assert.False(t, ValidProficiency(0))
	for p := uint8(1); p <= 5; p++ {
		assert.True(t, ValidProficiency(p), "proficiency %d", p)
	}
	assert.False(t, ValidProficiency(6))
}

func TestSkill_IsEmpty(t *testing.T) {
	var nilSkill *Skill
	assert.True(t, nilSkill.IsEmpty())
	assert.True(t, (&Skill{}).IsEmpty())
	assert.False(t, (&Skill{Owner: "alice", SkillID: 1}).IsEmpty())
}

func TestGoal_Status(t *testing.T) {
	g := &Goal{GoalID: 1}
	assert.Equal(t, GoalStatusOpen, g.Status())

	g.Completed = true
	g.CompletedAt = 12
	assert.Equal(t, GoalStatusCompleted, g.Status())
}

func TestUserProfile_IsRegistered(t *testing.T) {
	var nilProfile *UserProfile
	assert.False(t, nilProfile.IsRegistered())
	assert.False(t, (&UserProfile{}).IsRegistered())
	assert.True(t, (&UserProfile{Principal: "alice"}).IsRegistered())
}
