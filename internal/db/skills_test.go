package db

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

func TestNextID_PerScopeSequences(t *testing.T) {
	db := testDB(t)

	for want := uint64(1); want <= 3; want++ {
		got, err := db.NextID("alice", 0, models.CounterSkill)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Other owners, skills and kinds start from 1 independently.
	got, err := db.NextID("bob", 0, models.CounterSkill)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	got, err = db.NextID("alice", 1, models.CounterUpdate)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	got, err = db.NextID("alice", 1, models.CounterGoal)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	got, err = db.NextID("alice", 2, models.CounterUpdate)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	last, err := db.LastID("alice", 0, models.CounterSkill)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), last)
}

func TestLastID_UnknownScope(t *testing.T) {
	db := testDB(t)

	last, err := db.LastID("nobody", 7, models.CounterGoal)
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestProfileCRUD(t *testing.T) {
	db := testDB(t)

	missing, err := db.GetProfile("alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, db.CreateProfile(&models.UserProfile{Principal: "alice", CreatedAt: 4}))
	assert.Error(t, db.CreateProfile(&models.UserProfile{Principal: "alice", CreatedAt: 5}),
		"duplicate principal must be rejected by the primary key")

	require.NoError(t, db.IncrementSkillCount("alice"))
	require.NoError(t, db.IncrementSkillCount("alice"))

	profile, err := db.GetProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, uint64(4), profile.CreatedAt)
	assert.Equal(t, uint64(2), profile.SkillCount)
}

func TestIncrementSkillCount_UnknownPrincipal(t *testing.T) {
	db := testDB(t)
	assert.Error(t, db.IncrementSkillCount("ghost"))
}

func TestSkillCRUD(t *testing.T) {
	db := testDB(t)

	skill := &models.Skill{
		Owner:              "alice",
		SkillID:            1,
		Name:               "Go",
		Category:           "Programming",
		Description:        "desc",
		Visibility:         models.VisibilityPrivate,
		CurrentProficiency: 2,
		CreatedAt:          3,
		LastUpdated:        3,
	}
	require.NoError(t, db.CreateSkill(skill))

	got, err := db.GetSkill("alice", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Go", got.Name)
	assert.Equal(t, uint64(3), got.CreatedAt, "created_at is a height, not a wall-clock timestamp")

	require.NoError(t, db.UpdateSkillProficiency("alice", 1, 4, 9))
	require.NoError(t, db.UpdateSkillVisibility("alice", 1, models.VisibilityShared))

	got, err = db.GetSkill("alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), got.CurrentProficiency)
	assert.Equal(t, uint64(9), got.LastUpdated)
	assert.Equal(t, models.VisibilityShared, got.Visibility)
	assert.Equal(t, uint64(3), got.CreatedAt)

	// Same ID under another owner is a different record.
	other, err := db.GetSkill("bob", 1)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestUpdateSkillVisibility_LeavesLastUpdated(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateSkill(&models.Skill{
		Owner: "alice", SkillID: 1, Visibility: models.VisibilityPrivate,
		CurrentProficiency: 1, CreatedAt: 2, LastUpdated: 2,
	}))
	require.NoError(t, db.UpdateSkillVisibility("alice", 1, models.VisibilityPublic))

	got, err := db.GetSkill("alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.LastUpdated)
}

func TestListSkillsByOwner(t *testing.T) {
	db := testDB(t)

	for _, s := range []models.Skill{
		{Owner: "alice", SkillID: 2, Name: "Rust", Visibility: models.VisibilityPublic, CurrentProficiency: 1},
		{Owner: "alice", SkillID: 1, Name: "Go", Visibility: models.VisibilityPrivate, CurrentProficiency: 3},
		{Owner: "bob", SkillID: 1, Name: "SQL", Visibility: models.VisibilityPublic, CurrentProficiency: 2},
	} {
		s := s
		require.NoError(t, db.CreateSkill(&s))
	}

	skills, err := db.ListSkillsByOwner("alice")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "Rust", skills[1].Name)
}

func TestProgressUpdates(t *testing.T) {
	db := testDB(t)

	has, err := db.HasProgressUpdates("alice", 1)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.AppendProgressUpdate(&models.ProgressUpdate{
		Owner: "alice", SkillID: 1, UpdateID: 1, Proficiency: 2, RecordedAt: 3,
		Milestone: models.InitialMilestone,
	}))
	assert.Error(t, db.AppendProgressUpdate(&models.ProgressUpdate{
		Owner: "alice", SkillID: 1, UpdateID: 1, Proficiency: 5, RecordedAt: 4,
	}), "an update ID cannot be written twice")

	update, err := db.GetProgressUpdate("alice", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, uint8(2), update.Proficiency)
	assert.Empty(t, update.Evidence)

	has, err = db.HasProgressUpdates("alice", 1)
	require.NoError(t, err)
	assert.True(t, has)

	missing, err := db.GetProgressUpdate("alice", 1, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGoals_CompleteOnlyOnce(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateGoal(&models.Goal{
		Owner: "alice", SkillID: 1, GoalID: 1, TargetProficiency: 5, TargetDate: 100,
		Description: "master it", CreatedAt: 10,
	}))

	has, err := db.HasGoals("alice", 1)
	require.NoError(t, err)
	assert.True(t, has)

	ok, err := db.MarkGoalCompleted("alice", 1, 1, 20)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.MarkGoalCompleted("alice", 1, 1, 30)
	require.NoError(t, err)
	assert.False(t, ok, "completed goals are never rewritten")

	goal, err := db.GetGoal("alice", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.True(t, goal.Completed)
	assert.Equal(t, uint64(20), goal.CompletedAt)
	assert.Equal(t, models.GoalStatusCompleted, goal.Status())
}

func TestGoals_Missing(t *testing.T) {
	db := testDB(t)

	goal, err := db.GetGoal("alice", 1, 1)
	require.NoError(t, err)
	assert.Nil(t, goal)

	ok, err := db.MarkGoalCompleted("alice", 1, 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := db.HasGoals("alice", 1)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLookups_KeysBeyondMaxKey(t *testing.T) {
	db := testDB(t)
	huge := uint64(math.MaxUint64)

	skill, err := db.GetSkill("alice", huge)
	require.NoError(t, err)
	assert.Nil(t, skill)

	goal, err := db.GetGoal("alice", 1, huge)
	require.NoError(t, err)
	assert.Nil(t, goal)

	ok, err := db.MarkGoalCompleted("alice", huge, 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := db.HasGoals("alice", MaxKey+1)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = db.HasProgressUpdates("alice", huge)
	require.NoError(t, err)
	assert.False(t, has)

	update, err := db.GetProgressUpdate("alice", 1, huge)
	require.NoError(t, err)
	assert.Nil(t, update)

	last, err := db.LastID("alice", huge, models.CounterGoal)
	require.NoError(t, err)
	assert.Zero(t, last)

	// MaxKey itself is a real, bindable key.
	skill, err = db.GetSkill("alice", MaxKey)
	require.NoError(t, err)
	assert.Nil(t, skill)
}

func TestUpsertGrant_Overwrites(t *testing.T) {
	db := testDB(t)

	grant, err := db.GetGrant("alice", "bob")
	require.NoError(t, err)
	assert.Nil(t, grant)

	require.NoError(t, db.UpsertGrant("alice", "bob", true, 5))
	grant, err = db.GetGrant("alice", "bob")
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.True(t, grant.CanView)
	assert.Equal(t, uint64(5), grant.GrantedAt)

	require.NoError(t, db.UpsertGrant("alice", "bob", false, 8))
	grant, err = db.GetGrant("alice", "bob")
	require.NoError(t, err)
	assert.False(t, grant.CanView)
	assert.Equal(t, uint64(8), grant.GrantedAt)

	var count int64
	require.NoError(t, db.Model(&models.AccessGrant{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "grant/revoke overwrite rather than append")

	// Grants are directional.
	reverse, err := db.GetGrant("bob", "alice")
	require.NoError(t, err)
	assert.Nil(t, reverse)
}
