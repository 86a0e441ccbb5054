package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/models"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "skilltrail", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, expected := range []string{"register", "skill", "goal", "access", "user", "status"} {
		assert.Contains(t, names, expected, "Missing subcommand: %s", expected)
	}
}

func TestSkillCmd_Structure(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range skillCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"add", "update", "visibility", "show", "list", "updates", "goals"}, names)

	for _, flag := range []string{"name", "category", "description", "visibility", "proficiency"} {
		assert.NotNil(t, skillAddCmd.Flags().Lookup(flag), "skill add is missing --%s", flag)
	}
	assert.Equal(t, "private", skillAddCmd.Flags().Lookup("visibility").DefValue)

	for _, cmd := range []string{"show", "list", "updates", "goals"} {
		sub, _, err := skillCmd.Find([]string{cmd})
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup("owner"), "skill %s is missing --owner", cmd)
	}
}

func TestCommandArgsValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func() error
		wantErr bool
	}{
		{"update needs skill id", func() error { return skillUpdateCmd.Args(skillUpdateCmd, nil) }, true},
		{"update one arg", func() error { return skillUpdateCmd.Args(skillUpdateCmd, []string{"1"}) }, false},
		{"visibility needs two", func() error { return skillVisibilityCmd.Args(skillVisibilityCmd, []string{"1"}) }, true},
		{"visibility two args", func() error { return skillVisibilityCmd.Args(skillVisibilityCmd, []string{"1", "public"}) }, false},
		{"list takes none", func() error { return skillListCmd.Args(skillListCmd, []string{"x"}) }, true},
		{"goal complete needs two", func() error { return goalCompleteCmd.Args(goalCompleteCmd, []string{"1"}) }, true},
		{"access check needs two", func() error { return accessCheckCmd.Args(accessCheckCmd, []string{"alice"}) }, true},
		{"grant one viewer", func() error { return accessGrantCmd.Args(accessGrantCmd, []string{"bob"}) }, false},
		{"user info optional", func() error { return userInfoCmd.Args(userInfoCmd, nil) }, false},
		{"user info at most one", func() error { return userInfoCmd.Args(userInfoCmd, []string{"a", "b"}) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("skill", "42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := parseID("skill", bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestProficiencyFlag(t *testing.T) {
	assert.Equal(t, uint8(3), proficiencyFlag(3))
	assert.Equal(t, uint8(255), proficiencyFlag(255))
	assert.Zero(t, proficiencyFlag(256))
	assert.Zero(t, proficiencyFlag(300))
	assert.Zero(t, proficiencyFlag(-1))
}

func TestVisibilityFlag(t *testing.T) {
	assert.Equal(t, models.VisibilityShared, visibilityFlag("shared"))
	assert.Equal(t, models.Visibility(4), visibilityFlag("4"))
	assert.Zero(t, visibilityFlag("secret"))
	assert.Zero(t, visibilityFlag("999"))
}

func TestClassifyError_LedgerKinds(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ledger.ErrNotFound, "not_found_error"},
		{ledger.ErrAlreadyExists, "already_exists_error"},
		{ledger.ErrUnauthorized, "permission_error"},
		{ledger.ErrInvalidInput, "validation_error"},
		{ledger.ErrInvalidVisibility, "validation_error"},
		{ledger.ErrInvalidProficiency, "validation_error"},
		{fmt.Errorf("skill #1 of alice: %w", ledger.ErrNotFound), "not_found_error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyError(tt.err))
		})
	}
}

func TestClassifyError_Messages(t *testing.T) {
	tests := []struct {
		errMsg   string
		expected string
	}{
		{"load config: bad value", "config_error"},
		{"initialize database: locked", "database_error"},
		{"no principal configured", "principal_error"},
		{"permission denied", "permission_error"},
		{"file does not exist", "not_found_error"},
		{`invalid skill id "x"`, "validation_error"},
		{"something else", "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.errMsg, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyError(errors.New(tt.errMsg)))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("Database Error", "database"))
	assert.False(t, containsAny("hello", "world", "foo"))
	assert.False(t, containsAny("hello"))
}

func TestTrackCLIError_NilError(t *testing.T) {
	assert.Nil(t, trackCLIError("test-cmd", nil))
}
