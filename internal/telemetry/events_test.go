package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstants(t *testing.T) {
	// CLI events
	assert.Equal(t, "app_started", EventAppStarted)
	assert.Equal(t, "app_exited", EventAppExited)
	assert.Equal(t, "cli_command_executed", EventCLICommandExecuted)
	assert.Equal(t, "cli_error_occurred", EventCLIErrorOccurred)
	assert.Equal(t, "cli_help_viewed", EventCLIHelpViewed)

	// Ledger events
	assert.Equal(t, "ledger_operation", EventLedgerOperation)
	assert.Equal(t, "skill_viewed", EventSkillViewed)
	assert.Equal(t, "skills_listed", EventSkillsListed)
	assert.Equal(t, "stats_viewed", EventStatsViewed)

	// MCP events
	assert.Equal(t, "mcp_tool_called", EventMCPToolCalled)
}
