package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/skilltrail/pkg/version"
)

// Event names - CLI
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
)

// Event names - Ledger
const (
	EventLedgerOperation = "ledger_operation"
	EventSkillViewed     = "skill_viewed"
	EventSkillsListed    = "skills_listed"
	EventStatsViewed     = "stats_viewed"
)

// Event names - MCP
const (
	EventMCPToolCalled = "mcp_tool_called"
)

// Version is set at compile time via ldflags.
var Version string

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// --- CLI Tracking Methods ---

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(mode string, registered bool, skillCount int) {
	props := baseProperties()
	props["mode"] = mode
	props["registered"] = registered
	props["skill_count"] = skillCount
	c.Track(EventAppStarted, props)
}

// TrackAppExited tracks application exit.
func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int) {
	props := baseProperties()
	props["mode"] = mode
	props["session_duration_ms"] = sessionDurationMs
	props["commands_run"] = commandsRun
	c.Track(EventAppExited, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI errors by category.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackCLIHelpViewed tracks help output.
func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["arg_count"] = len(cliArgs)
	c.Track(EventCLIHelpViewed, props)
}

// --- Ledger Tracking Methods ---

// TrackLedgerOperation tracks a mutating ledger operation. errorKind is
// empty on success.
func (c *posthogClient) TrackLedgerOperation(op string, success bool, errorKind string) {
	props := baseProperties()
	props["operation"] = op
	props["success"] = success
	if errorKind != "" {
		props["error_kind"] = errorKind
	}
	c.Track(EventLedgerOperation, props)
}

// TrackSkillViewed tracks a gated skill read.
func (c *posthogClient) TrackSkillViewed(visible, ownSkill bool) {
	props := baseProperties()
	props["visible"] = visible
	props["own_skill"] = ownSkill
	c.Track(EventSkillViewed, props)
}

// TrackSkillsListed tracks skill listings.
func (c *posthogClient) TrackSkillsListed(count int, source string) {
	props := baseProperties()
	props["skill_count"] = count
	props["source"] = source
	c.Track(EventSkillsListed, props)
}

// TrackStatsViewed tracks the status command.
func (c *posthogClient) TrackStatsViewed(height uint64) {
	props := baseProperties()
	props["height"] = height
	c.Track(EventStatsViewed, props)
}

// --- MCP Tracking Methods ---

// TrackMCPToolCalled tracks MCP tool invocations.
func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	props := baseProperties()
	props["tool_name"] = toolName
	props["duration_ms"] = durationMs
	props["success"] = success
	c.Track(EventMCPToolCalled, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackAppStarted(mode string, registered bool, skillCount int)                {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int)        {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string)                     {}
func (c *noopClient) TrackLedgerOperation(op string, success bool, errorKind string)              {}
func (c *noopClient) TrackSkillViewed(visible, ownSkill bool)                                     {}
func (c *noopClient) TrackSkillsListed(count int, source string)                                  {}
func (c *noopClient) TrackStatsViewed(height uint64)                                              {}
func (c *noopClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool)          {}
