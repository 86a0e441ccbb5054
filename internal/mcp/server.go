// Package mcp provides the Model Context Protocol server for SkillTrail.
//
// The server exposes every ledger operation as a tool. All calls run as the
// principal the host was configured with; tools never accept a caller
// identity. Mutating tools advance the logical clock and are rate limited.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"

	"github.com/asteroid-belt/skilltrail/internal/config"
	"github.com/asteroid-belt/skilltrail/internal/db"
	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/telemetry"
	"github.com/asteroid-belt/skilltrail/pkg/version"
)

// Server wraps the MCP server with ledger-specific functionality.
type Server struct {
	db        *db.DB
	cfg       *config.Config
	host      *host.Host
	limiter   *rate.Limiter // nil when mutating calls are unlimited
	server    *server.MCPServer
	telemetry telemetry.Client
}

// NewServer creates a new MCP server instance.
func NewServer(database *db.DB, cfg *config.Config, h *host.Host, tc telemetry.Client) *Server {
	s := &Server{
		db:        database,
		cfg:       cfg,
		host:      h,
		limiter:   newLimiter(cfg),
		telemetry: tc,
	}

	s.server = server.NewMCPServer(
		"skilltrail",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// newLimiter builds a limiter allowing RateLimit mutating calls per minute.
func newLimiter(cfg *config.Config) *rate.Limiter {
	if cfg == nil || cfg.MCP.RateLimit <= 0 {
		return nil
	}
	burst := cfg.MCP.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.MCP.RateLimit)), burst)
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

// registerTools adds all ledger tools to the MCP server.
func (s *Server) registerTools() {
	// Mutations
	s.server.AddTool(registerTool(), s.handleRegister)
	s.server.AddTool(addSkillTool(), s.handleAddSkill)
	s.server.AddTool(updateProgressTool(), s.handleUpdateProgress)
	s.server.AddTool(setVisibilityTool(), s.handleSetVisibility)
	s.server.AddTool(grantAccessTool(), s.handleGrantAccess)
	s.server.AddTool(revokeAccessTool(), s.handleRevokeAccess)
	s.server.AddTool(setGoalTool(), s.handleSetGoal)
	s.server.AddTool(completeGoalTool(), s.handleCompleteGoal)

	// Gated reads
	s.server.AddTool(getUserInfoTool(), s.handleGetUserInfo)
	s.server.AddTool(getSkillTool(), s.handleGetSkill)
	s.server.AddTool(getSkillUpdatesTool(), s.handleGetSkillUpdates)
	s.server.AddTool(getSkillGoalsTool(), s.handleGetSkillGoals)
	s.server.AddTool(hasSharedAccessTool(), s.handleHasSharedAccess)
	s.server.AddTool(canViewTool(), s.handleCanView)
	s.server.AddTool(listSkillsTool(), s.handleListSkills)
	s.server.AddTool(getStatsTool(), s.handleGetStats)
}

// registerResources adds read-only resources to the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"skill/{owner}/{skill_id}",
			"Skill",
			mcp.WithTemplateDescription("JSON record of a skill visible to the configured principal"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleSkillResource,
	)

	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"user/{principal}",
			"User profile",
			mcp.WithTemplateDescription("JSON profile of a principal; empty for unregistered principals"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleUserResource,
	)
}
