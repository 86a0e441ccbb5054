// Package main provides the skilltrail-mcp server.
//
// skilltrail-mcp exposes the SkillTrail ledger via the Model Context Protocol,
// so that assistants can record progress and read skills on behalf of the
// configured principal.
//
// Usage:
//
//	skilltrail-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asteroid-belt/skilltrail/internal/config"
	"github.com/asteroid-belt/skilltrail/internal/db"
	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/log"
	"github.com/asteroid-belt/skilltrail/internal/mcp"
	"github.com/asteroid-belt/skilltrail/internal/telemetry"
	"github.com/asteroid-belt/skilltrail/pkg/version"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("skilltrail-mcp %s\n", version.Version)
		os.Exit(0)
	}

	// Handle --help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()

	// Setup context with cancellation on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	paths := config.GetPaths(cfg)

	// stdout carries the protocol, so logs go to the file only.
	if err := log.InitFileOnly(paths.Logs); err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = log.Close() }()

	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	tc := telemetry.New(database)
	defer tc.Close()

	h, err := host.New(database, cfg.Principal, tc, ledger.WithLogger(log.Global()))
	if err != nil {
		return err
	}

	if warning, err := h.CheckVersion(); err != nil {
		log.Errorf("version check: %v", err)
	} else if warning != "" {
		log.Printf("warning: %s\n", warning)
	}

	profile, err := h.Ledger().GetUserInfo(h.Principal())
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	tc.TrackAppStarted("mcp", profile.IsRegistered(), int(profile.SkillCount))
	log.Printf("skilltrail-mcp %s serving principal=%s\n", version.Short(), h.Principal())

	server := mcp.NewServer(database, cfg, h, tc)
	err = server.Serve(ctx)
	tc.TrackAppExited("mcp", time.Since(start).Milliseconds(), 0)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printHelp() {
	help := `skilltrail-mcp - MCP server for the SkillTrail ledger

USAGE:
    skilltrail-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    skilltrail-mcp is a Model Context Protocol (MCP) server that exposes a
    SkillTrail ledger to MCP-compatible clients. Every call is made as the
    principal in SKILLTRAIL_PRINCIPAL (default: the OS user name).

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

ENVIRONMENT:
    SKILLTRAIL_HOME              Data directory (default ~/.skilltrail)
    SKILLTRAIL_PRINCIPAL         Identity calls are made as
    SKILLTRAIL_DEBUG             Log SQL statements
    SKILLTRAIL_MCP_RATE_LIMIT    Mutating calls allowed per minute (0 = unlimited)

CONFIGURATION:
    {
      "mcpServers": {
        "skilltrail": {
          "type": "stdio",
          "command": "skilltrail-mcp"
        }
      }
    }

TOOLS PROVIDED:
    skilltrail_register            Register the configured principal
    skilltrail_add_skill           Declare a skill
    skilltrail_update_progress     Record a progress update
    skilltrail_set_visibility      Change who may read a skill
    skilltrail_grant_access        Let a viewer read shared skills
    skilltrail_revoke_access       Withdraw a viewer's access
    skilltrail_set_goal            Set a proficiency goal
    skilltrail_complete_goal       Mark a goal completed
    skilltrail_get_user_info       Read a profile
    skilltrail_get_skill           Read a skill (null if hidden or missing)
    skilltrail_get_skill_updates   Whether progress history exists
    skilltrail_get_skill_goals     Whether goals exist
    skilltrail_has_shared_access   Read a grant record
    skilltrail_can_view            Whether a skill is readable
    skilltrail_list_skills         List readable skills of an owner
    skilltrail_get_stats           Ledger statistics

RESOURCES PROVIDED:
    skilltrail://skill/{owner}/{skill_id}   Skill record as JSON
    skilltrail://user/{principal}           Profile as JSON
`
	fmt.Print(help)
}
