package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/skilltrail/internal/ledger"
)

// resourcePrefix is the URI scheme for SkillTrail resources.
const resourcePrefix = "skilltrail://"

// parseSkillURI extracts the owner and skill ID from a
// skilltrail://skill/{owner}/{skill_id} URI.
func parseSkillURI(uri string) (owner ledger.Principal, skillID uint64, err error) {
	if !strings.HasPrefix(uri, resourcePrefix+"skill/") {
		return "", 0, fmt.Errorf("invalid URI scheme: %s", uri)
	}

	path := strings.TrimPrefix(uri, resourcePrefix+"skill/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return "", 0, fmt.Errorf("expected skill/{owner}/{skill_id} in URI: %s", uri)
	}

	skillID, err = strconv.ParseUint(path[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid skill id in URI: %s", uri)
	}
	return ledger.Principal(path[:idx]), skillID, nil
}

// parseUserURI extracts the principal from a skilltrail://user/{principal} URI.
func parseUserURI(uri string) (ledger.Principal, error) {
	if !strings.HasPrefix(uri, resourcePrefix+"user/") {
		return "", fmt.Errorf("invalid URI scheme: %s", uri)
	}

	principal := strings.TrimPrefix(uri, resourcePrefix+"user/")
	if principal == "" {
		return "", fmt.Errorf("empty principal in URI: %s", uri)
	}
	return ledger.Principal(principal), nil
}

// handleSkillResource handles skilltrail://skill/{owner}/{skill_id} resources.
// A skill the configured principal may not see reads exactly like a missing one.
func (s *Server) handleSkillResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	owner, skillID, err := parseSkillURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	env, err := s.host.ReadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read height: %w", err)
	}

	skill, err := s.host.Ledger().GetSkill(env, owner, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	if skill.IsEmpty() {
		return nil, fmt.Errorf("skill not found: %s/%d", owner, skillID)
	}

	data, err := json.Marshal(toSkillResponse(skill))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skill: %v", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// handleUserResource handles skilltrail://user/{principal} resources.
func (s *Server) handleUserResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	principal, err := parseUserURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	profile, err := s.host.Ledger().GetUserInfo(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	data, err := json.Marshal(toUserResponse(profile))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %v", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
