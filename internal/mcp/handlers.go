package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/models"
)

// errRateLimited is the error text returned when a mutating call is throttled.
const errRateLimited = "RATE_LIMITED: too many mutating calls, retry later"

// trackToolCall is a helper to track MCP tool invocations.
func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	if s.telemetry != nil {
		durationMs := time.Since(start).Milliseconds()
		s.telemetry.TrackMCPToolCalled(toolName, durationMs, success)
	}
}

// SkillResponse represents a skill in MCP tool responses.
type SkillResponse struct {
	Owner              string `json:"owner"`
	SkillID            uint64 `json:"skill_id"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Visibility         uint8  `json:"visibility"`
	VisibilityName     string `json:"visibility_name"`
	CurrentProficiency uint8  `json:"current_proficiency"`
	CreatedAt          uint64 `json:"created_at"`
	LastUpdated        uint64 `json:"last_updated"`
}

// UserResponse represents a profile in MCP tool responses.
type UserResponse struct {
	Principal  string `json:"principal"`
	CreatedAt  uint64 `json:"created_at"`
	SkillCount uint64 `json:"skill_count"`
	Registered bool   `json:"registered"`
}

// GrantResponse represents an access grant record.
type GrantResponse struct {
	Owner     string `json:"owner"`
	Viewer    string `json:"viewer"`
	GrantedAt uint64 `json:"granted_at"`
	CanView   bool   `json:"can_view"`
}

// ExistsResponse answers the existence-only history queries.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// MutationResult reports the outcome of a mutating tool.
type MutationResult struct {
	Success bool   `json:"success"`
	Height  uint64 `json:"height"`
	ID      uint64 `json:"id,omitempty"`
	Message string `json:"message"`
}

// StatsResponse represents ledger statistics.
type StatsResponse struct {
	Principal    string `json:"principal"`
	Height       uint64 `json:"height"`
	TotalUsers   int64  `json:"total_users"`
	TotalSkills  int64  `json:"total_skills"`
	TotalUpdates int64  `json:"total_updates"`
	TotalGoals   int64  `json:"total_goals"`
	ActiveGrants int64  `json:"active_grants"`
}

func toSkillResponse(skill *models.Skill) SkillResponse {
	return SkillResponse{
		Owner:              skill.Owner,
		SkillID:            skill.SkillID,
		Name:               skill.Name,
		Category:           skill.Category,
		Description:        skill.Description,
		Visibility:         uint8(skill.Visibility),
		VisibilityName:     skill.Visibility.String(),
		CurrentProficiency: skill.CurrentProficiency,
		CreatedAt:          skill.CreatedAt,
		LastUpdated:        skill.LastUpdated,
	}
}

func toUserResponse(profile models.UserProfile) UserResponse {
	return UserResponse{
		Principal:  profile.Principal,
		CreatedAt:  profile.CreatedAt,
		SkillCount: profile.SkillCount,
		Registered: profile.IsRegistered(),
	}
}

// --- argument parsing ---

// stringArg returns a string argument as sent, or "" when absent.
func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// requireString returns a string argument that must be present. The empty
// string is a value like any other.
func requireString(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%s parameter is required", name)
	}
	return v, nil
}

// uintArg reads a non-negative integer argument. JSON numbers arrive as
// float64; numeric strings are accepted too.
func uintArg(args map[string]interface{}, name string) (uint64, error) {
	switch v := args[name].(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, fmt.Errorf("%s must be a non-negative integer", name)
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a non-negative integer", name)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s parameter is required", name)
	default:
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
}

// proficiencyArg reads a proficiency. Values wider than a byte become 0,
// which the ledger rejects as an invalid proficiency once it has resolved
// the profile or skill.
func proficiencyArg(args map[string]interface{}, name string) (uint8, error) {
	n, err := uintArg(args, name)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint8 {
		return 0, nil
	}
	return uint8(n), nil
}

// visibilityArg reads a visibility given as a name or a numeric code.
// Unknown names and out-of-range codes become 0, which the ledger rejects
// as an invalid visibility after its own lookups.
func visibilityArg(args map[string]interface{}, name string) (models.Visibility, error) {
	switch v := args[name].(type) {
	case string:
		vis, err := models.ParseVisibility(v)
		if err != nil {
			return 0, nil
		}
		return vis, nil
	case float64:
		if v < 0 || v > math.MaxUint8 || v != math.Trunc(v) {
			return 0, nil
		}
		return models.Visibility(v), nil
	case nil:
		return 0, fmt.Errorf("%s parameter is required", name)
	default:
		return 0, nil
	}
}

// errorResult converts an error to a tool error. Ledger errors carry their
// kind as a prefix so clients can branch on it.
func errorResult(err error) *mcp.CallToolResult {
	if ledger.KindOf(err) != ledger.KindUnknown {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("internal error: %v", err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// --- mutations ---

// mutate waits for the rate limiter, then runs fn through the host.
func (s *Server) mutate(ctx context.Context, toolName, op string, fn func(env ledger.Env) (uint64, string, error)) (*mcp.CallToolResult, error) {
	start := time.Now()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.trackToolCall(toolName, start, false)
			return mcp.NewToolResultError(errRateLimited), nil
		}
	}

	var id uint64
	var message string
	env, err := s.host.Mutate(op, func(env ledger.Env) (err error) {
		id, message, err = fn(env)
		return err
	})
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	s.trackToolCall(toolName, start, true)
	return jsonResult(MutationResult{Success: true, Height: env.Height, ID: id, Message: message})
}

// argError reports an argument error for toolName.
func (s *Server) argError(toolName string, start time.Time, err error) (*mcp.CallToolResult, error) {
	s.trackToolCall(toolName, start, false)
	if ledger.KindOf(err) != ledger.KindUnknown {
		return errorResult(err), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", ledger.KindInvalidInput, err)), nil
}

func (s *Server) handleRegister(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.mutate(ctx, "skilltrail_register", host.OpRegister, func(env ledger.Env) (uint64, string, error) {
		err := s.host.Ledger().Register(env)
		return 0, fmt.Sprintf("registered %s", env.Caller), err
	})
}

func (s *Server) handleAddSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_add_skill"
	start := time.Now()
	args := req.Params.Arguments

	name, err := requireString(args, "name")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	visibility, err := visibilityArg(args, "visibility")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	proficiency, err := proficiencyArg(args, "initial_proficiency")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, host.OpAddSkill, func(env ledger.Env) (uint64, string, error) {
		id, err := s.host.Ledger().AddSkill(env, ledger.NewSkill{
			Name:               name,
			Category:           stringArg(args, "category"),
			Description:        stringArg(args, "description"),
			Visibility:         visibility,
			InitialProficiency: proficiency,
		})
		return id, fmt.Sprintf("added skill %d", id), err
	})
}

func (s *Server) handleUpdateProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_update_progress"
	start := time.Now()
	args := req.Params.Arguments

	skillID, err := uintArg(args, "skill_id")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	proficiency, err := proficiencyArg(args, "new_proficiency")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, host.OpUpdateProgress, func(env ledger.Env) (uint64, string, error) {
		id, err := s.host.Ledger().UpdateProgress(env, skillID, proficiency, stringArg(args, "evidence"), stringArg(args, "milestone"))
		return id, fmt.Sprintf("recorded update %d on skill %d", id, skillID), err
	})
}

func (s *Server) handleSetVisibility(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_set_visibility"
	start := time.Now()
	args := req.Params.Arguments

	skillID, err := uintArg(args, "skill_id")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	visibility, err := visibilityArg(args, "visibility")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, host.OpSetVisibility, func(env ledger.Env) (uint64, string, error) {
		err := s.host.Ledger().SetVisibility(env, skillID, visibility)
		return 0, fmt.Sprintf("skill %d is now %s", skillID, visibility), err
	})
}

func (s *Server) handleGrantAccess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleSetAccess(ctx, req, "skilltrail_grant_access", host.OpGrantAccess, true)
}

func (s *Server) handleRevokeAccess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleSetAccess(ctx, req, "skilltrail_revoke_access", host.OpRevokeAccess, false)
}

func (s *Server) handleSetAccess(ctx context.Context, req mcp.CallToolRequest, toolName, op string, grant bool) (*mcp.CallToolResult, error) {
	start := time.Now()

	viewer, err := requireString(req.Params.Arguments, "viewer")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, op, func(env ledger.Env) (uint64, string, error) {
		if grant {
			return 0, fmt.Sprintf("granted %s", viewer), s.host.Ledger().GrantAccess(env, ledger.Principal(viewer))
		}
		return 0, fmt.Sprintf("revoked %s", viewer), s.host.Ledger().RevokeAccess(env, ledger.Principal(viewer))
	})
}

func (s *Server) handleSetGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_set_goal"
	start := time.Now()
	args := req.Params.Arguments

	skillID, err := uintArg(args, "skill_id")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	target, err := proficiencyArg(args, "target_proficiency")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	targetDate, err := uintArg(args, "target_date")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, host.OpSetGoal, func(env ledger.Env) (uint64, string, error) {
		id, err := s.host.Ledger().SetGoal(env, skillID, ledger.NewGoal{
			TargetProficiency: target,
			TargetDate:        targetDate,
			Description:       stringArg(args, "description"),
		})
		return id, fmt.Sprintf("set goal %d on skill %d", id, skillID), err
	})
}

func (s *Server) handleCompleteGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_complete_goal"
	start := time.Now()
	args := req.Params.Arguments

	skillID, err := uintArg(args, "skill_id")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	goalID, err := uintArg(args, "goal_id")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	return s.mutate(ctx, toolName, host.OpCompleteGoal, func(env ledger.Env) (uint64, string, error) {
		err := s.host.Ledger().CompleteGoal(env, skillID, goalID)
		return goalID, fmt.Sprintf("completed goal %d on skill %d", goalID, skillID), err
	})
}

// --- reads ---

func (s *Server) handleGetUserInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_get_user_info"
	start := time.Now()

	user, err := requireString(req.Params.Arguments, "user")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	profile, err := s.host.Ledger().GetUserInfo(ledger.Principal(user))
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	s.trackToolCall(toolName, start, true)
	return jsonResult(toUserResponse(profile))
}

// skillQuery parses the owner and skill_id arguments shared by the gated reads.
func skillQuery(args map[string]interface{}) (ledger.Principal, uint64, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return "", 0, err
	}
	skillID, err := uintArg(args, "skill_id")
	if err != nil {
		return "", 0, err
	}
	return ledger.Principal(owner), skillID, nil
}

func (s *Server) handleGetSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_get_skill"
	start := time.Now()

	owner, skillID, err := skillQuery(req.Params.Arguments)
	if err != nil {
		return s.argError(toolName, start, err)
	}
	env, err := s.host.ReadEnv()
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	skill, err := s.host.Ledger().GetSkill(env, owner, skillID)
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	if s.telemetry != nil {
		s.telemetry.TrackSkillViewed(!skill.IsEmpty(), owner == env.Caller)
	}
	s.trackToolCall(toolName, start, true)

	if skill.IsEmpty() {
		return mcp.NewToolResultText("null"), nil
	}
	return jsonResult(toSkillResponse(skill))
}

func (s *Server) handleGetSkillUpdates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleExists(req, "skilltrail_get_skill_updates", (*ledger.Ledger).GetSkillUpdates)
}

func (s *Server) handleGetSkillGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleExists(req, "skilltrail_get_skill_goals", (*ledger.Ledger).GetSkillGoals)
}

func (s *Server) handleCanView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleExists(req, "skilltrail_can_view", (*ledger.Ledger).CanView)
}

type skillPredicate func(l *ledger.Ledger, env ledger.Env, owner ledger.Principal, skillID uint64) (bool, error)

func (s *Server) handleExists(req mcp.CallToolRequest, toolName string, pred skillPredicate) (*mcp.CallToolResult, error) {
	start := time.Now()

	owner, skillID, err := skillQuery(req.Params.Arguments)
	if err != nil {
		return s.argError(toolName, start, err)
	}
	env, err := s.host.ReadEnv()
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	ok, err := pred(s.host.Ledger(), env, owner, skillID)
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	s.trackToolCall(toolName, start, true)
	return jsonResult(ExistsResponse{Exists: ok})
}

func (s *Server) handleHasSharedAccess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_has_shared_access"
	start := time.Now()
	args := req.Params.Arguments

	owner, err := requireString(args, "owner")
	if err != nil {
		return s.argError(toolName, start, err)
	}
	viewer, err := requireString(args, "viewer")
	if err != nil {
		return s.argError(toolName, start, err)
	}

	grant, err := s.host.Ledger().HasSharedAccess(ledger.Principal(owner), ledger.Principal(viewer))
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	s.trackToolCall(toolName, start, true)
	return jsonResult(GrantResponse{
		Owner:     grant.Owner,
		Viewer:    grant.Viewer,
		GrantedAt: grant.GrantedAt,
		CanView:   grant.CanView,
	})
}

func (s *Server) handleListSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_list_skills"
	start := time.Now()

	env, err := s.host.ReadEnv()
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	owner := env.Caller
	if o := stringArg(req.Params.Arguments, "owner"); strings.TrimSpace(o) != "" {
		owner = ledger.Principal(o)
	}

	skills, err := s.host.Ledger().ListSkills(env, owner)
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	results := make([]SkillResponse, 0, len(skills))
	for i := range skills {
		results = append(results, toSkillResponse(&skills[i]))
	}

	if s.telemetry != nil {
		s.telemetry.TrackSkillsListed(len(results), "mcp")
	}
	s.trackToolCall(toolName, start, true)
	return jsonResult(results)
}

func (s *Server) handleGetStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const toolName = "skilltrail_get_stats"
	start := time.Now()

	stats, err := s.host.Stats()
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return errorResult(err), nil
	}

	s.trackToolCall(toolName, start, true)
	return jsonResult(StatsResponse{
		Principal:    string(s.host.Principal()),
		Height:       stats.Height,
		TotalUsers:   stats.TotalUsers,
		TotalSkills:  stats.TotalSkills,
		TotalUpdates: stats.TotalUpdates,
		TotalGoals:   stats.TotalGoals,
		ActiveGrants: stats.ActiveGrants,
	})
}
