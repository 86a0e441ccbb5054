package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the SkillTrail MCP server.

func registerTool() mcp.Tool {
	return mcp.NewTool("skilltrail_register",
		mcp.WithDescription("Register the configured principal. Fails with ALREADY_EXISTS on a second call."),
	)
}

func addSkillTool() mcp.Tool {
	return mcp.NewTool("skilltrail_add_skill",
		mcp.WithDescription("Declare a new skill for the configured principal. Returns the new skill ID. The first progress update is recorded automatically."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Skill name"),
		),
		mcp.WithString("category",
			mcp.Description("Skill category"),
		),
		mcp.WithString("description",
			mcp.Description("Free-text description"),
		),
		mcp.WithString("visibility",
			mcp.Required(),
			mcp.Description("private (1), shared (2) or public (3)"),
		),
		mcp.WithNumber("initial_proficiency",
			mcp.Required(),
			mcp.Description("Initial proficiency, 1-5"),
		),
	)
}

func updateProgressTool() mcp.Tool {
	return mcp.NewTool("skilltrail_update_progress",
		mcp.WithDescription("Record a new proficiency level for one of your skills. Returns the update ID."),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("ID of one of your skills"),
		),
		mcp.WithNumber("new_proficiency",
			mcp.Required(),
			mcp.Description("New proficiency, 1-5"),
		),
		mcp.WithString("evidence",
			mcp.Description("Evidence supporting the new level"),
		),
		mcp.WithString("milestone",
			mcp.Description("Milestone reached"),
		),
	)
}

func setVisibilityTool() mcp.Tool {
	return mcp.NewTool("skilltrail_set_visibility",
		mcp.WithDescription("Change who may read one of your skills."),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("ID of one of your skills"),
		),
		mcp.WithString("visibility",
			mcp.Required(),
			mcp.Description("private (1), shared (2) or public (3)"),
		),
	)
}

func grantAccessTool() mcp.Tool {
	return mcp.NewTool("skilltrail_grant_access",
		mcp.WithDescription("Let viewer read every skill you mark as shared."),
		mcp.WithString("viewer",
			mcp.Required(),
			mcp.Description("Principal to grant"),
		),
	)
}

func revokeAccessTool() mcp.Tool {
	return mcp.NewTool("skilltrail_revoke_access",
		mcp.WithDescription("Withdraw viewer's access to your shared skills."),
		mcp.WithString("viewer",
			mcp.Required(),
			mcp.Description("Principal to revoke"),
		),
	)
}

func setGoalTool() mcp.Tool {
	return mcp.NewTool("skilltrail_set_goal",
		mcp.WithDescription("Set a target proficiency for one of your skills, to be reached by a future height. Returns the goal ID."),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("ID of one of your skills"),
		),
		mcp.WithNumber("target_proficiency",
			mcp.Required(),
			mcp.Description("Target proficiency, 1-5"),
		),
		mcp.WithNumber("target_date",
			mcp.Required(),
			mcp.Description("Target height; must be after the current height (see skilltrail_get_stats)"),
		),
		mcp.WithString("description",
			mcp.Description("Goal description"),
		),
	)
}

func completeGoalTool() mcp.Tool {
	return mcp.NewTool("skilltrail_complete_goal",
		mcp.WithDescription("Mark one of your open goals as completed. Completion is self-reported."),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("ID of one of your skills"),
		),
		mcp.WithNumber("goal_id",
			mcp.Required(),
			mcp.Description("ID of an open goal on that skill"),
		),
	)
}

func getUserInfoTool() mcp.Tool {
	return mcp.NewTool("skilltrail_get_user_info",
		mcp.WithDescription("Get a principal's profile. Unregistered principals return an empty profile."),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("Principal to look up"),
		),
	)
}

func getSkillTool() mcp.Tool {
	return mcp.NewTool("skilltrail_get_skill",
		mcp.WithDescription("Get a skill if you may see it. Returns null both for missing skills and for skills hidden from you."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Skill owner"),
		),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("Skill ID within the owner's skills"),
		),
	)
}

func getSkillUpdatesTool() mcp.Tool {
	return mcp.NewTool("skilltrail_get_skill_updates",
		mcp.WithDescription("Report whether a skill you may see has progress history. Does not return the history."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Skill owner"),
		),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("Skill ID within the owner's skills"),
		),
	)
}

func getSkillGoalsTool() mcp.Tool {
	return mcp.NewTool("skilltrail_get_skill_goals",
		mcp.WithDescription("Report whether a skill you may see has goals. Does not return the goals."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Skill owner"),
		),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("Skill ID within the owner's skills"),
		),
	)
}

func hasSharedAccessTool() mcp.Tool {
	return mcp.NewTool("skilltrail_has_shared_access",
		mcp.WithDescription("Get the latest grant record from owner to viewer. Returns can_view false when none exists."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Grant owner"),
		),
		mcp.WithString("viewer",
			mcp.Required(),
			mcp.Description("Grant viewer"),
		),
	)
}

func canViewTool() mcp.Tool {
	return mcp.NewTool("skilltrail_can_view",
		mcp.WithDescription("Check whether you may read a skill. Missing skills are not viewable."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Skill owner"),
		),
		mcp.WithNumber("skill_id",
			mcp.Required(),
			mcp.Description("Skill ID within the owner's skills"),
		),
	)
}

func listSkillsTool() mcp.Tool {
	return mcp.NewTool("skilltrail_list_skills",
		mcp.WithDescription("List the skills of owner that you may see, in ID order."),
		mcp.WithString("owner",
			mcp.Description("Skill owner (default: you)"),
		),
	)
}

func getStatsTool() mcp.Tool {
	return mcp.NewTool("skilltrail_get_stats",
		mcp.WithDescription("Get the configured principal, the current height and ledger totals."),
	)
}
