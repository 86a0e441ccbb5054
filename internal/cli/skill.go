package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Declare skills and record progress",
	Long: `Declare skills and record progress.

Subcommands:
  add                         Declare a new skill
  update <skill-id>           Record a new proficiency level
  visibility <skill-id> <v>   Change who can read a skill
  show <skill-id>             Show a skill you can see
  list                        List the skills you can see
  updates <skill-id>          Report whether progress history exists
  goals <skill-id>            Report whether goals exist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var skillAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Declare a new skill",
	Long: `Declare a new skill at an initial proficiency (1-5).

Visibility is one of private, shared, public (or 1, 2, 3). The first
progress update is recorded automatically.`,
	Args: cobra.NoArgs,
	RunE: runSkillAdd,
}

var skillUpdateCmd = &cobra.Command{
	Use:   "update <skill-id>",
	Short: "Record a new proficiency level",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillUpdate,
}

var skillVisibilityCmd = &cobra.Command{
	Use:   "visibility <skill-id> <private|shared|public>",
	Short: "Change who can read a skill",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkillVisibility,
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show a skill you can see",
	Long: `Show a skill owned by you, or by --owner if it is visible to you.

A skill that does not exist and a skill you may not see are reported the same way.`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillShow,
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills you can see",
	Args:  cobra.NoArgs,
	RunE:  runSkillList,
}

var skillUpdatesCmd = &cobra.Command{
	Use:   "updates <skill-id>",
	Short: "Report whether a visible skill has progress history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillUpdates,
}

var skillGoalsCmd = &cobra.Command{
	Use:   "goals <skill-id>",
	Short: "Report whether a visible skill has goals",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillGoals,
}

var (
	skillName        string
	skillCategory    string
	skillDescription string
	skillVisibility  string
	skillProficiency int
	skillEvidence    string
	skillMilestone   string
	skillOwner       string
)

func init() {
	skillAddCmd.Flags().StringVar(&skillName, "name", "", "Skill name")
	skillAddCmd.Flags().StringVar(&skillCategory, "category", "", "Skill category")
	skillAddCmd.Flags().StringVar(&skillDescription, "description", "", "Description (markdown)")
	skillAddCmd.Flags().StringVar(&skillVisibility, "visibility", "private", "private, shared or public")
	skillAddCmd.Flags().IntVar(&skillProficiency, "proficiency", 0, "Initial proficiency (1-5)")
	_ = skillAddCmd.MarkFlagRequired("name")
	_ = skillAddCmd.MarkFlagRequired("proficiency")

	skillUpdateCmd.Flags().IntVar(&skillProficiency, "proficiency", 0, "New proficiency (1-5)")
	skillUpdateCmd.Flags().StringVar(&skillEvidence, "evidence", "", "Evidence for the new level")
	skillUpdateCmd.Flags().StringVar(&skillMilestone, "milestone", "", "Milestone reached")
	_ = skillUpdateCmd.MarkFlagRequired("proficiency")

	for _, c := range []*cobra.Command{skillShowCmd, skillListCmd, skillUpdatesCmd, skillGoalsCmd} {
		c.Flags().StringVar(&skillOwner, "owner", "", "Skill owner (default: you)")
	}

	skillCmd.AddCommand(skillAddCmd)
	skillCmd.AddCommand(skillUpdateCmd)
	skillCmd.AddCommand(skillVisibilityCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillUpdatesCmd)
	skillCmd.AddCommand(skillGoalsCmd)
}

func runSkillAdd(cmd *cobra.Command, args []string) error {
	visibility := visibilityFlag(skillVisibility)

	s, err := openSession("skill add", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	var skillID uint64
	env, err := s.host.Mutate(host.OpAddSkill, func(env ledger.Env) (err error) {
		skillID, err = s.host.Ledger().AddSkill(env, ledger.NewSkill{
			Name:               skillName,
			Category:           skillCategory,
			Description:        skillDescription,
			Visibility:         visibility,
			InitialProficiency: proficiencyFlag(skillProficiency),
		})
		return err
	})
	if err != nil {
		return trackCLIError("skill add", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added skill #%d %q %s at height %d\n",
		skillID, skillName, visibilityBadge(visibility), env.Height)
	return nil
}

func runSkillUpdate(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[0])
	if err != nil {
		return trackCLIError("skill update", err)
	}

	s, err := openSession("skill update", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	var updateID uint64
	env, err := s.host.Mutate(host.OpUpdateProgress, func(env ledger.Env) (err error) {
		updateID, err = s.host.Ledger().UpdateProgress(env, skillID, proficiencyFlag(skillProficiency), skillEvidence, skillMilestone)
		return err
	})
	if err != nil {
		return trackCLIError("skill update", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded update #%d for skill #%d at height %d %s\n",
		updateID, skillID, env.Height, NewProficiencyBar(proficiencyFlag(skillProficiency), 10).Render())
	return nil
}

func runSkillVisibility(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[0])
	if err != nil {
		return trackCLIError("skill visibility", err)
	}
	visibility := visibilityFlag(args[1])

	s, err := openSession("skill visibility", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	_, err = s.host.Mutate(host.OpSetVisibility, func(env ledger.Env) error {
		return s.host.Ledger().SetVisibility(env, skillID, visibility)
	})
	if err != nil {
		return trackCLIError("skill visibility", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skill #%d is now %s\n", skillID, visibilityBadge(visibility))
	return nil
}

func runSkillShow(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[0])
	if err != nil {
		return trackCLIError("skill show", err)
	}

	s, err := openSession("skill show", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.ReadEnv()
	if err != nil {
		return trackCLIError("skill show", err)
	}
	owner := s.ownerOrSelf(skillOwner)

	skill, err := s.host.Ledger().GetSkill(env, owner, skillID)
	if err != nil {
		return trackCLIError("skill show", err)
	}
	telemetryClient.TrackSkillViewed(skill != nil, owner == env.Caller)
	if skill.IsEmpty() {
		return trackCLIError("skill show", fmt.Errorf("skill #%d of %s: %w", skillID, owner, ledger.ErrNotFound))
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Skill #%d: %s %s\n", skill.SkillID, skill.Name, visibilityBadge(skill.Visibility))
	_, _ = fmt.Fprintf(out, "Owner: %s\n", skill.Owner)
	if skill.Category != "" {
		_, _ = fmt.Fprintf(out, "Category: %s\n", skill.Category)
	}
	_, _ = fmt.Fprintf(out, "Proficiency: %s\n", NewProficiencyBar(skill.CurrentProficiency, 10).Render())
	_, _ = fmt.Fprintf(out, "Created at height %d, last updated at height %d\n", skill.CreatedAt, skill.LastUpdated)

	if desc := renderMarkdown(skill.Description, 80); desc != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", desc)
	}
	return nil
}

func runSkillList(cmd *cobra.Command, args []string) error {
	s, err := openSession("skill list", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.ReadEnv()
	if err != nil {
		return trackCLIError("skill list", err)
	}
	owner := s.ownerOrSelf(skillOwner)

	skills, err := s.host.Ledger().ListSkills(env, owner)
	if err != nil {
		return trackCLIError("skill list", err)
	}
	telemetryClient.TrackSkillsListed(len(skills), "cli")

	out := cmd.OutOrStdout()
	if len(skills) == 0 {
		_, _ = fmt.Fprintf(out, "No visible skills for %s\n", owner)
		return nil
	}

	_, _ = fmt.Fprintf(out, "Skills of %s (%d):\n\n", owner, len(skills))
	for _, skill := range skills {
		_, _ = fmt.Fprintf(out, "  #%-4d %-30s %s %s\n",
			skill.SkillID, skill.Name,
			NewProficiencyBar(skill.CurrentProficiency, 10).Render(),
			visibilityBadge(skill.Visibility))
	}
	return nil
}

func runSkillUpdates(cmd *cobra.Command, args []string) error {
	return runExistenceQuery(cmd, "skill updates", args[0], "progress history", (*ledger.Ledger).GetSkillUpdates)
}

func runSkillGoals(cmd *cobra.Command, args []string) error {
	return runExistenceQuery(cmd, "skill goals", args[0], "goals", (*ledger.Ledger).GetSkillGoals)
}

type existenceQuery func(l *ledger.Ledger, env ledger.Env, owner ledger.Principal, skillID uint64) (bool, error)

func runExistenceQuery(cmd *cobra.Command, cmdName, arg, what string, query existenceQuery) error {
	skillID, err := parseID("skill", arg)
	if err != nil {
		return trackCLIError(cmdName, err)
	}

	s, err := openSession(cmdName, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.ReadEnv()
	if err != nil {
		return trackCLIError(cmdName, err)
	}
	owner := s.ownerOrSelf(skillOwner)

	exists, err := query(s.host.Ledger(), env, owner, skillID)
	if err != nil {
		return trackCLIError(cmdName, err)
	}

	answer := "no"
	if exists {
		answer = "yes"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skill #%d of %s has %s: %s\n", skillID, owner, what, answer)
	return nil
}
