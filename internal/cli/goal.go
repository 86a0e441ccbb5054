package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Set and complete goals",
	Long: `Set and complete goals on your skills.

Subcommands:
  set <skill-id>                Set a target proficiency by a target height
  complete <skill-id> <goal-id> Mark a goal as completed

Completion is self-reported and is not checked against current proficiency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set <skill-id>",
	Short: "Set a target proficiency by a target height",
	Long: `Set a target proficiency for one of your skills.

The target is given as an absolute height with --by, or relative to the
height of this call with --in. It must lie in the future.`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalSet,
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <skill-id> <goal-id>",
	Short: "Mark a goal as completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalComplete,
}

var (
	goalTarget      int
	goalBy          uint64
	goalIn          uint64
	goalDescription string
)

func init() {
	goalSetCmd.Flags().IntVar(&goalTarget, "target", 0, "Target proficiency (1-5)")
	goalSetCmd.Flags().Uint64Var(&goalBy, "by", 0, "Target height")
	goalSetCmd.Flags().Uint64Var(&goalIn, "in", 0, "Target height relative to now")
	goalSetCmd.Flags().StringVar(&goalDescription, "description", "", "Description (markdown)")
	_ = goalSetCmd.MarkFlagRequired("target")
	goalSetCmd.MarkFlagsMutuallyExclusive("by", "in")
	goalSetCmd.MarkFlagsOneRequired("by", "in")

	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalCompleteCmd)
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[0])
	if err != nil {
		return trackCLIError("goal set", err)
	}
	relative := cmd.Flags().Changed("in")

	s, err := openSession("goal set", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	var goalID, targetDate uint64
	_, err = s.host.Mutate(host.OpSetGoal, func(env ledger.Env) (err error) {
		targetDate = goalBy
		if relative {
			targetDate = env.Height + goalIn
			if goalIn > math.MaxUint64-env.Height {
				targetDate = math.MaxUint64
			}
		}
		goalID, err = s.host.Ledger().SetGoal(env, skillID, ledger.NewGoal{
			TargetProficiency: proficiencyFlag(goalTarget),
			TargetDate:        targetDate,
			Description:       goalDescription,
		})
		return err
	})
	if err != nil {
		return trackCLIError("goal set", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set goal #%d on skill #%d: reach %s by height %d\n",
		goalID, skillID, NewProficiencyBar(proficiencyFlag(goalTarget), 10).RenderGoal(), targetDate)
	return nil
}

func runGoalComplete(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[0])
	if err != nil {
		return trackCLIError("goal complete", err)
	}
	goalID, err := parseID("goal", args[1])
	if err != nil {
		return trackCLIError("goal complete", err)
	}

	s, err := openSession("goal complete", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.Mutate(host.OpCompleteGoal, func(env ledger.Env) error {
		return s.host.Ledger().CompleteGoal(env, skillID, goalID)
	})
	if err != nil {
		return trackCLIError("goal complete", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed goal #%d on skill #%d at height %d\n", goalID, skillID, env.Height)
	return nil
}
