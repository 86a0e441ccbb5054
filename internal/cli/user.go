package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect user profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var userInfoCmd = &cobra.Command{
	Use:   "info [principal]",
	Short: "Show a user's profile",
	Long: `Show the profile of principal, or your own when omitted.

Unregistered principals are reported with an empty profile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUserInfo,
}

func init() {
	userCmd.AddCommand(userInfoCmd)
}

func runUserInfo(cmd *cobra.Command, args []string) error {
	s, err := openSession("user info", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	var who string
	if len(args) == 1 {
		who = args[0]
	}
	principal := s.ownerOrSelf(who)

	profile, err := s.host.Ledger().GetUserInfo(principal)
	if err != nil {
		return trackCLIError("user info", err)
	}

	out := cmd.OutOrStdout()
	if !profile.IsRegistered() {
		_, _ = fmt.Fprintf(out, "%s is not registered (skills: 0)\n", principal)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Principal: %s\n", profile.Principal)
	_, _ = fmt.Fprintf(out, "Registered at height: %d\n", profile.CreatedAt)
	_, _ = fmt.Fprintf(out, "Skills: %d\n", profile.SkillCount)
	return nil
}
