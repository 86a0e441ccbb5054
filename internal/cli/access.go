package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Manage who can read your shared skills",
	Long: `Manage who can read your shared skills.

A grant lets one viewer read every skill you mark as shared. It never
exposes private skills. Public skills are readable by everyone.

Subcommands:
  grant <viewer>             Let viewer read your shared skills
  revoke <viewer>            Withdraw viewer's access
  show <viewer>              Show the latest grant record for viewer
  check <owner> <skill-id>   Check whether you can read a skill`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accessGrantCmd = &cobra.Command{
	Use:   "grant <viewer>",
	Short: "Let viewer read your shared skills",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccessGrant,
}

var accessRevokeCmd = &cobra.Command{
	Use:   "revoke <viewer>",
	Short: "Withdraw viewer's access to your shared skills",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccessRevoke,
}

var accessShowCmd = &cobra.Command{
	Use:   "show <viewer>",
	Short: "Show the latest grant record for viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccessShow,
}

var accessCheckCmd = &cobra.Command{
	Use:   "check <owner> <skill-id>",
	Short: "Check whether you can read a skill",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccessCheck,
}

var accessOwner string

func init() {
	accessShowCmd.Flags().StringVar(&accessOwner, "owner", "", "Grant owner (default: you)")

	accessCmd.AddCommand(accessGrantCmd)
	accessCmd.AddCommand(accessRevokeCmd)
	accessCmd.AddCommand(accessShowCmd)
	accessCmd.AddCommand(accessCheckCmd)
}

func runAccessGrant(cmd *cobra.Command, args []string) error {
	return runSetAccess(cmd, "access grant", host.OpGrantAccess, ledger.Principal(args[0]), true)
}

func runAccessRevoke(cmd *cobra.Command, args []string) error {
	return runSetAccess(cmd, "access revoke", host.OpRevokeAccess, ledger.Principal(args[0]), false)
}

func runSetAccess(cmd *cobra.Command, cmdName, op string, viewer ledger.Principal, grant bool) error {
	s, err := openSession(cmdName, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.Mutate(op, func(env ledger.Env) error {
		if grant {
			return s.host.Ledger().GrantAccess(env, viewer)
		}
		return s.host.Ledger().RevokeAccess(env, viewer)
	})
	if err != nil {
		return trackCLIError(cmdName, err)
	}

	verb := "Revoked"
	if grant {
		verb = "Granted"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s shared access for %s at height %d\n", verb, viewer, env.Height)
	return nil
}

func runAccessShow(cmd *cobra.Command, args []string) error {
	s, err := openSession("access show", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	owner := s.ownerOrSelf(accessOwner)
	viewer := ledger.Principal(args[0])

	grant, err := s.host.Ledger().HasSharedAccess(owner, viewer)
	if err != nil {
		return trackCLIError("access show", err)
	}

	out := cmd.OutOrStdout()
	if grant.Owner == "" {
		_, _ = fmt.Fprintf(out, "%s has never granted or revoked access for %s (can view: false)\n", owner, viewer)
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s -> %s: can view: %t (recorded at height %d)\n", owner, viewer, grant.CanView, grant.GrantedAt)
	return nil
}

func runAccessCheck(cmd *cobra.Command, args []string) error {
	skillID, err := parseID("skill", args[1])
	if err != nil {
		return trackCLIError("access check", err)
	}

	s, err := openSession("access check", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.ReadEnv()
	if err != nil {
		return trackCLIError("access check", err)
	}
	owner := ledger.Principal(args[0])

	ok, err := s.host.Ledger().CanView(env, owner, skillID)
	if err != nil {
		return trackCLIError("access check", err)
	}

	answer := "cannot"
	if ok {
		answer = "can"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s view skill #%d of %s\n", env.Caller, answer, skillID, owner)
	return nil
}
