package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/host"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the configured principal",
	Long: `Create a profile for the principal in SKILLTRAIL_PRINCIPAL.

Registration is required before declaring skills and can only happen once.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	s, err := openSession("register", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.host.Mutate(host.OpRegister, s.host.Ledger().Register)
	if err != nil {
		return trackCLIError("register", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s at height %d\n", env.Caller, env.Height)
	return nil
}
