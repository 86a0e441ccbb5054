// Package cli provides the command-line interface for SkillTrail.
package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/telemetry"
	"github.com/asteroid-belt/skilltrail/pkg/version"
)

var telemetryClient = telemetry.NewNoop()

var commandStartTime time.Time

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "skilltrail",
	Short: "Track skill development with owner-controlled visibility",
	Long: `Track skill development with owner-controlled visibility

Declare skills, record self-assessed progress on a 1-5 scale, set goals,
and decide who can read each skill: only you (private), viewers you grant
(shared), or everyone (public).

Every command runs as the principal in SKILLTRAIL_PRINCIPAL (defaults to
your OS user name). Data lives in SKILLTRAIL_HOME (defaults to ~/.skilltrail).

Telemetry:
  Telemetry is enabled by default, always anonymous, and never includes
  principals, skill names or descriptions.

  Opt-out with:
  	SKILLTRAIL_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.CommandPath(), hasFlags, durationMs)
		}

		if cmd.Flags().Changed("help") {
			telemetryClient.TrackCLIHelpViewed(cmd.Name(), os.Args[1:])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo ledger log lines to the console")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc != nil {
		telemetryClient = tc
	}

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	if rootCmd.CalledAs() != "" {
		durationMs := time.Since(commandStartTime).Milliseconds()
		telemetryClient.TrackAppExited("cli", durationMs, 1)
	}

	return err
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	telemetryClient.TrackCLIError(cmdName, classifyError(err))
	return err
}

// classifyError determines the error type for telemetry. Ledger errors are
// classified by kind; anything else by its message.
func classifyError(err error) string {
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		return "not_found_error"
	case ledger.KindAlreadyExists:
		return "already_exists_error"
	case ledger.KindUnauthorized:
		return "permission_error"
	case ledger.KindInvalidInput, ledger.KindInvalidVisibility, ledger.KindInvalidProficiency:
		return "validation_error"
	}

	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "principal"):
		return "principal_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
