package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skilltrail/internal/config"
	"github.com/asteroid-belt/skilltrail/internal/models"
	"github.com/asteroid-belt/skilltrail/pkg/version"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show principal, height and ledger totals",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession("status", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	stats, err := s.host.Stats()
	if err != nil {
		return trackCLIError("status", err)
	}
	meta, err := s.db.GetAllLedgerMeta()
	if err != nil {
		return trackCLIError("status", err)
	}
	writtenBy := meta[models.LedgerMetaAppVersion]
	if writtenBy == "" {
		writtenBy = "unknown"
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n\n", version.Info())
	_, _ = fmt.Fprintf(out, "Principal:      %s\n", s.host.Principal())
	_, _ = fmt.Fprintf(out, "Height:         %d\n", stats.Height)
	_, _ = fmt.Fprintf(out, "Schema version: %s\n", meta[models.LedgerMetaSchemaVersion])
	_, _ = fmt.Fprintf(out, "Written by:     %s\n", writtenBy)
	_, _ = fmt.Fprintf(out, "Users:          %d\n", stats.TotalUsers)
	_, _ = fmt.Fprintf(out, "Skills:         %d\n", stats.TotalSkills)
	_, _ = fmt.Fprintf(out, "Updates:        %d\n", stats.TotalUpdates)
	_, _ = fmt.Fprintf(out, "Goals:          %d\n", stats.TotalGoals)
	_, _ = fmt.Fprintf(out, "Active grants:  %d\n", stats.ActiveGrants)
	_, _ = fmt.Fprintf(out, "Database:       %s (%s)\n", config.GetPaths(s.cfg).Database, humanize.Bytes(uint64(stats.DatabaseSizeBytes)))
	_, _ = fmt.Fprintf(out, "Logs:           %s\n", config.GetPaths(s.cfg).Logs)
	return nil
}
