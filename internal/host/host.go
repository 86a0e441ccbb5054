// Package host binds ledger calls to the configured principal and to the
// logical clock persisted in the database.
//
// Every mutating call advances the height by one before it runs, so each call
// is its own block even when the operation itself fails. Reads observe the
// current height.
package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asteroid-belt/skilltrail/internal/db"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/models"
	"github.com/asteroid-belt/skilltrail/internal/telemetry"
	"github.com/asteroid-belt/skilltrail/pkg/version"
)

// ErrNoPrincipal is returned when no principal is configured.
var ErrNoPrincipal = errors.New("no principal configured: set SKILLTRAIL_PRINCIPAL")

// Operation names reported to telemetry.
const (
	OpRegister       = "register"
	OpAddSkill       = "add_skill"
	OpUpdateProgress = "update_progress"
	OpSetVisibility  = "set_visibility"
	OpGrantAccess    = "grant_access"
	OpRevokeAccess   = "revoke_access"
	OpSetGoal        = "set_goal"
	OpCompleteGoal   = "complete_goal"
)

// Host runs ledger operations on behalf of one principal.
type Host struct {
	db        *db.DB
	ledger    *ledger.Ledger
	principal ledger.Principal
	telemetry telemetry.Client
}

// New creates a host for principal. A nil telemetry client disables tracking.
func New(database *db.DB, principal string, tc telemetry.Client, opts ...ledger.Option) (*Host, error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return nil, ErrNoPrincipal
	}
	if tc == nil {
		tc = telemetry.NewNoop()
	}
	return &Host{
		db:        database,
		ledger:    ledger.New(database, opts...),
		principal: ledger.Principal(principal),
		telemetry: tc,
	}, nil
}

// Principal returns the identity calls are made as.
func (h *Host) Principal() ledger.Principal {
	return h.principal
}

// Ledger returns the underlying ledger.
func (h *Host) Ledger() *ledger.Ledger {
	return h.ledger
}

// ReadEnv returns the environment for a read at the current height.
func (h *Host) ReadEnv() (ledger.Env, error) {
	height, err := h.db.Height()
	if err != nil {
		return ledger.Env{}, err
	}
	return ledger.Env{Caller: h.principal, Height: height}, nil
}

// Mutate advances the clock and runs fn at the new height. The outcome is
// reported to telemetry under op.
func (h *Host) Mutate(op string, fn func(env ledger.Env) error) (ledger.Env, error) {
	height, err := h.db.AdvanceHeight()
	if err != nil {
		return ledger.Env{}, err
	}
	env := ledger.Env{Caller: h.principal, Height: height}

	err = fn(env)
	kind := ""
	if err != nil {
		kind = string(ledger.KindOf(err))
	}
	h.telemetry.TrackLedgerOperation(op, err == nil, kind)
	return env, err
}

// Stats returns ledger-wide counts and the current height.
func (h *Host) Stats() (*models.LedgerStats, error) {
	stats, err := h.db.GetStats()
	if err != nil {
		return nil, err
	}
	h.telemetry.TrackStatsViewed(stats.Height)
	return stats, nil
}

// CheckVersion compares the running build against the newest build that has
// written to the ledger. It returns a warning when this binary is older, and
// otherwise records the running version. Dev builds record nothing.
func (h *Host) CheckVersion() (string, error) {
	stored, err := h.db.GetLedgerMeta(models.LedgerMetaAppVersion)
	if err != nil {
		return "", fmt.Errorf("read app version: %w", err)
	}

	if stored != "" && version.IsOlderThan(stored) {
		return fmt.Sprintf("ledger was last written by skilltrail %s; this is %s", stored, version.Short()), nil
	}
	if version.IsDevBuild() {
		return "", nil
	}
	if stored == "" || version.Compare(stored) > 0 {
		if err := h.db.SetLedgerMeta(models.LedgerMetaAppVersion, version.Short()); err != nil {
			return "", fmt.Errorf("record app version: %w", err)
		}
	}
	return "", nil
}
