package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/asteroid-belt/skilltrail/internal/config"
	"github.com/asteroid-belt/skilltrail/internal/db"
	"github.com/asteroid-belt/skilltrail/internal/host"
	"github.com/asteroid-belt/skilltrail/internal/ledger"
	"github.com/asteroid-belt/skilltrail/internal/log"
	"github.com/asteroid-belt/skilltrail/internal/models"
)

// session holds everything one command invocation needs.
type session struct {
	cfg  *config.Config
	db   *db.DB
	host *host.Host
}

// openSession loads config, starts logging and opens the ledger for cmdName.
// Errors are already tracked.
func openSession(cmdName string, stderr io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, trackCLIError(cmdName, fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	initLog := log.InitFileOnly
	if verbose {
		initLog = log.Init
	}
	if err := initLog(paths.Logs); err != nil {
		return nil, trackCLIError(cmdName, fmt.Errorf("init logging: %w", err))
	}

	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		_ = log.Close()
		return nil, trackCLIError(cmdName, fmt.Errorf("initialize database: %w", err))
	}

	h, err := host.New(database, cfg.Principal, telemetryClient, ledger.WithLogger(log.Global()))
	if err != nil {
		_ = database.Close()
		_ = log.Close()
		return nil, trackCLIError(cmdName, err)
	}

	if warning, err := h.CheckVersion(); err != nil {
		log.Errorf("version check: %v", err)
	} else if warning != "" {
		_, _ = fmt.Fprintf(stderr, "warning: %s\n", warning)
	}

	return &session{cfg: cfg, db: database, host: h}, nil
}

func (s *session) close() {
	_ = s.db.Close()
	_ = log.Close()
}

// ownerOrSelf returns owner as a principal, or the session principal when empty.
func (s *session) ownerOrSelf(owner string) ledger.Principal {
	if owner == "" {
		return s.host.Principal()
	}
	return ledger.Principal(owner)
}

// proficiencyFlag narrows a --proficiency style flag. Values outside a byte
// become 0 so the ledger reports them as invalid proficiencies.
func proficiencyFlag(v int) uint8 {
	if v < 0 || v > math.MaxUint8 {
		return 0
	}
	return uint8(v)
}

// visibilityFlag parses a visibility name or code. Unparseable input becomes
// 0 so the ledger reports it as an invalid visibility after its lookups.
func visibilityFlag(v string) models.Visibility {
	vis, err := models.ParseVisibility(v)
	if err != nil {
		return 0
	}
	return vis
}

// parseID parses a positive skill or goal ID argument.
func parseID(what, arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q: must be a positive integer", what, arg)
	}
	return id, nil
}
