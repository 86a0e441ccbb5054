// Package ledger implements the skill ledger: user registration, skills,
// append-only progress updates, goals, and owner-controlled read access.
//
// Every mutating operation runs in a single database transaction. All
// precondition checks happen before the first write, and any failure rolls
// the whole operation back, so callers observe either the full effect or none.
// The calling principal and the logical clock are supplied per call by the
// host through Env.
package ledger

import (
	"github.com/asteroid-belt/skilltrail/internal/db"
	"github.com/asteroid-belt/skilltrail/internal/models"
)

// Logger receives one line per committed mutation.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// Ledger is the entry point for all ledger operations.
type Ledger struct {
	db  *db.DB
	log Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for mutation records.
func WithLogger(l Logger) Option {
	return func(lg *Ledger) {
		if l != nil {
			lg.log = l
		}
	}
}

// New creates a ledger backed by database.
func New(database *db.DB, opts ...Option) *Ledger {
	l := &Ledger{db: database, log: nopLogger{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewSkill holds the caller-supplied fields of a skill being declared.
type NewSkill struct {
	Name               string
	Category           string
	Description        string
	Visibility         models.Visibility
	InitialProficiency uint8
}

// NewGoal holds the caller-supplied fields of a goal.
type NewGoal struct {
	TargetProficiency uint8
	TargetDate        uint64
	Description       string
}

// Register creates the caller's profile. It fails with KindAlreadyExists if
// the caller is already registered.
func (l *Ledger) Register(env Env) error {
	caller := string(env.Caller)
	err := l.db.Transaction(func(tx *db.DB) error {
		existing, err := tx.GetProfile(caller)
		if err != nil {
			return err
		}
		if existing != nil {
			return newError(KindAlreadyExists, "principal %q is already registered", caller)
		}
		return tx.CreateProfile(&models.UserProfile{
			Principal:  caller,
			CreatedAt:  env.Height,
			SkillCount: 0,
		})
	})
	if err != nil {
		return err
	}

	l.log.Printf("height=%d register principal=%s\n", env.Height, caller)
	return nil
}

// AddSkill declares a new skill for the caller and returns its ID.
// The first progress update is written alongside it, carrying the initial
// proficiency.
func (l *Ledger) AddSkill(env Env, in NewSkill) (uint64, error) {
	caller := string(env.Caller)
	var skillID uint64

	err := l.db.Transaction(func(tx *db.DB) error {
		profile, err := tx.GetProfile(caller)
		if err != nil {
			return err
		}
		if profile == nil {
			return newError(KindNotFound, "principal %q is not registered", caller)
		}
		if !in.Visibility.Valid() {
			return newError(KindInvalidVisibility, "visibility %d is not one of 1 (private), 2 (shared), 3 (public)", uint8(in.Visibility))
		}
		if !models.ValidProficiency(in.InitialProficiency) {
			return newError(KindInvalidProficiency, "initial proficiency %d is outside [%d,%d]", in.InitialProficiency, models.MinProficiency, models.MaxProficiency)
		}

		skillID, err = tx.NextID(caller, 0, models.CounterSkill)
		if err != nil {
			return err
		}

		if err := tx.CreateSkill(&models.Skill{
			Owner:              caller,
			SkillID:            skillID,
			Name:               in.Name,
			Category:           in.Category,
			Description:        in.Description,
			Visibility:         in.Visibility,
			CurrentProficiency: in.InitialProficiency,
			CreatedAt:          env.Height,
			LastUpdated:        env.Height,
		}); err != nil {
			return err
		}

		updateID, err := tx.NextID(caller, skillID, models.CounterUpdate)
		if err != nil {
			return err
		}
		if err := tx.AppendProgressUpdate(&models.ProgressUpdate{
			Owner:       caller,
			SkillID:     skillID,
			UpdateID:    updateID,
			Proficiency: in.InitialProficiency,
			RecordedAt:  env.Height,
			Evidence:    "",
			Milestone:   models.InitialMilestone,
		}); err != nil {
			return err
		}

		return tx.IncrementSkillCount(caller)
	})
	if err != nil {
		return 0, err
	}

	l.log.Printf("height=%d add-skill principal=%s skill=%d proficiency=%d visibility=%s\n",
		env.Height, caller, skillID, in.InitialProficiency, in.Visibility)
	return skillID, nil
}

// UpdateProgress appends a progress update to one of the caller's skills and
// makes newProficiency the skill's current proficiency. Returns the update ID.
func (l *Ledger) UpdateProgress(env Env, skillID uint64, newProficiency uint8, evidence, milestone string) (uint64, error) {
	caller := string(env.Caller)
	var updateID uint64

	err := l.db.Transaction(func(tx *db.DB) error {
		skill, err := tx.GetSkill(caller, skillID)
		if err != nil {
			return err
		}
		if skill == nil {
			return newError(KindNotFound, "skill %d not found", skillID)
		}
		if !models.ValidProficiency(newProficiency) {
			return newError(KindInvalidProficiency, "proficiency %d is outside [%d,%d]", newProficiency, models.MinProficiency, models.MaxProficiency)
		}

		updateID, err = tx.NextID(caller, skillID, models.CounterUpdate)
		if err != nil {
			return err
		}
		if err := tx.AppendProgressUpdate(&models.ProgressUpdate{
			Owner:       caller,
			SkillID:     skillID,
			UpdateID:    updateID,
			Proficiency: newProficiency,
			RecordedAt:  env.Height,
			Evidence:    evidence,
			Milestone:   milestone,
		}); err != nil {
			return err
		}

		return tx.UpdateSkillProficiency(caller, skillID, newProficiency, env.Height)
	})
	if err != nil {
		return 0, err
	}

	l.log.Printf("height=%d update-progress principal=%s skill=%d update=%d proficiency=%d\n",
		env.Height, caller, skillID, updateID, newProficiency)
	return updateID, nil
}

// SetVisibility changes who may read one of the caller's skills.
// The skill's last-updated height is left unchanged.
func (l *Ledger) SetVisibility(env Env, skillID uint64, visibility models.Visibility) error {
	caller := string(env.Caller)

	err := l.db.Transaction(func(tx *db.DB) error {
		skill, err := tx.GetSkill(caller, skillID)
		if err != nil {
			return err
		}
		if skill == nil {
			return newError(KindNotFound, "skill %d not found", skillID)
		}
		if !visibility.Valid() {
			return newError(KindInvalidVisibility, "visibility %d is not one of 1 (private), 2 (shared), 3 (public)", uint8(visibility))
		}
		return tx.UpdateSkillVisibility(caller, skillID, visibility)
	})
	if err != nil {
		return err
	}

	l.log.Printf("height=%d set-visibility principal=%s skill=%d visibility=%s\n",
		env.Height, caller, skillID, visibility)
	return nil
}

// GrantAccess lets viewer read the caller's shared skills. The viewer is not
// validated: unknown principals and the caller itself are accepted.
func (l *Ledger) GrantAccess(env Env, viewer Principal) error {
	return l.setAccess(env, viewer, true)
}

// RevokeAccess withdraws viewer's access to the caller's shared skills.
// Revoking a viewer that was never granted still records the decision.
func (l *Ledger) RevokeAccess(env Env, viewer Principal) error {
	return l.setAccess(env, viewer, false)
}

func (l *Ledger) setAccess(env Env, viewer Principal, canView bool) error {
	caller := string(env.Caller)
	err := l.db.Transaction(func(tx *db.DB) error {
		return tx.UpsertGrant(caller, string(viewer), canView, env.Height)
	})
	if err != nil {
		return err
	}

	action := "revoke"
	if canView {
		action = "grant"
	}
	l.log.Printf("height=%d %s-access principal=%s viewer=%s\n", env.Height, action, caller, viewer)
	return nil
}

// SetGoal opens a goal on one of the caller's skills and returns its ID.
// The target date must lie strictly after the current height and no later
// than db.MaxKey.
func (l *Ledger) SetGoal(env Env, skillID uint64, in NewGoal) (uint64, error) {
	caller := string(env.Caller)
	var goalID uint64

	err := l.db.Transaction(func(tx *db.DB) error {
		skill, err := tx.GetSkill(caller, skillID)
		if err != nil {
			return err
		}
		if skill == nil {
			return newError(KindNotFound, "skill %d not found", skillID)
		}
		if !models.ValidProficiency(in.TargetProficiency) {
			return newError(KindInvalidProficiency, "target proficiency %d is outside [%d,%d]", in.TargetProficiency, models.MinProficiency, models.MaxProficiency)
		}
		if in.TargetDate <= env.Height {
			return newError(KindInvalidInput, "target date %d must be after current height %d", in.TargetDate, env.Height)
		}
		if in.TargetDate > db.MaxKey {
			return newError(KindInvalidInput, "target date %d exceeds the largest height %d", in.TargetDate, uint64(db.MaxKey))
		}

		goalID, err = tx.NextID(caller, skillID, models.CounterGoal)
		if err != nil {
			return err
		}
		return tx.CreateGoal(&models.Goal{
			Owner:             caller,
			SkillID:           skillID,
			GoalID:            goalID,
			TargetProficiency: in.TargetProficiency,
			TargetDate:        in.TargetDate,
			Description:       in.Description,
			CreatedAt:         env.Height,
		})
	})
	if err != nil {
		return 0, err
	}

	l.log.Printf("height=%d set-goal principal=%s skill=%d goal=%d target=%d by=%d\n",
		env.Height, caller, skillID, goalID, in.TargetProficiency, in.TargetDate)
	return goalID, nil
}

// CompleteGoal marks an open goal as completed at the current height.
// Completion is self-reported: the skill's proficiency is not compared with
// the target. Completing a goal twice fails with KindInvalidInput.
func (l *Ledger) CompleteGoal(env Env, skillID, goalID uint64) error {
	caller := string(env.Caller)

	err := l.db.Transaction(func(tx *db.DB) error {
		goal, err := tx.GetGoal(caller, skillID, goalID)
		if err != nil {
			return err
		}
		if goal == nil {
			return newError(KindNotFound, "goal %d on skill %d not found", goalID, skillID)
		}
		if goal.Completed {
			return newError(KindInvalidInput, "goal %d was already completed at height %d", goalID, goal.CompletedAt)
		}

		ok, err := tx.MarkGoalCompleted(caller, skillID, goalID, env.Height)
		if err != nil {
			return err
		}
		if !ok {
			return newError(KindInvalidInput, "goal %d is no longer open", goalID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.log.Printf("height=%d complete-goal principal=%s skill=%d goal=%d\n", env.Height, caller, skillID, goalID)
	return nil
}
