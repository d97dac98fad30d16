// Package store persists plans, activities and settings behind a
// dual-backend strategy: a structured SQLite store opened once at
// startup, with a flat-key file store as the permanent fallback for
// the session when SQLite cannot be opened.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weekendly/internal/activity"
	"weekendly/internal/logger"
)

// Domain errors.
var (
	ErrPlanNotFound = errors.New("plan not found")
)

// Mode identifies which backend the store selected at startup.
type Mode string

const (
	// ModeStructured means the SQLite backend is active.
	ModeStructured Mode = "structured"
	// ModeFlatKey means the flat-key file fallback is active for the
	// rest of the session (degraded).
	ModeFlatKey Mode = "flatkey"
)

// backend is the two-variant storage dispatch. Exactly one
// implementation is selected at Open and held for the service
// lifetime; writes never target both.
type backend interface {
	savePlan(ctx context.Context, p *activity.Plan) error
	// updatePlan writes the full merged record. activitiesChanged
	// signals that the secondary activity index must be replaced.
	updatePlan(ctx context.Context, p *activity.Plan, activitiesChanged bool) error
	getPlan(ctx context.Context, id string) (*activity.Plan, error)
	getAllPlans(ctx context.Context) ([]*activity.Plan, error)
	deletePlan(ctx context.Context, id string) error

	getSetting(ctx context.Context, key string) (json.RawMessage, error)
	setSetting(ctx context.Context, key string, value json.RawMessage) error
	deleteSetting(ctx context.Context, key string) error

	getSync(ctx context.Context, key string) (string, error)
	setSync(ctx context.Context, key, value string) error

	counts(ctx context.Context) (plans, activities, settings int, err error)
	close() error
}

// Store is the persistence service. It is constructed explicitly and
// passed to consumers; there is no package-level instance.
type Store struct {
	backend backend
	mode    Mode
	log     *logger.Logger
	now     func() time.Time
}

// Open selects the backend for this session: the structured SQLite
// store if it can be opened, otherwise the flat-key fallback,
// permanently (no retry, no mid-session switching, no migration
// between the two). The fallback decision is logged, not surfaced.
func Open(ctx context.Context, dbPath, fallbackDir string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	s := &Store{log: log, now: time.Now}

	sb, err := openSQLite(ctx, dbPath)
	if err == nil {
		s.backend = sb
		s.mode = ModeStructured
		log.Debug("structured backend ready", zap.String("path", dbPath))
		return s, nil
	}
	log.Warn("structured backend unavailable, using flat-key fallback for this session",
		zap.String("path", dbPath), zap.Error(err))

	fb, err := openFlatKV(fallbackDir)
	if err != nil {
		return nil, fmt.Errorf("opening flat-key fallback: %w", err)
	}
	s.backend = fb
	s.mode = ModeFlatKey
	return s, nil
}

// Mode reports which backend is active: structured (ready) or
// flat-key (degraded).
func (s *Store) Mode() Mode {
	return s.mode
}

// Close releases backend resources.
func (s *Store) Close() error {
	return s.backend.close()
}

// NewID mints an opaque record id: millisecond timestamp plus a random
// suffix. Collisions are treated as negligible and not checked.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// PlanDraft carries the caller-supplied fields of a new plan.
type PlanDraft struct {
	Theme      activity.Theme
	Activities []activity.Activity
	Tags       []string
	Notes      string
	Template   bool
}

// PlanPatch carries a partial plan update. Nil fields are untouched.
type PlanPatch struct {
	Theme      *activity.Theme
	Activities *[]activity.Activity
	Tags       *[]string
	Notes      *string
	Template   *bool
}

// SavePlan stores a new plan under a freshly minted id with
// createdAt=updatedAt=now and version 1, and returns the id. In the
// structured backend every activity is additionally written as a
// secondary record indexed by plan id; the flat backend embeds the
// activities in the plan blob.
func (s *Store) SavePlan(ctx context.Context, draft PlanDraft) (string, error) {
	if !draft.Theme.Valid() {
		return "", activity.ErrInvalidTheme
	}

	now := s.now()
	p := &activity.Plan{
		ID:         NewID(),
		Theme:      draft.Theme,
		Activities: draft.Activities,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
		Tags:       draft.Tags,
		Notes:      draft.Notes,
		Template:   draft.Template,
	}

	if err := s.backend.savePlan(ctx, p); err != nil {
		return "", fmt.Errorf("saving plan: %w", err)
	}
	s.log.Debug("plan saved", zap.String("id", p.ID), zap.String("theme", string(p.Theme)))
	return p.ID, nil
}

// UpdatePlan merges the patch over the stored record, refreshes
// updatedAt and increments the version by exactly 1. The version is
// advisory: a stale-version write is not rejected. Fails with
// ErrPlanNotFound before any mutation when the id is absent.
func (s *Store) UpdatePlan(ctx context.Context, id string, patch PlanPatch) error {
	p, err := s.backend.getPlan(ctx, id)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}

	if patch.Theme != nil {
		if !patch.Theme.Valid() {
			return activity.ErrInvalidTheme
		}
		p.Theme = *patch.Theme
	}
	activitiesChanged := patch.Activities != nil
	if activitiesChanged {
		p.Activities = *patch.Activities
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.Template != nil {
		p.Template = *patch.Template
	}

	p.UpdatedAt = s.now()
	p.Version++

	if err := s.backend.updatePlan(ctx, p, activitiesChanged); err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	s.log.Debug("plan updated", zap.String("id", id), zap.Int("version", p.Version))
	return nil
}

// GetPlan returns the plan with the given id, or nil if absent.
func (s *Store) GetPlan(ctx context.Context, id string) (*activity.Plan, error) {
	return s.backend.getPlan(ctx, id)
}

// GetAllPlans returns every stored plan ordered by creation time.
func (s *Store) GetAllPlans(ctx context.Context) ([]*activity.Plan, error) {
	return s.backend.getAllPlans(ctx)
}

// DeletePlan removes a plan. The structured backend cascades the
// secondary activity records; the flat backend deletes the blob key.
// Deleting an absent id is a no-op.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	return s.backend.deletePlan(ctx, id)
}

// GetThemePlan returns the first non-template plan with the given
// theme, for the legacy single-plan-per-theme path. Returns nil when
// no such plan exists.
func (s *Store) GetThemePlan(ctx context.Context, theme activity.Theme) (*activity.Plan, error) {
	plans, err := s.backend.getAllPlans(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if !p.Template && p.Theme == theme {
			return p, nil
		}
	}
	return nil, nil
}

// GetSetting returns the raw value for a settings key, or nil if
// unset. Settings are an unversioned flat key-value namespace.
func (s *Store) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	return s.backend.getSetting(ctx, key)
}

// SetSetting stores a settings value.
func (s *Store) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	return s.backend.setSetting(ctx, key, value)
}

// DeleteSetting removes a settings key; absent keys are a no-op.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	return s.backend.deleteSetting(ctx, key)
}

// GetSyncMeta returns a sync-metadata value ("" if unset). The sync
// namespace records local bookkeeping such as export timestamps; no
// network synchronization happens here.
func (s *Store) GetSyncMeta(ctx context.Context, key string) (string, error) {
	return s.backend.getSync(ctx, key)
}

// SetSyncMeta stores a sync-metadata value.
func (s *Store) SetSyncMeta(ctx context.Context, key, value string) error {
	return s.backend.setSync(ctx, key, value)
}

// Stats reports record counts for both backends symmetrically. True
// byte usage is never reported; Bytes stays at the -1 sentinel.
type Stats struct {
	Mode       Mode  `json:"mode"`
	Plans      int   `json:"plans"`
	Activities int   `json:"activities"`
	Settings   int   `json:"settings"`
	Bytes      int64 `json:"bytes"`
}

// GetStats returns record counts for the active backend.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	plans, acts, settings, err := s.backend.counts(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Mode:       s.mode,
		Plans:      plans,
		Activities: acts,
		Settings:   settings,
		Bytes:      -1,
	}, nil
}
