package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weekendly/internal/activity"
)

// exportedSettings is the allow-list of settings keys included in a
// full export. Anything else in the settings namespace stays local.
var exportedSettings = []string{
	"theme",
	"firstRunDone",
	"density",
	"calendarName",
}

// Snapshot is the full-export payload: every plan plus the allow-listed
// settings. Record ids are deliberately absent; import mints fresh ones.
type Snapshot struct {
	ExportedAt time.Time                  `json:"exportedAt"`
	Plans      []PlanSnapshot             `json:"plans"`
	Settings   map[string]json.RawMessage `json:"settings,omitempty"`
}

// PlanSnapshot is one plan in a Snapshot, with activities in wire form.
type PlanSnapshot struct {
	Theme      string          `json:"theme"`
	Activities []activity.Wire `json:"activities"`
	CreatedAt  time.Time       `json:"createdAt"`
	Tags       []string        `json:"tags,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Template   bool            `json:"template,omitempty"`
}

// ExportAllData collects every plan and the allow-listed settings into
// a snapshot suitable for backup or transfer between installs.
func (s *Store) ExportAllData(ctx context.Context) (*Snapshot, error) {
	plans, err := s.backend.getAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting plans: %w", err)
	}

	snap := &Snapshot{ExportedAt: s.now().UTC()}
	for _, p := range plans {
		snap.Plans = append(snap.Plans, PlanSnapshot{
			Theme:      string(p.Theme),
			Activities: activity.EncodeAll(p.Activities),
			CreatedAt:  p.CreatedAt,
			Tags:       p.Tags,
			Notes:      p.Notes,
			Template:   p.Template,
		})
	}

	for _, key := range exportedSettings {
		value, err := s.backend.getSetting(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("exporting setting %s: %w", key, err)
		}
		if value == nil {
			continue
		}
		if snap.Settings == nil {
			snap.Settings = make(map[string]json.RawMessage)
		}
		snap.Settings[key] = value
	}

	if err := s.SetSyncMeta(ctx, "lastExportAt", snap.ExportedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportData writes a snapshot into the store. Every imported record
// gets a freshly minted id, so importing the same snapshot twice
// creates independent copies rather than overwriting. Settings outside
// the export allow-list are ignored.
func (s *Store) ImportData(ctx context.Context, snap *Snapshot) error {
	for i, ps := range snap.Plans {
		as, err := activity.DecodeAll(ps.Activities)
		if err != nil {
			return fmt.Errorf("plan %d: %w", i, err)
		}
		for j := range as {
			as[j].ID = NewID()
		}

		theme := activity.Theme(ps.Theme)
		if _, err := s.SavePlan(ctx, PlanDraft{
			Theme:      theme,
			Activities: as,
			Tags:       ps.Tags,
			Notes:      ps.Notes,
			Template:   ps.Template,
		}); err != nil {
			return fmt.Errorf("plan %d: %w", i, err)
		}
	}

	for key, value := range snap.Settings {
		if !settingAllowed(key) {
			s.log.Debug("skipping non-exported setting on import", zap.String("key", key))
			continue
		}
		if err := s.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("importing setting %s: %w", key, err)
		}
	}

	if err := s.SetSyncMeta(ctx, "lastImportAt", s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	s.log.Info("import complete", zap.Int("plans", len(snap.Plans)))
	return nil
}

func settingAllowed(key string) bool {
	for _, k := range exportedSettings {
		if k == key {
			return true
		}
	}
	return false
}
