package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"weekendly/internal/activity"
)

// flatKVBackend is the degraded fallback: one JSON file per key in a
// single directory. Plans are whole blobs under plan.<id>, settings
// live under settings.<key>, and a theme-scoped convenience pointer
// under plan.<theme> serves the legacy single-plan-per-theme path.
type flatKVBackend struct {
	dir string
}

func openFlatKV(dir string) (*flatKVBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &flatKVBackend{dir: dir}, nil
}

func (b *flatKVBackend) close() error {
	return nil
}

func (b *flatKVBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *flatKVBackend) read(key string, v any) (bool, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding key %s: %w", key, err)
	}
	return true, nil
}

func (b *flatKVBackend) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding key %s: %w", key, err)
	}
	if err := os.WriteFile(b.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

func (b *flatKVBackend) delete(key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// planRecord is the stored plan blob. Activities keep their ids here,
// unlike the share and export codecs.
type planRecord struct {
	ID         string           `json:"id"`
	Theme      string           `json:"theme"`
	Activities []activityRecord `json:"activities"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Version    int              `json:"version"`
	Tags       []string         `json:"tags"`
	Notes      string           `json:"notes,omitempty"`
	Template   bool             `json:"template,omitempty"`
}

type activityRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Day             string `json:"day"`
	StartMinutes    int    `json:"startMinutes"`
	DurationMinutes int    `json:"durationMinutes"`
	Mood            string `json:"mood,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// themePointer is the plan.<theme> convenience record.
type themePointer struct {
	PlanID string `json:"planId"`
}

func toPlanRecord(p *activity.Plan) planRecord {
	rec := planRecord{
		ID:        p.ID,
		Theme:     string(p.Theme),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
		Tags:      tagsOrEmpty(p.Tags),
		Notes:     p.Notes,
		Template:  p.Template,
	}
	for _, a := range p.Activities {
		rec.Activities = append(rec.Activities, activityRecord{
			ID:              a.ID,
			Title:           a.Title,
			Category:        string(a.Category),
			Day:             string(a.Day),
			StartMinutes:    a.StartMinutes,
			DurationMinutes: a.DurationMinutes,
			Mood:            string(a.Mood),
			Notes:           a.Notes,
		})
	}
	return rec
}

func fromPlanRecord(rec planRecord) *activity.Plan {
	p := &activity.Plan{
		ID:        rec.ID,
		Theme:     activity.Theme(rec.Theme),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Version:   rec.Version,
		Tags:      rec.Tags,
		Notes:     rec.Notes,
		Template:  rec.Template,
	}
	for _, a := range rec.Activities {
		p.Activities = append(p.Activities, activity.Activity{
			ID:              a.ID,
			Title:           a.Title,
			Category:        activity.Category(a.Category),
			Day:             activity.Day(a.Day),
			StartMinutes:    a.StartMinutes,
			DurationMinutes: a.DurationMinutes,
			Mood:            activity.Mood(a.Mood),
			Notes:           a.Notes,
		})
	}
	return p
}

func planKey(id string) string {
	return "plan." + id
}

func themeKey(theme string) string {
	return "plan." + theme
}

// isThemeKey reports whether a plan.* key is a theme pointer rather
// than a plan blob.
func isThemeKey(key string) bool {
	suffix := strings.TrimPrefix(key, "plan.")
	return activity.Theme(suffix).Valid()
}

func (b *flatKVBackend) savePlan(_ context.Context, p *activity.Plan) error {
	if err := b.write(planKey(p.ID), toPlanRecord(p)); err != nil {
		return err
	}
	return b.refreshThemePointer(p)
}

func (b *flatKVBackend) updatePlan(_ context.Context, p *activity.Plan, _ bool) error {
	// The blob already embeds the activities, so a changed activity
	// list is just a full rewrite like any other update.
	if err := b.write(planKey(p.ID), toPlanRecord(p)); err != nil {
		return err
	}
	return b.refreshThemePointer(p)
}

// refreshThemePointer points plan.<theme> at this plan unless another
// non-template plan already claimed the theme. Pointers left behind by
// a theme change (or a template flip) are retired first.
func (b *flatKVBackend) refreshThemePointer(p *activity.Plan) error {
	for _, theme := range []activity.Theme{activity.ThemeLazy, activity.ThemeAdventurous, activity.ThemeFamily} {
		if theme == p.Theme && !p.Template {
			continue
		}
		var stale themePointer
		found, err := b.read(themeKey(string(theme)), &stale)
		if err != nil {
			return err
		}
		if found && stale.PlanID == p.ID {
			if err := b.delete(themeKey(string(theme))); err != nil {
				return err
			}
		}
	}

	if p.Template {
		return nil
	}
	var ptr themePointer
	found, err := b.read(themeKey(string(p.Theme)), &ptr)
	if err != nil {
		return err
	}
	if found && ptr.PlanID != p.ID {
		return nil
	}
	return b.write(themeKey(string(p.Theme)), themePointer{PlanID: p.ID})
}

func (b *flatKVBackend) getPlan(_ context.Context, id string) (*activity.Plan, error) {
	var rec planRecord
	found, err := b.read(planKey(id), &rec)
	if err != nil || !found {
		return nil, err
	}
	return fromPlanRecord(rec), nil
}

func (b *flatKVBackend) getAllPlans(_ context.Context) ([]*activity.Plan, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}

	var plans []*activity.Plan
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "plan.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if isThemeKey(key) {
			continue
		}

		var rec planRecord
		found, err := b.read(key, &rec)
		if err != nil {
			return nil, err
		}
		if found {
			plans = append(plans, fromPlanRecord(rec))
		}
	}

	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID < plans[j].ID
	})
	return plans, nil
}

func (b *flatKVBackend) deletePlan(ctx context.Context, id string) error {
	p, err := b.getPlan(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	if err := b.delete(planKey(id)); err != nil {
		return err
	}

	// Drop the theme pointer only if it names the deleted plan.
	var ptr themePointer
	found, err := b.read(themeKey(string(p.Theme)), &ptr)
	if err != nil {
		return err
	}
	if found && ptr.PlanID == id {
		return b.delete(themeKey(string(p.Theme)))
	}
	return nil
}

func settingKey(key string) string {
	return "settings." + key
}

func (b *flatKVBackend) getSetting(_ context.Context, key string) (json.RawMessage, error) {
	var value json.RawMessage
	found, err := b.read(settingKey(key), &value)
	if err != nil || !found {
		return nil, err
	}
	return value, nil
}

func (b *flatKVBackend) setSetting(_ context.Context, key string, value json.RawMessage) error {
	return b.write(settingKey(key), value)
}

func (b *flatKVBackend) deleteSetting(_ context.Context, key string) error {
	return b.delete(settingKey(key))
}

func syncKey(key string) string {
	return "sync." + key
}

func (b *flatKVBackend) getSync(_ context.Context, key string) (string, error) {
	var value string
	if _, err := b.read(syncKey(key), &value); err != nil {
		return "", err
	}
	return value, nil
}

func (b *flatKVBackend) setSync(_ context.Context, key, value string) error {
	return b.write(syncKey(key), value)
}

func (b *flatKVBackend) counts(ctx context.Context) (plans, activities, settings int, err error) {
	all, err := b.getAllPlans(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, p := range all {
		activities += len(p.Activities)
	}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("listing store directory: %w", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "settings.") && strings.HasSuffix(e.Name(), ".json") {
			settings++
		}
	}
	return len(all), activities, settings, nil
}
