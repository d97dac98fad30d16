package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"weekendly/internal/activity"
	"weekendly/internal/logger"
)

// The flat backend keeps a plan.<theme> pointer for the legacy
// single-plan-per-theme path. It must not show up as a plan, and it
// must follow deletions of the plan it names.
func TestFlatThemePointer(t *testing.T) {
	dir := t.TempDir()
	b, err := openFlatKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	s := &Store{backend: b, mode: ModeFlatKey, log: logger.Nop(), now: time.Now}

	first, err := s.SavePlan(ctx, PlanDraft{Theme: activity.ThemeLazy})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "plan.lazy.json")); err != nil {
		t.Fatalf("theme pointer file missing: %v", err)
	}

	// A second lazy plan does not steal the pointer.
	second, err := s.SavePlan(ctx, PlanDraft{Theme: activity.ThemeLazy})
	if err != nil {
		t.Fatal(err)
	}
	var ptr themePointer
	if _, err := b.read("plan.lazy", &ptr); err != nil {
		t.Fatal(err)
	}
	if ptr.PlanID != first {
		t.Errorf("theme pointer = %s, want first plan %s", ptr.PlanID, first)
	}

	plans, err := s.GetAllPlans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Fatalf("GetAllPlans() = %d plans, theme pointer likely counted", len(plans))
	}

	// Deleting the pointed-at plan drops the pointer; deleting the
	// other plan leaves it alone.
	if err := s.DeletePlan(ctx, second); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.lazy.json")); err != nil {
		t.Errorf("pointer removed with unrelated plan: %v", err)
	}
	if err := s.DeletePlan(ctx, first); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.lazy.json")); !os.IsNotExist(err) {
		t.Error("pointer survived deletion of its plan")
	}
}

// Changing a plan's theme retargets the pointers: the new theme picks
// the plan up and the old theme's pointer stops naming it.
func TestFlatThemePointerFollowsThemeChange(t *testing.T) {
	dir := t.TempDir()
	b, err := openFlatKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	s := &Store{backend: b, mode: ModeFlatKey, log: logger.Nop(), now: time.Now}

	id, err := s.SavePlan(ctx, PlanDraft{Theme: activity.ThemeLazy})
	if err != nil {
		t.Fatal(err)
	}

	theme := activity.ThemeFamily
	if err := s.UpdatePlan(ctx, id, PlanPatch{Theme: &theme}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "plan.lazy.json")); !os.IsNotExist(err) {
		t.Error("old theme pointer survived the theme change")
	}
	var ptr themePointer
	found, err := b.read("plan.family", &ptr)
	if err != nil {
		t.Fatal(err)
	}
	if !found || ptr.PlanID != id {
		t.Errorf("family pointer = %+v (found=%v), want %s", ptr, found, id)
	}

	// A pointer claimed by another plan is left alone.
	other, err := s.SavePlan(ctx, PlanDraft{Theme: activity.ThemeLazy})
	if err != nil {
		t.Fatal(err)
	}
	back := activity.ThemeLazy
	if err := s.UpdatePlan(ctx, id, PlanPatch{Theme: &back}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.read("plan.lazy", &ptr); err != nil {
		t.Fatal(err)
	}
	if ptr.PlanID != other {
		t.Errorf("lazy pointer = %s, want holder %s kept", ptr.PlanID, other)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.family.json")); !os.IsNotExist(err) {
		t.Error("family pointer survived moving the plan back to lazy")
	}
}

// Templates never claim the theme pointer.
func TestFlatThemePointerSkipsTemplates(t *testing.T) {
	dir := t.TempDir()
	b, err := openFlatKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	s := &Store{backend: b, mode: ModeFlatKey, log: logger.Nop(), now: time.Now}

	if _, err := s.SavePlan(context.Background(), PlanDraft{Theme: activity.ThemeFamily, Template: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.family.json")); !os.IsNotExist(err) {
		t.Error("template plan claimed the theme pointer")
	}
}
