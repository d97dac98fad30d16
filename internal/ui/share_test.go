package ui

import (
	"os"
	"path/filepath"
	"testing"

	"weekendly/internal/activity"
	"weekendly/internal/share"
)

func TestImportPayloadFragment(t *testing.T) {
	frag, err := share.EncodeFragment(activity.ThemeLazy, []activity.Activity{
		{Title: "Walk", Category: activity.CategoryOutdoor, Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 30},
	})
	if err != nil {
		t.Fatal(err)
	}

	theme, as, err := importPayload(frag)
	if err != nil {
		t.Fatalf("importPayload() unexpected error: %v", err)
	}
	if theme != activity.ThemeLazy || len(as) != 1 || as[0].Title != "Walk" {
		t.Errorf("importPayload() = %s, %+v", theme, as)
	}
}

func TestImportPayloadFile(t *testing.T) {
	p := &activity.Plan{
		Theme: activity.ThemeFamily,
		Activities: []activity.Activity{
			{Title: "Picnic", Category: activity.CategoryFood, Day: activity.Sunday, StartMinutes: 720, DurationMinutes: 120},
		},
	}
	data, err := share.ExportJSON(p, p.CreatedAt)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	theme, as, err := importPayload(path)
	if err != nil {
		t.Fatalf("importPayload() unexpected error: %v", err)
	}
	if theme != activity.ThemeFamily || len(as) != 1 || as[0].Day != activity.Sunday {
		t.Errorf("importPayload() = %s, %+v", theme, as)
	}
}

func TestImportPayloadErrors(t *testing.T) {
	if _, _, err := importPayload("#not-a-fragment"); err == nil {
		t.Error("expected error for broken fragment")
	}
	if _, _, err := importPayload(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
