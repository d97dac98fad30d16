package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"weekendly/internal/activity"
)

func sampleActivities() []activity.Activity {
	return []activity.Activity{
		{
			ID:              "a1",
			Title:           "Hike",
			Category:        activity.CategoryOutdoor,
			Day:             activity.Saturday,
			StartMinutes:    600,
			DurationMinutes: 90,
			Mood:            activity.MoodEnergetic,
			Notes:           "bring water",
		},
		{
			ID:              "a2",
			Title:           "Brunch, then market",
			Category:        activity.CategoryFood,
			Day:             activity.Sunday,
			StartMinutes:    660,
			DurationMinutes: 60,
		},
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	frag, err := EncodeFragment(activity.ThemeAdventurous, sampleActivities())
	if err != nil {
		t.Fatalf("EncodeFragment() unexpected error: %v", err)
	}
	if !strings.HasPrefix(frag, "#") {
		t.Errorf("fragment %q does not start with #", frag)
	}

	theme, as, err := DecodeFragment(frag)
	if err != nil {
		t.Fatalf("DecodeFragment() unexpected error: %v", err)
	}
	if theme != activity.ThemeAdventurous {
		t.Errorf("theme = %s, want adventurous", theme)
	}
	if len(as) != 2 {
		t.Fatalf("decoded %d activities, want 2", len(as))
	}
	if as[0].Title != "Hike" || as[0].StartMinutes != 600 || as[0].Mood != activity.MoodEnergetic {
		t.Errorf("first activity = %+v", as[0])
	}
	if as[1].Title != "Brunch, then market" || as[1].Day != activity.Sunday {
		t.Errorf("second activity = %+v", as[1])
	}
	// Ids never travel through a share link.
	for _, a := range as {
		if a.ID != "" {
			t.Errorf("activity %q carried id %q through the fragment", a.Title, a.ID)
		}
	}
}

func TestFragmentEmptyPlan(t *testing.T) {
	frag, err := EncodeFragment(activity.ThemeLazy, nil)
	if err != nil {
		t.Fatal(err)
	}
	theme, as, err := DecodeFragment(frag)
	if err != nil {
		t.Fatalf("DecodeFragment() unexpected error: %v", err)
	}
	if theme != activity.ThemeLazy || len(as) != 0 {
		t.Errorf("decoded theme=%s activities=%d", theme, len(as))
	}
}

// encodeRaw builds a fragment the same way EncodeFragment does, from
// an arbitrary payload, so tests can smuggle broken content through.
func encodeRaw(t *testing.T, payload Payload) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return "#" + base64.URLEncoding.EncodeToString([]byte(url.QueryEscape(string(data))))
}

func TestDecodeFragmentRejects(t *testing.T) {
	bogusTheme := encodeRaw(t, Payload{Theme: "extreme"})
	brokenStart := encodeRaw(t, Payload{
		Theme: "lazy",
		Activities: []activity.Wire{
			{Title: "Walk", Category: "outdoor", Day: "saturday", Start: "10:00", DurationMinutes: 30},
			{Title: "Nap", Category: "home", Day: "saturday", Start: "25:99", DurationMinutes: 30},
		},
	})

	tests := []struct {
		name string
		frag string
	}{
		{name: "empty", frag: ""},
		{name: "bare hash", frag: "#"},
		{name: "not base64", frag: "#!!!not-base64!!!"},
		{name: "base64 of junk", frag: "#aGVsbG8gd29ybGQ="},
		{name: "unknown theme", frag: bogusTheme},
		{name: "one bad activity rejects all", frag: brokenStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeFragment(tt.frag)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("DecodeFragment(%q) = %v, want ErrInvalidPayload", tt.frag, err)
			}
		})
	}
}

func TestUpcomingWeekend(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		sat  string
		sun  string
	}{
		{
			name: "monday maps to coming weekend",
			now:  time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC),
			sat:  "2026-08-22", sun: "2026-08-23",
		},
		{
			name: "friday maps to tomorrow",
			now:  time.Date(2026, 8, 21, 23, 0, 0, 0, time.UTC),
			sat:  "2026-08-22", sun: "2026-08-23",
		},
		{
			name: "saturday keeps current weekend",
			now:  time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
			sat:  "2026-08-22", sun: "2026-08-23",
		},
		{
			name: "sunday rolls to next weekend",
			now:  time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
			sat:  "2026-08-29", sun: "2026-08-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sat, sun := UpcomingWeekend(tt.now)
			if got := sat.Format("2006-01-02"); got != tt.sat {
				t.Errorf("saturday = %s, want %s", got, tt.sat)
			}
			if got := sun.Format("2006-01-02"); got != tt.sun {
				t.Errorf("sunday = %s, want %s", got, tt.sun)
			}
			if sat.Hour() != 0 || sat.Location() != time.UTC {
				t.Errorf("saturday not at UTC midnight: %v", sat)
			}
		})
	}
}

func TestBuildICS(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC) // Monday
	out := BuildICS(sampleActivities(), now)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatal("output is not a calendar")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("calendar has %d events, want 2", got)
	}

	// Saturday activity at 10:00 for 90 minutes, in UTC.
	if !strings.Contains(out, "DTSTART:20260822T100000Z") {
		t.Error("missing saturday start time")
	}
	if !strings.Contains(out, "DTEND:20260822T113000Z") {
		t.Error("missing saturday end time")
	}
	// Sunday activity lands on the next day.
	if !strings.Contains(out, "DTSTART:20260823T110000Z") {
		t.Error("missing sunday start time")
	}

	// UID carries the export epoch and the activity index.
	if !strings.Contains(out, "-0@weekendly") || !strings.Contains(out, "-1@weekendly") {
		t.Error("missing indexed UIDs")
	}

	// Comma in the title must be escaped per RFC 5545.
	if !strings.Contains(out, `Brunch\, then market`) {
		t.Error("summary comma not escaped")
	}
	if !strings.Contains(out, "CATEGORIES:outdoor") {
		t.Error("missing category property")
	}
	// Notes and mood share the description, newline-escaped.
	if !strings.Contains(out, `bring water\nMood: energetic`) {
		t.Error("description not composed from notes and mood")
	}
	// Serialize already escapes; escaping again would double up.
	if strings.Contains(out, `\\,`) || strings.Contains(out, `\\n`) {
		t.Error("text escaped twice")
	}
}

func TestBuildICSEmpty(t *testing.T) {
	out := BuildICS(nil, time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC))
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("empty plan produced events")
	}
	if !strings.Contains(out, "METHOD:PUBLISH") {
		t.Error("missing publish method")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := &activity.Plan{
		Theme:      activity.ThemeFamily,
		Activities: sampleActivities(),
		Tags:       []string{"picnic"},
		Notes:      "grandma visits",
	}
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

	data, err := ExportJSON(p, now)
	if err != nil {
		t.Fatalf("ExportJSON() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("export is not pretty-printed")
	}
	if strings.Contains(string(data), `"id"`) {
		t.Error("export leaked record ids")
	}

	file, as, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON() unexpected error: %v", err)
	}
	if file.Theme != "family" || file.Notes != "grandma visits" {
		t.Errorf("file = %+v", file)
	}
	if len(as) != 2 || as[0].Title != "Hike" {
		t.Errorf("activities = %+v", as)
	}
}

func TestImportJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{"},
		{name: "unknown theme", data: `{"theme":"extreme","activities":[]}`},
		{name: "bad activity", data: `{"theme":"lazy","activities":[{"title":"","category":"food","day":"saturday","start":"10:00","durationMinutes":30}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ImportJSON([]byte(tt.data)); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("ImportJSON() = %v, want ErrInvalidPayload", err)
			}
		})
	}
}
