package tui

import (
	"strings"
	"testing"

	"weekendly/internal/activity"
	"weekendly/internal/viewport"
)

func TestViewGridShowsActivities(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Morning hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 90,
	})

	out := m.View()
	if !strings.Contains(out, "Saturday") || !strings.Contains(out, "Sunday") {
		t.Error("missing day headers")
	}
	if !strings.Contains(out, "Morning hike (90m)") {
		t.Errorf("missing activity row:\n%s", out)
	}
	if !strings.Contains(out, "10:00") {
		t.Error("missing time labels")
	}
	if !strings.Contains(out, "q quit") {
		t.Error("missing key hints")
	}
}

func TestViewGridScrolls(t *testing.T) {
	m := testModel(t)
	m.height = chromeRows + 4
	m.scroll = 8 // first visible slot is 12:00 on the 30-minute grid

	out := m.View()
	if strings.Contains(out, "08:00") {
		t.Error("scrolled view should not show the first slot")
	}
	if !strings.Contains(out, "12:00") {
		t.Errorf("scrolled view should start at 12:00:\n%s", out)
	}
}

func TestViewMoveFooter(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 60,
	})
	m.cursorSlot = m.grid.MinutesToSlot(600)
	m = press(m, "m", "j")

	out := m.View()
	if !strings.Contains(out, "moving to saturday 10:30") {
		t.Errorf("missing move footer:\n%s", out)
	}
	if !strings.Contains(out, "◆ Hike") {
		t.Errorf("missing tentative placement marker:\n%s", out)
	}
}

func TestViewConfirmPrompt(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 60,
	})
	m.cursorSlot = m.grid.MinutesToSlot(600)
	m = press(m, "x")

	if out := m.View(); !strings.Contains(out, `Delete "Hike"? (y/n)`) {
		t.Errorf("missing confirm prompt:\n%s", out)
	}
}

func TestViewForm(t *testing.T) {
	m := testModel(t)
	m = press(m, "enter")

	out := m.View()
	for _, want := range []string{"Add activity", "Title", "Category", "Duration", "Mood", "Notes", "60 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("form view missing %q:\n%s", want, out)
		}
	}
}

func TestViewList(t *testing.T) {
	m := testModel(t,
		activity.Activity{
			ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
			Day: activity.Sunday, StartMinutes: 600, DurationMinutes: 60,
		},
		activity.Activity{
			ID: "a2", Title: "Lunch", Category: activity.CategoryFood,
			Day: activity.Saturday, StartMinutes: 720, DurationMinutes: 60,
			Mood: activity.MoodSocial, Notes: "book a table",
		},
	)
	m = press(m, "tab")

	out := m.View()
	if !strings.Contains(out, "2 activities") {
		t.Error("missing count in header")
	}
	// Saturday sorts before Sunday regardless of insertion order.
	if sat, sun := strings.Index(out, "Lunch"), strings.Index(out, "Hike"); sat < 0 || sun < 0 || sat > sun {
		t.Errorf("list order wrong (Lunch at %d, Hike at %d):\n%s", sat, sun, out)
	}
	if !strings.Contains(out, "12:00-13:00") {
		t.Error("missing time range")
	}
	if !strings.Contains(out, "social") || !strings.Contains(out, "book a table") {
		t.Error("missing detail line")
	}
}

// The windowing offsets are only true if every row renders exactly as
// many lines as the sizer claims for it.
func TestListRowHeightMatchesSizer(t *testing.T) {
	m := testModel(t)

	rows := []activity.Activity{
		{
			Title: "Walk", Category: activity.CategoryOutdoor,
			Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 30,
		},
		{
			Title: "Hike", Category: activity.CategoryOutdoor,
			Day: activity.Saturday, StartMinutes: 660, DurationMinutes: 90,
			Mood: activity.MoodEnergetic,
		},
		{
			Title: "Museum", Category: activity.CategoryCulture,
			Day: activity.Sunday, StartMinutes: 840, DurationMinutes: 180,
		},
		{
			Title: "Roadtrip", Category: activity.CategoryOutdoor,
			Day: activity.Sunday, StartMinutes: 540, DurationMinutes: 240,
			Mood:  activity.MoodChill,
			Notes: strings.Repeat("pack snacks and a map, ", 3),
		},
	}

	for _, a := range rows {
		got := strings.Count(m.renderListRow(a, false), "\n")
		if want := viewport.ActivityHeight(a); got != want {
			t.Errorf("%s renders %d lines, sizer claims %d", a.Title, got, want)
		}
	}
}

func TestViewListEmpty(t *testing.T) {
	m := testModel(t)
	m = press(m, "tab")

	if out := m.View(); !strings.Contains(out, "Nothing planned yet") {
		t.Errorf("missing empty state:\n%s", out)
	}
}

func TestViewListWindowsLargeSets(t *testing.T) {
	var as []activity.Activity
	for i := 0; i < 20; i++ {
		day := activity.Saturday
		start := 8*60 + i*30
		if i >= 10 {
			day = activity.Sunday
			start = 8*60 + (i-10)*30
		}
		as = append(as, activity.Activity{
			ID: string(rune('a' + i)), Title: title(i), Category: activity.CategoryOther,
			Day: day, StartMinutes: start, DurationMinutes: 30,
		})
	}

	m := testModel(t, as...)
	m.height = chromeRows + 8
	m = press(m, "tab")

	out := m.View()
	if !strings.Contains(out, "item-00") {
		t.Error("first item should be visible")
	}
	if strings.Contains(out, "item-19") {
		t.Error("last item should be windowed out")
	}
}

func title(i int) string {
	return "item-" + string([]byte{'0' + byte(i/10), '0' + byte(i%10)})
}
