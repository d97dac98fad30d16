package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"weekendly/internal/activity"
	"weekendly/internal/schedule"
	"weekendly/internal/timegrid"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testGrid() timegrid.Grid {
	return timegrid.Grid{DayStart: 8 * 60, DayEnd: 22 * 60, SlotSize: 30}
}

func testEngine(t *testing.T, as ...activity.Activity) *schedule.Engine {
	t.Helper()
	n := 0
	e := schedule.NewEngine(testGrid(), nil, nil, func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	e.Load(as)
	return e
}

func testModel(t *testing.T, as ...activity.Activity) Model {
	t.Helper()
	m := NewModel(Options{Engine: testEngine(t, as...), Theme: activity.ThemeLazy})
	m.width = 80
	m.height = 30
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestCursorNavigation(t *testing.T) {
	m := testModel(t)

	m = press(m, "j", "j", "l")
	if m.cursorSlot != 2 || m.cursorDay != 1 {
		t.Errorf("cursor = day %d slot %d, want day 1 slot 2", m.cursorDay, m.cursorSlot)
	}

	m = press(m, "k", "k", "k", "h")
	if m.cursorSlot != 0 || m.cursorDay != 0 {
		t.Errorf("cursor should clamp at day 0 slot 0, got day %d slot %d", m.cursorDay, m.cursorSlot)
	}

	m = press(m, "G")
	if want := m.grid.SlotCount() - 1; m.cursorSlot != want {
		t.Errorf("G moved cursor to slot %d, want %d", m.cursorSlot, want)
	}
	m = press(m, "g")
	if m.cursorSlot != 0 {
		t.Errorf("g moved cursor to slot %d, want 0", m.cursorSlot)
	}
}

func TestSuggestJumpsCursor(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 90,
	})

	m = press(m, "s")
	// Latest end is 11:30, already on a 30-minute boundary.
	if want := m.grid.MinutesToSlot(690); m.cursorSlot != want {
		t.Errorf("cursorSlot = %d, want %d", m.cursorSlot, want)
	}
}

func TestMoveCommit(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 60,
	})
	m.cursorSlot = m.grid.MinutesToSlot(600)

	m = press(m, "m")
	if m.mode != ModeMove || m.moveID != "a1" {
		t.Fatalf("mode = %v moveID = %q, want ModeMove a1", m.mode, m.moveID)
	}

	m = press(m, "l", "j", "j", "enter")
	if m.mode != ModeNormal {
		t.Fatalf("move did not commit: mode = %v status = %q", m.mode, m.statusMsg)
	}

	got, err := m.engine.Get("a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Day != activity.Sunday || got.StartMinutes != 660 {
		t.Errorf("moved to %s %d, want sunday 660", got.Day, got.StartMinutes)
	}
}

func TestMoveConflictStaysInMode(t *testing.T) {
	m := testModel(t,
		activity.Activity{
			ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
			Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 60,
		},
		activity.Activity{
			ID: "a2", Title: "Lunch", Category: activity.CategoryFood,
			Day: activity.Saturday, StartMinutes: 720, DurationMinutes: 60,
		},
	)
	m.cursorSlot = m.grid.MinutesToSlot(600)

	m = press(m, "m")
	m.moveStart = 720
	m = press(m, "enter")

	if m.mode != ModeMove {
		t.Errorf("conflict should keep move mode, got %v", m.mode)
	}
	if !strings.Contains(m.statusMsg, "conflicts") {
		t.Errorf("statusMsg = %q, want conflict message", m.statusMsg)
	}

	m = press(m, "esc")
	if m.mode != ModeNormal || m.moveID != "" {
		t.Errorf("esc should cancel move, mode = %v moveID = %q", m.mode, m.moveID)
	}
	got, _ := m.engine.Get("a1")
	if got.StartMinutes != 600 {
		t.Errorf("cancelled move changed start to %d", got.StartMinutes)
	}
}

func TestDeleteConfirm(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 60,
	})
	m.cursorSlot = m.grid.MinutesToSlot(600)

	m = press(m, "x")
	if m.mode != ModeConfirm || m.confirmID != "a1" {
		t.Fatalf("mode = %v confirmID = %q, want ModeConfirm a1", m.mode, m.confirmID)
	}

	m = press(m, "n")
	if m.mode != ModeNormal || len(m.engine.Activities()) != 1 {
		t.Fatal("declining should keep the activity")
	}

	m = press(m, "x", "y")
	if len(m.engine.Activities()) != 0 {
		t.Error("confirming should remove the activity")
	}
	if !strings.Contains(m.statusMsg, "Removed") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestFormAddsActivity(t *testing.T) {
	m := testModel(t)
	m.cursorSlot = m.grid.MinutesToSlot(600)

	m = press(m, "enter")
	if m.mode != ModeForm {
		t.Fatalf("mode = %v, want ModeForm", m.mode)
	}

	for _, r := range "Brunch" {
		m = press(m, string(r))
	}
	m = press(m, "tab", "right") // category: outdoor -> food
	m = press(m, "enter")

	if m.mode != ModeNormal {
		t.Fatalf("form did not submit: status = %q", m.statusMsg)
	}
	as := m.engine.Activities()
	if len(as) != 1 {
		t.Fatalf("got %d activities, want 1", len(as))
	}
	a := as[0]
	if a.Title != "Brunch" || a.Category != activity.CategoryFood {
		t.Errorf("activity = %+v", a)
	}
	if a.Day != activity.Saturday || a.StartMinutes != 600 || a.DurationMinutes != 60 {
		t.Errorf("placement = %s %d/%d, want saturday 600/60", a.Day, a.StartMinutes, a.DurationMinutes)
	}
}

func TestFormRejectsEmptyTitle(t *testing.T) {
	m := testModel(t)

	m = press(m, "enter", "enter")
	if m.mode != ModeForm {
		t.Errorf("empty title should keep the form open, mode = %v", m.mode)
	}
	if m.statusMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestEnterOnActivityOpensEdit(t *testing.T) {
	m := testModel(t, activity.Activity{
		ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
		Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 90,
		Mood: activity.MoodEnergetic, Notes: "bring water",
	})
	m.cursorSlot = m.grid.MinutesToSlot(630) // middle slot of the block

	m = press(m, "enter")
	if m.mode != ModeForm || m.form.editingID != "a1" {
		t.Fatalf("mode = %v editingID = %q", m.mode, m.form.editingID)
	}
	if m.form.title.Value() != "Hike" || m.form.notes.Value() != "bring water" {
		t.Errorf("prefill = %q / %q", m.form.title.Value(), m.form.notes.Value())
	}

	m = press(m, "enter")
	if m.mode != ModeNormal {
		t.Fatalf("edit did not submit: status = %q", m.statusMsg)
	}
	got, _ := m.engine.Get("a1")
	if got.Title != "Hike" || got.Mood != activity.MoodEnergetic {
		t.Errorf("round-trip edit changed fields: %+v", got)
	}
}

func TestListSelection(t *testing.T) {
	m := testModel(t,
		activity.Activity{
			ID: "a1", Title: "Hike", Category: activity.CategoryOutdoor,
			Day: activity.Sunday, StartMinutes: 600, DurationMinutes: 60,
		},
		activity.Activity{
			ID: "a2", Title: "Lunch", Category: activity.CategoryFood,
			Day: activity.Saturday, StartMinutes: 720, DurationMinutes: 60,
		},
	)

	m = press(m, "tab")
	if m.mode != ModeList {
		t.Fatalf("mode = %v, want ModeList", m.mode)
	}

	// Saturday sorts first, so index 1 is the Sunday hike.
	m = press(m, "j", "enter")
	if m.mode != ModeNormal {
		t.Fatal("enter should jump back to the grid")
	}
	if m.cursorDay != 1 || m.cursorSlot != m.grid.MinutesToSlot(600) {
		t.Errorf("cursor = day %d slot %d", m.cursorDay, m.cursorSlot)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := testModel(t)
	m.height = chromeRows + 5 // five visible rows

	m = press(m, "G")
	if want := m.grid.SlotCount() - 5; m.scroll != want {
		t.Errorf("scroll = %d, want %d", m.scroll, want)
	}
	m = press(m, "g")
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0", m.scroll)
	}
}

func TestMouseClickMovesCursor(t *testing.T) {
	m := testModel(t)
	m.height = chromeRows + m.grid.SlotCount() // full window visible

	next, _ := m.Update(tea.MouseMsg{
		Type: tea.MouseLeft,
		X:    timeColWidth + m.dayColWidth() + 2,
		Y:    gridTopRow + 4,
	})
	m = next.(Model)

	if m.cursorDay != 1 {
		t.Errorf("cursorDay = %d, want 1", m.cursorDay)
	}
	want := m.grid.MinutesToSlot(m.grid.PositionFromPointer(4, float64(m.grid.SlotCount())))
	if m.cursorSlot != want {
		t.Errorf("cursorSlot = %d, want %d", m.cursorSlot, want)
	}
}
