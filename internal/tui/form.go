package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"weekendly/internal/activity"
	"weekendly/internal/schedule"
)

// Form field focus order.
const (
	focusTitle = iota
	focusCategory
	focusDuration
	focusMood
	focusNotes
	focusCount
)

var durationOptions = []int{30, 45, 60, 90, 120, 180}

var categoryOptions = []activity.Category{
	activity.CategoryOutdoor,
	activity.CategoryFood,
	activity.CategoryFitness,
	activity.CategoryCulture,
	activity.CategoryHome,
	activity.CategoryOther,
}

// moodOptions[0] is "no mood".
var moodOptions = []activity.Mood{
	"",
	activity.MoodChill,
	activity.MoodEnergetic,
	activity.MoodSocial,
	activity.MoodFocus,
}

// formState is the add/edit form. An empty editingID means the form
// creates a new activity at the captured day and start.
type formState struct {
	editingID string
	day       activity.Day
	start     int

	title    textinput.Model
	notes    textinput.Model
	category int
	duration int
	mood     int
	focus    int
}

func newFormState() formState {
	title := textinput.New()
	title.Placeholder = "What are you doing?"
	title.CharLimit = 80

	notes := textinput.New()
	notes.Placeholder = "Notes (optional)"
	notes.CharLimit = 200

	return formState{title: title, notes: notes}
}

// openAddForm prepares the form for a new activity at the cursor slot.
func (m *Model) openAddForm() tea.Cmd {
	m.form = newFormState()
	m.form.day = dayAt(m.cursorDay)
	m.form.start = m.grid.SlotToMinutes(m.cursorSlot)
	m.form.duration = indexOfDuration(60)
	m.form.title.Focus()
	m.mode = ModeForm
	return textinput.Blink
}

// openEditForm prefills the form from an existing activity.
func (m *Model) openEditForm(a activity.Activity) tea.Cmd {
	m.form = newFormState()
	m.form.editingID = a.ID
	m.form.day = a.Day
	m.form.start = a.StartMinutes
	m.form.title.SetValue(a.Title)
	m.form.notes.SetValue(a.Notes)
	m.form.category = indexOfCategory(a.Category)
	m.form.duration = indexOfDuration(a.DurationMinutes)
	m.form.mood = indexOfMood(a.Mood)
	m.form.title.Focus()
	m.mode = ModeForm
	return textinput.Blink
}

// handleFormKeys handles keys while the form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.statusMsg = ""
		return m, nil

	case "tab", "down":
		m.setFormFocus((m.form.focus + 1) % focusCount)
		return m, nil

	case "shift+tab", "up":
		m.setFormFocus((m.form.focus + focusCount - 1) % focusCount)
		return m, nil

	case "enter":
		return m.submitForm()

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.form.focus {
		case focusCategory:
			m.form.category = cycle(m.form.category, delta, len(categoryOptions))
			return m, nil
		case focusDuration:
			m.form.duration = cycle(m.form.duration, delta, len(durationOptions))
			return m, nil
		case focusMood:
			m.form.mood = cycle(m.form.mood, delta, len(moodOptions))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case focusTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case focusNotes:
		m.form.notes, cmd = m.form.notes.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFormFocus(focus int) {
	m.form.focus = focus
	m.form.title.Blur()
	m.form.notes.Blur()
	switch focus {
	case focusTitle:
		m.form.title.Focus()
	case focusNotes:
		m.form.notes.Focus()
	}
}

// submitForm commits the form through the engine. Validation and
// conflict errors keep the form open with the message in the footer.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if m.form.editingID == "" {
		placed, err := m.engine.Insert(ctx, m.form.day, m.form.start, activity.Draft{
			Title:           m.form.title.Value(),
			Category:        categoryOptions[m.form.category],
			DurationMinutes: durationOptions[m.form.duration],
			Mood:            moodOptions[m.form.mood],
			Notes:           m.form.notes.Value(),
		})
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.statusMsg = fmt.Sprintf("Placed %q", placed.Title)
		m.cursorDay = dayIndex(placed.Day)
		m.cursorSlot = m.grid.MinutesToSlot(placed.StartMinutes)
		m.ensureCursorVisible()
		return m, nil
	}

	title := m.form.title.Value()
	notes := m.form.notes.Value()
	category := categoryOptions[m.form.category]
	duration := durationOptions[m.form.duration]
	mood := moodOptions[m.form.mood]

	edited, err := m.engine.Edit(ctx, m.form.editingID, schedule.Patch{
		Title:           &title,
		Category:        &category,
		DurationMinutes: &duration,
		Mood:            &mood,
		Notes:           &notes,
	})
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	m.mode = ModeNormal
	m.statusMsg = fmt.Sprintf("Updated %q", edited.Title)
	return m, nil
}

func cycle(current, delta, n int) int {
	return (current + delta + n) % n
}

func indexOfDuration(minutes int) int {
	for i, d := range durationOptions {
		if d >= minutes {
			return i
		}
	}
	return len(durationOptions) - 1
}

func indexOfCategory(c activity.Category) int {
	for i, opt := range categoryOptions {
		if opt == c {
			return i
		}
	}
	return len(categoryOptions) - 1
}

func indexOfMood(mood activity.Mood) int {
	for i, opt := range moodOptions {
		if opt == mood {
			return i
		}
	}
	return 0
}
