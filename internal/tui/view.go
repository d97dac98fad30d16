package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"weekendly/internal/activity"
	"weekendly/internal/timegrid"
	"weekendly/internal/viewport"
)

// gridTopRow is the screen row of the first slot row: title line plus
// day header line.
const gridTopRow = 2

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.mode {
	case ModeForm:
		return m.viewForm()
	case ModeList:
		return m.viewList()
	default:
		return m.viewGrid()
	}
}

func (m Model) dayColWidth() int {
	w := (m.width - timeColWidth) / 2
	if w < 10 {
		w = 10
	}
	return w
}

func timeLabel(minutes int) string {
	return timegrid.ToTimeText(minutes)
}

// viewGrid renders the two-day slot grid with the cursor.
func (m Model) viewGrid() string {
	var b strings.Builder
	colWidth := m.dayColWidth()

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("weekendly · %s", m.theme)))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", timeColWidth))
	for i, name := range []string{"Saturday", "Sunday"} {
		label := pad(name, colWidth)
		if i == m.cursorDay {
			b.WriteString(m.styles.DayHeader.Render(label))
		} else {
			b.WriteString(m.styles.Hint.Render(label))
		}
	}
	b.WriteString("\n")

	rows := m.visibleRows()
	for row := 0; row < rows; row++ {
		slot := m.scroll + row
		minutes := m.grid.SlotToMinutes(slot)
		b.WriteString(m.styles.TimeLabel.Render(pad(timeLabel(minutes), timeColWidth)))
		for day := 0; day < 2; day++ {
			b.WriteString(m.renderCell(day, slot, colWidth))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

// renderCell renders one day column cell for a slot row.
func (m Model) renderCell(day, slot, width int) string {
	d := dayAt(day)
	minutes := m.grid.SlotToMinutes(slot)

	// The tentative placement shadows the grid while moving.
	if m.mode == ModeMove && m.moveDay == d {
		if a, err := m.engine.Get(m.moveID); err == nil {
			if m.moveStart <= minutes && minutes < m.moveStart+a.DurationMinutes {
				return m.styles.Moving.Render(pad("◆ "+a.Title, width))
			}
		}
	}

	a := m.activityAt(d, slot)
	underCursor := m.mode == ModeNormal && day == m.cursorDay && slot == m.cursorSlot

	if a == nil {
		cell := pad("·", width)
		if underCursor {
			return m.styles.Cursor.Render(cell)
		}
		return m.styles.Hint.Render(cell)
	}

	text := a.Title
	if a.StartMinutes == minutes {
		text = fmt.Sprintf("%s (%dm)", a.Title, a.DurationMinutes)
	} else {
		text = "│ " + a.Title
	}
	cell := pad(ansi.Truncate(text, width-1, "…"), width)

	if underCursor {
		return m.styles.Cursor.Render(cell)
	}
	if m.mode == ModeMove && a.ID == m.moveID {
		return m.styles.Hint.Render(cell)
	}
	return m.styles.categoryStyle(a.Category).Render(cell)
}

func (m Model) viewFooter() string {
	var b strings.Builder

	switch m.mode {
	case ModeMove:
		b.WriteString(m.styles.Moving.Render(fmt.Sprintf("moving to %s %s", m.moveDay, timeLabel(m.moveStart))))
		b.WriteString("  ")
		b.WriteString(m.styles.Hint.Render("h/l day · j/k time · enter place · esc cancel"))
	case ModeConfirm:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Delete %q? (y/n)", m.confirmTitle)))
	default:
		b.WriteString(m.styles.Hint.Render("h/l/j/k move · enter add/edit · m move · x delete · s suggest · tab list · q quit"))
	}
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(m.styles.Status.Render(m.statusMsg))
	}
	return b.String()
}

// listActivities returns the full set ordered by day then start.
func (m Model) listActivities() []activity.Activity {
	as := m.engine.Activities()
	sort.SliceStable(as, func(i, j int) bool {
		if as[i].Day != as[j].Day {
			return as[i].Day == activity.Saturday
		}
		return as[i].StartMinutes < as[j].StartMinutes
	})
	return as
}

// viewList renders the flat activity list. Large lists are windowed so
// only the visible rows plus overscan are materialized.
func (m Model) viewList() string {
	var b strings.Builder
	as := m.listActivities()

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("weekendly · %s · %d activities", m.theme, len(as))))
	b.WriteString("\n")

	if len(as) == 0 {
		b.WriteString(m.styles.Hint.Render("Nothing planned yet. Press tab to go back and add something."))
		b.WriteString("\n")
		return b.String()
	}

	sizer := viewport.ActivitySizer(as)
	containerHeight := max(1, m.height-chromeRows)

	// Keep the selection inside the visible span.
	selTop := 0
	for i := 0; i < m.listIndex; i++ {
		selTop += sizer(i)
	}
	scroll := m.listScroll
	if selTop < scroll {
		scroll = selTop
	}
	if bottom := selTop + sizer(m.listIndex); bottom > scroll+containerHeight {
		scroll = bottom - containerHeight
	}

	threshold := 0
	overscan := 0
	if m.config != nil {
		threshold = m.config.Viewport.Threshold
		overscan = m.config.Viewport.Overscan
	}

	items := viewport.Compute(viewport.Params{
		Count:           len(as),
		Sizer:           sizer,
		ContainerHeight: containerHeight,
		ScrollOffset:    scroll,
		Overscan:        overscan,
		Threshold:       threshold,
	})

	for _, it := range items {
		b.WriteString(m.renderListRow(as[it.Index], it.Index == m.listIndex))
	}

	b.WriteString(m.styles.Hint.Render("j/k select · enter jump to slot · x delete · tab back"))
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(m.styles.Status.Render(m.statusMsg))
	}
	return b.String()
}

// renderListRow emits exactly the number of lines ActivityHeight
// claims for the row, so the windowing offsets stay true.
func (m Model) renderListRow(a activity.Activity, selected bool) string {
	var b strings.Builder
	lineWidth := max(10, m.width-4)

	head := fmt.Sprintf("%-9s %s-%s  %s",
		a.Day, timeLabel(a.StartMinutes), timeLabel(a.EndMinutes()), a.Title)
	head = ansi.Truncate(head, max(10, m.width-2), "…")
	if selected {
		b.WriteString(m.styles.Selected.Render(head))
	} else {
		b.WriteString(m.styles.categoryStyle(a.Category).Render(head))
	}
	b.WriteString("\n")

	detail := string(a.Category)
	if len(a.Notes) > 0 && len(a.Notes) <= viewport.LongNotesLen {
		detail += " · " + a.Notes
	}
	b.WriteString("  " + m.styles.Hint.Render(ansi.Truncate(detail, lineWidth, "…")))
	b.WriteString("\n")

	if a.Mood != "" {
		b.WriteString("  " + m.styles.Hint.Render("~"+string(a.Mood)))
		b.WriteString("\n")
	}
	if len(a.Notes) > viewport.LongNotesLen {
		b.WriteString("  " + m.styles.Hint.Render(ansi.Truncate(a.Notes, lineWidth, "…")))
		b.WriteString("\n")
	}
	if a.DurationMinutes >= viewport.LongDuration {
		b.WriteString("  " + m.styles.Hint.Render(fmt.Sprintf("%dh%02dm block", a.DurationMinutes/60, a.DurationMinutes%60)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "Add activity"
	if m.form.editingID != "" {
		title = "Edit activity"
	}
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString(m.styles.Hint.Render(fmt.Sprintf("  %s %s", m.form.day, timeLabel(m.form.start))))
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Title", focusTitle))
	b.WriteString(m.form.title.View())
	b.WriteString("\n")

	b.WriteString(m.formLabel("Category", focusCategory))
	b.WriteString(m.formChoice(string(categoryOptions[m.form.category]), focusCategory))
	b.WriteString("\n")

	b.WriteString(m.formLabel("Duration", focusDuration))
	b.WriteString(m.formChoice(fmt.Sprintf("%d min", durationOptions[m.form.duration]), focusDuration))
	b.WriteString("\n")

	mood := "none"
	if moodOptions[m.form.mood] != "" {
		mood = string(moodOptions[m.form.mood])
	}
	b.WriteString(m.formLabel("Mood", focusMood))
	b.WriteString(m.formChoice(mood, focusMood))
	b.WriteString("\n")

	b.WriteString(m.formLabel("Notes", focusNotes))
	b.WriteString(m.form.notes.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Hint.Render("tab next field · ←/→ cycle · enter save · esc cancel"))
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(m.styles.Error.Render(m.statusMsg))
	}
	return b.String()
}

func (m Model) formLabel(label string, focus int) string {
	text := pad(label, 10)
	if m.form.focus == focus {
		return m.styles.Header.Render("> " + text)
	}
	return m.styles.Hint.Render("  " + text)
}

func (m Model) formChoice(value string, focus int) string {
	if m.form.focus == focus {
		return m.styles.Selected.Render("◂ " + value + " ▸")
	}
	return value
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
