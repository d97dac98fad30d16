package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeMove:
			return m.handleMoveKeys(msg)
		case ModeForm:
			return m.handleFormKeys(msg)
		case ModeConfirm:
			return m.handleConfirmKeys(msg)
		case ModeList:
			return m.handleListKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		m.cursorDay = 0
	case "l", "right":
		m.cursorDay = 1

	case "j", "down":
		if m.cursorSlot < m.grid.SlotCount()-1 {
			m.cursorSlot++
		}
		m.ensureCursorVisible()
	case "k", "up":
		if m.cursorSlot > 0 {
			m.cursorSlot--
		}
		m.ensureCursorVisible()

	case "g":
		m.cursorSlot = 0
		m.ensureCursorVisible()
	case "G":
		m.cursorSlot = m.grid.SlotCount() - 1
		m.ensureCursorVisible()

	case "s":
		// Jump to the suggested next free slot on the cursor day.
		start := m.engine.SuggestNextSlot(dayAt(m.cursorDay))
		m.cursorSlot = m.grid.MinutesToSlot(start)
		m.ensureCursorVisible()
		m.statusMsg = fmt.Sprintf("Suggested %s", timeLabel(start))

	case "enter", "a":
		if a := m.activityAt(dayAt(m.cursorDay), m.cursorSlot); a != nil && msg.String() == "enter" {
			return m, m.openEditForm(*a)
		}
		return m, m.openAddForm()

	case "m":
		if a := m.activityAt(dayAt(m.cursorDay), m.cursorSlot); a != nil {
			m.mode = ModeMove
			m.moveID = a.ID
			m.moveDay = a.Day
			m.moveStart = a.StartMinutes
			m.statusMsg = ""
		}

	case "x", "d":
		if a := m.activityAt(dayAt(m.cursorDay), m.cursorSlot); a != nil {
			m.mode = ModeConfirm
			m.confirmID = a.ID
			m.confirmTitle = a.Title
		}

	case "tab":
		m.mode = ModeList
		m.listIndex = 0
		m.listScroll = 0
		m.statusMsg = ""
	}
	return m, nil
}

// handleMoveKeys drags the tentative placement around the grid. Enter
// commits through the engine; a conflict keeps move mode active so the
// user can pick another slot.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.moveID = ""
		m.statusMsg = "Move cancelled"

	case "h", "left":
		m.moveDay = dayAt(0)
	case "l", "right":
		m.moveDay = dayAt(1)

	case "j", "down":
		m.moveStart = m.grid.Clamp(m.moveStart + m.grid.SlotSize)
		m.cursorSlot = m.grid.MinutesToSlot(m.moveStart)
		m.ensureCursorVisible()
	case "k", "up":
		m.moveStart = m.grid.Clamp(m.moveStart - m.grid.SlotSize)
		m.cursorSlot = m.grid.MinutesToSlot(m.moveStart)
		m.ensureCursorVisible()

	case "enter":
		moved, err := m.engine.Move(context.Background(), m.moveID, m.moveDay, m.moveStart)
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.moveID = ""
		m.cursorDay = dayIndex(moved.Day)
		m.cursorSlot = m.grid.MinutesToSlot(moved.StartMinutes)
		m.ensureCursorVisible()
		m.statusMsg = fmt.Sprintf("Moved %q to %s %s", moved.Title, moved.Day, timeLabel(moved.StartMinutes))
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		title := m.confirmTitle
		if err := m.engine.Remove(context.Background(), m.confirmID); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("Removed %q", title)
		}
		m.mode = ModeNormal
		m.confirmID = ""
		m.confirmTitle = ""
	case "n", "esc", "q":
		m.mode = ModeNormal
		m.confirmID = ""
		m.confirmTitle = ""
		m.statusMsg = ""
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.listActivities()

	switch msg.String() {
	case "q", "esc", "tab":
		m.mode = ModeNormal
		m.statusMsg = ""

	case "j", "down":
		if m.listIndex < len(items)-1 {
			m.listIndex++
		}
	case "k", "up":
		if m.listIndex > 0 {
			m.listIndex--
		}

	case "enter":
		if m.listIndex < len(items) {
			a := items[m.listIndex]
			m.cursorDay = dayIndex(a.Day)
			m.cursorSlot = m.grid.MinutesToSlot(a.StartMinutes)
			m.ensureCursorVisible()
			m.mode = ModeNormal
		}

	case "x", "d":
		if m.listIndex < len(items) {
			a := items[m.listIndex]
			m.mode = ModeConfirm
			m.confirmID = a.ID
			m.confirmTitle = a.Title
		}
	}
	return m, nil
}

// handleMouse maps a click on the grid area to a cursor position. The
// first content row sits below the header, so row 0 of the grid is
// screen row 2.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal && m.mode != ModeMove {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.scroll = max(0, m.scroll-1)
		return m, nil
	case tea.MouseWheelDown:
		m.scroll = min(max(0, m.grid.SlotCount()-m.visibleRows()), m.scroll+1)
		return m, nil
	case tea.MouseLeft:
	default:
		return m, nil
	}

	row := msg.Y - gridTopRow
	rows := m.visibleRows()
	if row < 0 || row >= rows || msg.X < timeColWidth {
		return m, nil
	}

	var slot int
	if rows >= m.grid.SlotCount() {
		// Full window visible: map the pointer linearly onto the day.
		minutes := m.grid.PositionFromPointer(float64(row), float64(rows))
		slot = m.grid.MinutesToSlot(minutes)
	} else {
		slot = m.scroll + row
	}

	day := 0
	if msg.X >= timeColWidth+m.dayColWidth() {
		day = 1
	}

	if m.mode == ModeMove {
		m.moveDay = dayAt(day)
		m.moveStart = m.grid.SlotToMinutes(slot)
		return m, nil
	}

	m.cursorDay = day
	m.cursorSlot = slot
	m.ensureCursorVisible()
	return m, nil
}
