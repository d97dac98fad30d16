// Package tui renders the weekend as a two-column slot grid with a
// cursor, a move mode and an add/edit form.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"weekendly/internal/activity"
	"weekendly/internal/config"
	"weekendly/internal/logger"
	"weekendly/internal/schedule"
	"weekendly/internal/timegrid"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeForm
	ModeConfirm
	ModeList
)

// Options configures a TUI session.
type Options struct {
	Engine *schedule.Engine
	Theme  activity.Theme
	Config *config.Config
	Logger *logger.Logger
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Model is the bubbletea model for the planner.
type Model struct {
	engine *schedule.Engine
	grid   timegrid.Grid
	theme  activity.Theme
	config *config.Config
	log    *logger.Logger
	styles Styles

	mode Mode

	// Cursor on the slot grid. Day 0 is Saturday, 1 is Sunday.
	cursorDay  int
	cursorSlot int
	scroll     int

	// Tentative placement while moving an activity.
	moveID    string
	moveDay   activity.Day
	moveStart int

	form formState

	// Pending delete confirmation.
	confirmID    string
	confirmTitle string

	// Selection and scroll for the windowed list view.
	listIndex  int
	listScroll int

	width     int
	height    int
	statusMsg string
}

// NewModel builds the initial model.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return Model{
		engine: opts.Engine,
		grid:   opts.Engine.Grid(),
		theme:  opts.Theme,
		config: opts.Config,
		log:    log,
		styles: NewStyles(opts.Theme),
		form:   newFormState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func dayAt(i int) activity.Day {
	if i == 1 {
		return activity.Sunday
	}
	return activity.Saturday
}

func dayIndex(d activity.Day) int {
	if d == activity.Sunday {
		return 1
	}
	return 0
}

// activityAt returns the activity covering a slot, or nil.
func (m Model) activityAt(day activity.Day, slot int) *activity.Activity {
	minutes := m.grid.SlotToMinutes(slot)
	for _, a := range m.engine.Activities() {
		if a.Day == day && a.StartMinutes <= minutes && minutes < a.EndMinutes() {
			out := a
			return &out
		}
	}
	return nil
}

// visibleRows is the number of slot rows the grid area can show.
func (m Model) visibleRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	if total := m.grid.SlotCount(); rows > total {
		rows = total
	}
	return rows
}

// ensureCursorVisible adjusts the scroll so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursorSlot < m.scroll {
		m.scroll = m.cursorSlot
	}
	if m.cursorSlot >= m.scroll+rows {
		m.scroll = m.cursorSlot - rows + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
