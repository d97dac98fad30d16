package tui

import (
	"github.com/charmbracelet/lipgloss"

	"weekendly/internal/activity"
)

// Layout constants. chromeRows is header plus footer.
const (
	timeColWidth = 7
	chromeRows   = 4
)

// palette is the accent set for one plan theme.
type palette struct {
	accent  string
	warning string
	muted   string
}

var palettes = map[activity.Theme]palette{
	activity.ThemeLazy:        {accent: "#89b4fa", warning: "#f9e2af", muted: "#6c7086"},
	activity.ThemeAdventurous: {accent: "#a6e3a1", warning: "#fab387", muted: "#6c7086"},
	activity.ThemeFamily:      {accent: "#f5c2e7", warning: "#f9e2af", muted: "#6c7086"},
}

var categoryColors = map[activity.Category]string{
	activity.CategoryOutdoor: "#a6e3a1",
	activity.CategoryFood:    "#f9e2af",
	activity.CategoryFitness: "#f38ba8",
	activity.CategoryCulture: "#cba6f7",
	activity.CategoryHome:    "#89b4fa",
	activity.CategoryOther:   "#cdd6f4",
}

// Styles holds the lipgloss styles for one session.
type Styles struct {
	Header    lipgloss.Style
	DayHeader lipgloss.Style
	TimeLabel lipgloss.Style
	Cursor    lipgloss.Style
	Moving    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Hint      lipgloss.Style
	Selected  lipgloss.Style
	Category  map[activity.Category]lipgloss.Style
}

// NewStyles derives the style set for a plan theme.
func NewStyles(theme activity.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[activity.ThemeLazy]
	}

	s := Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		DayHeader: lipgloss.NewStyle().Bold(true),
		TimeLabel: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Moving:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.warning)).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Category:  make(map[activity.Category]lipgloss.Style, len(categoryColors)),
	}
	for c, hex := range categoryColors {
		s.Category[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return s
}

func (s Styles) categoryStyle(c activity.Category) lipgloss.Style {
	if st, ok := s.Category[c]; ok {
		return st
	}
	return s.Category[activity.CategoryOther]
}
