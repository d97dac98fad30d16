package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"weekendly/internal/activity"
)

// Color definitions for consistent styling across the UI.
var (
	colorOutdoor = color.New(color.FgGreen)
	colorFood    = color.New(color.FgYellow)
	colorFitness = color.New(color.FgRed)
	colorCulture = color.New(color.FgMagenta)
	colorHome    = color.New(color.FgBlue)
	colorOther   = color.New(color.FgWhite)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Time ranges: cyan so the grid reads at a glance
	colorTime = color.New(color.FgCyan)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatCategory colors a string by activity category.
func formatCategory(c activity.Category, s string) string {
	switch c {
	case activity.CategoryOutdoor:
		return colorOutdoor.Sprint(s)
	case activity.CategoryFood:
		return colorFood.Sprint(s)
	case activity.CategoryFitness:
		return colorFitness.Sprint(s)
	case activity.CategoryCulture:
		return colorCulture.Sprint(s)
	case activity.CategoryHome:
		return colorHome.Sprint(s)
	default:
		return colorOther.Sprint(s)
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatTime formats a time range.
func formatTime(s string) string {
	return colorTime.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
