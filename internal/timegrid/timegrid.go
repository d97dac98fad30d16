// Package timegrid converts between clock time, minutes since midnight,
// and positions on a rendered day track.
package timegrid

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when a time string is not valid HH:MM.
// Callers are expected to recover with a safe default rather than
// propagate it into the activity set.
var ErrInvalidFormat = errors.New("time must be in HH:MM format")

// DefaultSlotSize is the minimum addressable time granularity in minutes.
// All start times and durations are rounded to a multiple of it.
const DefaultSlotSize = 15

const minutesPerDay = 24 * 60

// ToMinutes converts "HH:MM" to minutes since midnight.
func ToMinutes(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, ErrInvalidFormat
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, ErrInvalidFormat
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, ErrInvalidFormat
	}
	return hours*60 + mins, nil
}

// ToTimeText converts minutes since midnight to zero-padded "HH:MM".
// Minutes are clamped to [0, 1439] before formatting.
func ToTimeText(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= minutesPerDay {
		m = minutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// RoundToSlot rounds minutes to the nearest multiple of slotSize.
// Ties round toward the larger multiple.
func RoundToSlot(minutes, slotSize int) int {
	if slotSize <= 0 {
		return minutes
	}
	return ((minutes + slotSize/2) / slotSize) * slotSize
}

// Grid maps positions on a bounded day axis. DayStart and DayEnd are
// minutes since midnight; TrackPadding is the fixed inset at both ends
// of the rendered track that carries no time range (border rows in the
// TUI). Leaving the inset in the mapping biases the first and last slot.
type Grid struct {
	DayStart     int
	DayEnd       int
	SlotSize     int
	TrackPadding int
}

// New creates a Grid for the given day window using the default slot size.
func New(dayStart, dayEnd int) Grid {
	return Grid{
		DayStart: dayStart,
		DayEnd:   dayEnd,
		SlotSize: DefaultSlotSize,
	}
}

// Clamp bounds minutes to the grid's day window.
func (g Grid) Clamp(minutes int) int {
	if minutes < g.DayStart {
		return g.DayStart
	}
	if minutes > g.DayEnd {
		return g.DayEnd
	}
	return minutes
}

// PositionFromPointer maps a pointer offset within a rendered track of
// trackHeight units linearly onto [DayStart, DayEnd], clamps to the
// window and rounds to the slot size. The usable range excludes
// TrackPadding units at each end.
func (g Grid) PositionFromPointer(pointerOffset, trackHeight float64) int {
	usable := trackHeight - 2*float64(g.TrackPadding)
	if usable <= 0 {
		return g.DayStart
	}

	rel := pointerOffset - float64(g.TrackPadding)
	if rel < 0 {
		rel = 0
	}
	if rel > usable {
		rel = usable
	}

	span := float64(g.DayEnd - g.DayStart)
	minutes := g.DayStart + int(rel/usable*span+0.5)
	return g.Clamp(RoundToSlot(minutes, g.SlotSize))
}

// SlotCount returns the number of slots in the day window.
func (g Grid) SlotCount() int {
	if g.SlotSize <= 0 {
		return 0
	}
	return (g.DayEnd - g.DayStart) / g.SlotSize
}

// MinutesToSlot converts minutes since midnight to a slot index within
// the day window. Minutes before DayStart map to slot 0.
func (g Grid) MinutesToSlot(minutes int) int {
	if g.SlotSize <= 0 || minutes <= g.DayStart {
		return 0
	}
	slot := (minutes - g.DayStart) / g.SlotSize
	if max := g.SlotCount(); slot > max {
		return max
	}
	return slot
}

// SlotToMinutes converts a slot index back to minutes since midnight.
func (g Grid) SlotToMinutes(slot int) int {
	return g.Clamp(g.DayStart + slot*g.SlotSize)
}
