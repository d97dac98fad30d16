package viewport

import "weekendly/internal/activity"

// Row heights in terminal lines for variable-height activity lists.
// The thresholds are exported so renderers emit the extra detail lines
// exactly when the sizer accounts for them.
const (
	baseRowHeight = 2
	// LongNotesLen is the notes length above which notes get a line of
	// their own.
	LongNotesLen = 40
	// LongDuration is the duration in minutes from which a row carries
	// an extra duration line.
	LongDuration = 120
)

// ActivityHeight derives a row height from an activity's content: long
// notes wrap to an extra line, a mood tag and a long duration each add
// a detail line. Pure function of the item, so callers recompute by
// calling again whenever the backing collection changes.
func ActivityHeight(a activity.Activity) int {
	h := baseRowHeight
	if len(a.Notes) > LongNotesLen {
		h++
	}
	if a.Mood != "" {
		h++
	}
	if a.DurationMinutes >= LongDuration {
		h++
	}
	return h
}

// ActivitySizer adapts a backing slice to a Sizer.
func ActivitySizer(as []activity.Activity) Sizer {
	return func(i int) int {
		if i < 0 || i >= len(as) {
			return baseRowHeight
		}
		return ActivityHeight(as[i])
	}
}
