package schedule

import (
	"weekendly/internal/activity"
)

// HasConflict reports whether the candidate placement overlaps any
// existing activity on the candidate's day. excludeID skips the
// activity being moved, so a no-op move never conflicts with itself.
//
// Intervals are half-open [start, start+duration): two placements
// conflict iff s1 < e2 && s2 < e1, so an activity ending exactly when
// another starts is fine. Every insert, move, resize and edit routes
// through this predicate before being committed.
func HasConflict(existing []activity.Activity, candidate activity.Activity, excludeID string) bool {
	return FindConflict(existing, candidate, excludeID) != nil
}

// FindConflict returns the first existing activity the candidate
// overlaps with, or nil if the placement is free.
func FindConflict(existing []activity.Activity, candidate activity.Activity, excludeID string) *activity.Activity {
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(candidate) {
			return &existing[i]
		}
	}
	return nil
}
