package schedule

import (
	"testing"

	"weekendly/internal/activity"
)

func TestHasConflict(t *testing.T) {
	existing := []activity.Activity{
		{ID: "walk", Day: activity.Saturday, StartMinutes: 570, DurationMinutes: 60},  // 09:30-10:30
		{ID: "lunch", Day: activity.Saturday, StartMinutes: 720, DurationMinutes: 60}, // 12:00-13:00
		{ID: "museum", Day: activity.Sunday, StartMinutes: 600, DurationMinutes: 120}, // 10:00-12:00
	}

	tests := []struct {
		name      string
		candidate activity.Activity
		excludeID string
		want      bool
	}{
		{
			name:      "hike overlapping walk",
			candidate: activity.Activity{ID: "hike", Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 90},
			want:      true,
		},
		{
			name:      "starts exactly when walk ends",
			candidate: activity.Activity{ID: "coffee", Day: activity.Saturday, StartMinutes: 630, DurationMinutes: 30},
			want:      false,
		},
		{
			name:      "ends exactly when lunch starts",
			candidate: activity.Activity{ID: "errand", Day: activity.Saturday, StartMinutes: 660, DurationMinutes: 60},
			want:      false,
		},
		{
			name:      "same time other day",
			candidate: activity.Activity{ID: "ride", Day: activity.Sunday, StartMinutes: 570, DurationMinutes: 60},
			want:      false,
		},
		{
			name:      "contained within museum",
			candidate: activity.Activity{ID: "tour", Day: activity.Sunday, StartMinutes: 630, DurationMinutes: 30},
			want:      true,
		},
		{
			name:      "moving onto own slot excludes self",
			candidate: activity.Activity{ID: "walk", Day: activity.Saturday, StartMinutes: 570, DurationMinutes: 60},
			excludeID: "walk",
			want:      false,
		},
		{
			name:      "excluded id still conflicts with others",
			candidate: activity.Activity{ID: "walk", Day: activity.Saturday, StartMinutes: 720, DurationMinutes: 30},
			excludeID: "walk",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(existing, tt.candidate, tt.excludeID)
			if got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindConflictReturnsHit(t *testing.T) {
	existing := []activity.Activity{
		{ID: "walk", Title: "Walk", Day: activity.Saturday, StartMinutes: 570, DurationMinutes: 60},
	}
	candidate := activity.Activity{ID: "hike", Day: activity.Saturday, StartMinutes: 600, DurationMinutes: 90}

	hit := FindConflict(existing, candidate, "")
	if hit == nil || hit.ID != "walk" {
		t.Fatalf("FindConflict() = %v, want walk", hit)
	}
}
