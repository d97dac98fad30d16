// Package schedule places activities on the weekend grid: conflict
// detection plus the insert/move/edit/remove operations that commit or
// reject placements as a whole.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"weekendly/internal/activity"
	"weekendly/internal/logger"
	"weekendly/internal/timegrid"
)

// Domain errors.
var (
	ErrConflict = errors.New("time slot conflicts with existing activity")
	ErrNotFound = errors.New("activity not found")
)

const (
	// MinDuration is the floor for activity durations in minutes.
	MinDuration = 15

	// suggestStep is the boundary SuggestNextSlot rounds up to.
	suggestStep = 30

	// emptyDayStart is the suggested start for a day with no
	// activities yet.
	emptyDayStart = 10 * 60
)

// Saver receives the full committed activity set after every
// successful mutation. The write may be asynchronous under the hood,
// but the engine waits for it before reporting the outcome.
type Saver interface {
	SaveActivities(ctx context.Context, activities []activity.Activity) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, activities []activity.Activity) error

// SaveActivities implements Saver.
func (f SaverFunc) SaveActivities(ctx context.Context, activities []activity.Activity) error {
	return f(ctx, activities)
}

// Patch carries the fields of an edit. Nil fields are left untouched;
// the edit is applied atomically or not at all.
type Patch struct {
	Title           *string
	Category        *activity.Category
	Day             *activity.Day
	StartText       *string // "HH:MM"; unparseable text keeps the current start
	DurationMinutes *int
	Mood            *activity.Mood
	Notes           *string
}

// Engine orchestrates placements for one plan's activity set. All
// validation happens against the in-memory committed set; every
// successful mutation is handed to the Saver synchronously.
type Engine struct {
	grid       timegrid.Grid
	activities []activity.Activity
	saver      Saver
	log        *logger.Logger
	newID      func() string
}

// NewEngine creates an Engine for the given day window. newID mints
// opaque activity ids.
func NewEngine(grid timegrid.Grid, saver Saver, log *logger.Logger, newID func() string) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		grid:  grid,
		saver: saver,
		log:   log,
		newID: newID,
	}
}

// Load replaces the engine's committed activity set, e.g. after
// reading a plan from the store. No conflict checks run here; the
// stored set is trusted.
func (e *Engine) Load(activities []activity.Activity) {
	e.activities = make([]activity.Activity, len(activities))
	copy(e.activities, activities)
}

// Activities returns a copy of the committed activity set.
func (e *Engine) Activities() []activity.Activity {
	out := make([]activity.Activity, len(e.activities))
	copy(out, e.activities)
	return out
}

// Get returns the activity with the given id.
func (e *Engine) Get(id string) (activity.Activity, error) {
	for _, a := range e.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return activity.Activity{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Insert places a new activity on the given day. The draft duration is
// normalized to a slot multiple (never below MinDuration) and the start
// is clamped so the activity fits the day window, then the placement is
// conflict-checked against the full set. On conflict nothing changes.
func (e *Engine) Insert(ctx context.Context, day activity.Day, startMinutes int, draft activity.Draft) (activity.Activity, error) {
	if err := draft.Validate(); err != nil {
		return activity.Activity{}, err
	}
	if !day.Valid() {
		return activity.Activity{}, activity.ErrInvalidDay
	}

	duration := e.normalizeDuration(draft.DurationMinutes)
	start := e.clampStart(startMinutes, duration)

	candidate := activity.Activity{
		ID:              e.newID(),
		Title:           draft.Title,
		Category:        draft.Category,
		Day:             day,
		StartMinutes:    start,
		DurationMinutes: duration,
		Mood:            draft.Mood,
		Notes:           draft.Notes,
	}

	if hit := FindConflict(e.activities, candidate, ""); hit != nil {
		return activity.Activity{}, conflictError(candidate, hit)
	}

	e.activities = append(e.activities, candidate)
	e.log.Debug("activity placed",
		zap.String("id", candidate.ID),
		zap.String("day", string(day)),
		zap.Int("start", start),
		zap.Int("duration", duration))
	return candidate, e.persist(ctx)
}

// Move reschedules an existing activity to a new day and start,
// keeping its duration. The conflict check excludes the activity's own
// id so moving onto its current slot always succeeds.
func (e *Engine) Move(ctx context.Context, id string, day activity.Day, startMinutes int) (activity.Activity, error) {
	idx := e.indexOf(id)
	if idx < 0 {
		return activity.Activity{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !day.Valid() {
		return activity.Activity{}, activity.ErrInvalidDay
	}

	candidate := e.activities[idx]
	candidate.Day = day
	candidate.StartMinutes = e.clampStart(startMinutes, candidate.DurationMinutes)

	if hit := FindConflict(e.activities, candidate, id); hit != nil {
		return activity.Activity{}, conflictError(candidate, hit)
	}

	e.activities[idx] = candidate
	e.log.Debug("activity moved",
		zap.String("id", id),
		zap.String("day", string(day)),
		zap.Int("start", candidate.StartMinutes))
	return candidate, e.persist(ctx)
}

// Edit applies a patch to an existing activity. Unparseable start text
// falls back to the current start instead of failing the edit; the
// duration is re-normalized; the result is conflict-checked excluding
// the activity itself. No field is partially applied.
func (e *Engine) Edit(ctx context.Context, id string, patch Patch) (activity.Activity, error) {
	idx := e.indexOf(id)
	if idx < 0 {
		return activity.Activity{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	candidate := e.activities[idx]

	if patch.Title != nil {
		if *patch.Title == "" {
			return activity.Activity{}, activity.ErrEmptyTitle
		}
		candidate.Title = *patch.Title
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return activity.Activity{}, activity.ErrInvalidCategory
		}
		candidate.Category = *patch.Category
	}
	if patch.Day != nil {
		if !patch.Day.Valid() {
			return activity.Activity{}, activity.ErrInvalidDay
		}
		candidate.Day = *patch.Day
	}
	if patch.StartText != nil {
		if start, err := timegrid.ToMinutes(*patch.StartText); err == nil {
			candidate.StartMinutes = start
		}
		// Invalid text keeps the current start rather than
		// corrupting the edit.
	}
	if patch.DurationMinutes != nil {
		candidate.DurationMinutes = e.normalizeDuration(*patch.DurationMinutes)
	}
	if patch.Mood != nil {
		if *patch.Mood != "" && !patch.Mood.Valid() {
			return activity.Activity{}, activity.ErrInvalidMood
		}
		candidate.Mood = *patch.Mood
	}
	if patch.Notes != nil {
		candidate.Notes = *patch.Notes
	}

	candidate.StartMinutes = e.clampStart(candidate.StartMinutes, candidate.DurationMinutes)

	if hit := FindConflict(e.activities, candidate, id); hit != nil {
		return activity.Activity{}, conflictError(candidate, hit)
	}

	e.activities[idx] = candidate
	e.log.Debug("activity edited", zap.String("id", id))
	return candidate, e.persist(ctx)
}

// Remove deletes an activity. Removing an absent id is a no-op, not an
// error.
func (e *Engine) Remove(ctx context.Context, id string) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}

	e.activities = append(e.activities[:idx], e.activities[idx+1:]...)
	e.log.Debug("activity removed", zap.String("id", id))
	return e.persist(ctx)
}

// Replace atomically swaps the whole activity set, used when a share
// payload is loaded. The incoming set replaces, never merges.
func (e *Engine) Replace(ctx context.Context, activities []activity.Activity) error {
	e.Load(activities)
	e.log.Debug("activity set replaced", zap.Int("count", len(activities)))
	return e.persist(ctx)
}

// SuggestNextSlot picks a start for an activity added without explicit
// placement: the latest end among the day's activities rounded up to
// the next 30-minute boundary, clamped to the last bookable slot. An
// empty day suggests 10:00.
func (e *Engine) SuggestNextSlot(day activity.Day) int {
	latest := -1
	for _, a := range e.activities {
		if a.Day != day {
			continue
		}
		if end := a.EndMinutes(); end > latest {
			latest = end
		}
	}

	if latest < 0 {
		return e.grid.Clamp(emptyDayStart)
	}

	next := ((latest + suggestStep - 1) / suggestStep) * suggestStep
	if last := e.grid.DayEnd - suggestStep; next > last {
		next = last
	}
	if next < e.grid.DayStart {
		next = e.grid.DayStart
	}
	return next
}

// Grid returns the engine's day window configuration.
func (e *Engine) Grid() timegrid.Grid {
	return e.grid
}

func (e *Engine) indexOf(id string) int {
	for i := range e.activities {
		if e.activities[i].ID == id {
			return i
		}
	}
	return -1
}

// normalizeDuration rounds a duration to a slot multiple, never below
// MinDuration and never longer than the day window, so a clamped start
// always yields an end at or before DayEnd.
func (e *Engine) normalizeDuration(minutes int) int {
	slot := e.grid.SlotSize
	if slot < MinDuration {
		slot = MinDuration
	}
	rounded := timegrid.RoundToSlot(minutes, slot)
	if rounded < MinDuration {
		rounded = MinDuration
	}
	if span := e.grid.DayEnd - e.grid.DayStart; rounded > span {
		rounded = span
	}
	return rounded
}

// clampStart bounds a start so the activity fits inside the day
// window: first pulled back to dayEnd-duration, then floored at
// dayStart.
func (e *Engine) clampStart(start, duration int) int {
	if latest := e.grid.DayEnd - duration; start > latest {
		start = latest
	}
	if start < e.grid.DayStart {
		start = e.grid.DayStart
	}
	return start
}

// persist hands the committed set to the saver. A failed write leaves
// the in-memory mutation standing; the divergence is surfaced to the
// caller as a failed save.
func (e *Engine) persist(ctx context.Context) error {
	if e.saver == nil {
		return nil
	}
	if err := e.saver.SaveActivities(ctx, e.Activities()); err != nil {
		e.log.Error("saving activities failed", zap.Error(err))
		return fmt.Errorf("saving activities: %w", err)
	}
	return nil
}

func conflictError(candidate activity.Activity, hit *activity.Activity) error {
	return fmt.Errorf("%w: %q (%s-%s) conflicts with %q (%s-%s)",
		ErrConflict,
		candidate.Title,
		timegrid.ToTimeText(candidate.StartMinutes), timegrid.ToTimeText(candidate.EndMinutes()),
		hit.Title,
		timegrid.ToTimeText(hit.StartMinutes), timegrid.ToTimeText(hit.EndMinutes()),
	)
}
