// Package activity defines the core domain types for weekendly.
package activity

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidCategory = errors.New("category must be one of outdoor, food, fitness, culture, home, other")
	ErrInvalidDay      = errors.New("day must be 'saturday' or 'sunday'")
	ErrInvalidMood     = errors.New("mood must be one of chill, energetic, social, focus")
	ErrInvalidTheme    = errors.New("theme must be one of lazy, adventurous, family")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

// Day is one of the two planable weekend days.
type Day string

const (
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

// Valid returns true if the day is a valid value.
func (d Day) Valid() bool {
	return d == Saturday || d == Sunday
}

// ParseDay parses a day name.
func ParseDay(s string) (Day, error) {
	d := Day(s)
	if !d.Valid() {
		return "", ErrInvalidDay
	}
	return d, nil
}

// Category classifies what kind of activity this is.
type Category string

const (
	CategoryOutdoor Category = "outdoor"
	CategoryFood    Category = "food"
	CategoryFitness Category = "fitness"
	CategoryCulture Category = "culture"
	CategoryHome    Category = "home"
	CategoryOther   Category = "other"
)

// Valid returns true if the category is a valid value.
func (c Category) Valid() bool {
	switch c {
	case CategoryOutdoor, CategoryFood, CategoryFitness, CategoryCulture, CategoryHome, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Mood is an optional vibe tag on an activity. The empty string means unset.
type Mood string

const (
	MoodChill     Mood = "chill"
	MoodEnergetic Mood = "energetic"
	MoodSocial    Mood = "social"
	MoodFocus     Mood = "focus"
)

// Valid returns true if the mood is a valid value. Empty is not valid;
// callers treat empty as "no mood" before calling.
func (m Mood) Valid() bool {
	switch m {
	case MoodChill, MoodEnergetic, MoodSocial, MoodFocus:
		return true
	default:
		return false
	}
}

// Theme is the overall flavor of a plan.
type Theme string

const (
	ThemeLazy        Theme = "lazy"
	ThemeAdventurous Theme = "adventurous"
	ThemeFamily      Theme = "family"
)

// Valid returns true if the theme is a valid value.
func (t Theme) Valid() bool {
	return t == ThemeLazy || t == ThemeAdventurous || t == ThemeFamily
}

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", ErrInvalidTheme
	}
	return t, nil
}

// Activity is a single placed block on the weekend grid. The ID is
// opaque and immutable after creation; moves and edits mutate the
// activity in place under the same id.
type Activity struct {
	ID              string
	Title           string
	Category        Category
	Day             Day
	StartMinutes    int // minutes since midnight
	DurationMinutes int
	Mood            Mood // optional, empty means unset
	Notes           string
}

// EndMinutes returns the exclusive end of the activity's time interval.
func (a Activity) EndMinutes() int {
	return a.StartMinutes + a.DurationMinutes
}

// Overlaps reports whether two activities occupy overlapping time on
// the same day. Intervals are half-open, so back-to-back activities do
// not overlap.
func (a Activity) Overlaps(other Activity) bool {
	if a.Day != other.Day {
		return false
	}
	return a.StartMinutes < other.EndMinutes() && other.StartMinutes < a.EndMinutes()
}

// Draft carries the user-supplied fields of an activity before the
// placement engine assigns it an id and a validated slot.
type Draft struct {
	Title           string
	Category        Category
	DurationMinutes int
	Mood            Mood
	Notes           string
}

// Validate checks the draft's user-supplied fields.
func (d Draft) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	if d.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if d.Mood != "" && !d.Mood.Valid() {
		return ErrInvalidMood
	}
	return nil
}

// Plan is a saved weekend: a theme plus the set of activities it owns.
// Version increments by exactly 1 on every successful update; it is
// advisory only and never checked against on write.
type Plan struct {
	ID         string
	Theme      Theme
	Activities []Activity
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
	Tags       []string
	Notes      string
	Template   bool
}

// FindActivity returns the index of the activity with the given id,
// or -1 if absent.
func (p *Plan) FindActivity(id string) int {
	for i, a := range p.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ActivitiesOn returns the plan's activities for one day.
func (p *Plan) ActivitiesOn(day Day) []Activity {
	var out []Activity
	for _, a := range p.Activities {
		if a.Day == day {
			out = append(out, a)
		}
	}
	return out
}
