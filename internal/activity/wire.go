package activity

import (
	"fmt"

	"weekendly/internal/timegrid"
)

// Wire is the external JSON shape of an activity, shared by plan
// export/import, share payloads and catalog drops. It is untrusted
// input: decoding validates every field and rejects with a typed error
// instead of trusting shape.
type Wire struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	Day             string `json:"day"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"durationMinutes"`
	Mood            string `json:"mood,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// FieldError reports which payload field failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decode validates a wire activity and converts it to a domain
// Activity without an id; the placement engine assigns ids.
func Decode(w Wire) (Activity, error) {
	if w.Title == "" {
		return Activity{}, &FieldError{Field: "title", Err: ErrEmptyTitle}
	}

	category, err := ParseCategory(w.Category)
	if err != nil {
		return Activity{}, &FieldError{Field: "category", Err: err}
	}

	day, err := ParseDay(w.Day)
	if err != nil {
		return Activity{}, &FieldError{Field: "day", Err: err}
	}

	start, err := timegrid.ToMinutes(w.Start)
	if err != nil {
		return Activity{}, &FieldError{Field: "start", Err: err}
	}

	if w.DurationMinutes <= 0 {
		return Activity{}, &FieldError{Field: "durationMinutes", Err: ErrInvalidDuration}
	}

	mood := Mood(w.Mood)
	if w.Mood != "" && !mood.Valid() {
		return Activity{}, &FieldError{Field: "mood", Err: ErrInvalidMood}
	}

	return Activity{
		Title:           w.Title,
		Category:        category,
		Day:             day,
		StartMinutes:    start,
		DurationMinutes: w.DurationMinutes,
		Mood:            mood,
		Notes:           w.Notes,
	}, nil
}

// DecodeAll validates a slice of wire activities. A single invalid
// entry rejects the whole payload; partial imports are never applied.
func DecodeAll(ws []Wire) ([]Activity, error) {
	out := make([]Activity, 0, len(ws))
	for i, w := range ws {
		a, err := Decode(w)
		if err != nil {
			return nil, fmt.Errorf("activity %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Encode converts a domain activity to its wire shape. The id is
// intentionally dropped; imports always mint fresh ids.
func Encode(a Activity) Wire {
	return Wire{
		Title:           a.Title,
		Category:        string(a.Category),
		Day:             string(a.Day),
		Start:           timegrid.ToTimeText(a.StartMinutes),
		DurationMinutes: a.DurationMinutes,
		Mood:            string(a.Mood),
		Notes:           a.Notes,
	}
}

// EncodeAll converts activities to wire shape.
func EncodeAll(as []Activity) []Wire {
	out := make([]Wire, 0, len(as))
	for _, a := range as {
		out = append(out, Encode(a))
	}
	return out
}
