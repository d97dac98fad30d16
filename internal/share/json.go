package share

import (
	"encoding/json"
	"fmt"
	"time"

	"weekendly/internal/activity"
)

// PlanFile is the pretty-printed JSON document written by ExportJSON.
type PlanFile struct {
	Theme      string          `json:"theme"`
	Activities []activity.Wire `json:"activities"`
	Tags       []string        `json:"tags,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	ExportedAt time.Time       `json:"exportedAt"`
}

// ExportJSON renders a plan as indented JSON for files and clipboards.
// Activity ids are not included; importing mints fresh ones.
func ExportJSON(p *activity.Plan, now time.Time) ([]byte, error) {
	file := PlanFile{
		Theme:      string(p.Theme),
		Activities: activity.EncodeAll(p.Activities),
		Tags:       p.Tags,
		Notes:      p.Notes,
		ExportedAt: now.UTC(),
	}
	if file.Activities == nil {
		file.Activities = []activity.Wire{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return append(data, '\n'), nil
}

// ImportJSON parses a document produced by ExportJSON. Like the
// fragment codec it is all-or-nothing: any malformed activity rejects
// the document and nothing is returned.
func ImportJSON(data []byte) (*PlanFile, []activity.Activity, error) {
	var file PlanFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !activity.Theme(file.Theme).Valid() {
		return nil, nil, fmt.Errorf("%w: unknown theme %q", ErrInvalidPayload, file.Theme)
	}

	as, err := activity.DecodeAll(file.Activities)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &file, as, nil
}
