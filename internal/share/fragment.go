// Package share moves a plan across app boundaries: a URL fragment for
// link sharing, an ICS calendar feed, and a pretty-printed JSON file.
// All three carry activities in wire form, without record ids.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"weekendly/internal/activity"
)

// ErrInvalidPayload marks a share payload that failed to decode. The
// caller recovers locally (show a message, keep current state); nothing
// is mutated before the payload validates as a whole.
var ErrInvalidPayload = errors.New("invalid share payload")

// Payload is the JSON carried inside a share fragment.
type Payload struct {
	Theme      string          `json:"theme"`
	Activities []activity.Wire `json:"activities"`
}

// EncodeFragment packs a plan into a URL fragment: compact JSON,
// percent-encoded, then base64. The result starts with "#".
func EncodeFragment(theme activity.Theme, as []activity.Activity) (string, error) {
	payload := Payload{
		Theme:      string(theme),
		Activities: activity.EncodeAll(as),
	}
	if payload.Activities == nil {
		payload.Activities = []activity.Wire{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}

	encoded := base64.URLEncoding.EncodeToString([]byte(url.QueryEscape(string(data))))
	return "#" + encoded, nil
}

// DecodeFragment unpacks a share fragment produced by EncodeFragment.
// The payload is validated as a whole before anything is returned: one
// malformed activity rejects the entire fragment.
func DecodeFragment(fragment string) (activity.Theme, []activity.Activity, error) {
	raw := strings.TrimPrefix(fragment, "#")
	if raw == "" {
		return "", nil, fmt.Errorf("%w: empty fragment", ErrInvalidPayload)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	unescaped, err := url.QueryUnescape(string(decoded))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var payload Payload
	if err := json.Unmarshal([]byte(unescaped), &payload); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	theme := activity.Theme(payload.Theme)
	if !theme.Valid() {
		return "", nil, fmt.Errorf("%w: unknown theme %q", ErrInvalidPayload, payload.Theme)
	}

	as, err := activity.DecodeAll(payload.Activities)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return theme, as, nil
}
