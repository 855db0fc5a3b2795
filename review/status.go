package review

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Exact product constants for the urgency windows. Changing them would
// silently reshuffle every displayed status, so they are not configurable.
const (
	// GraceHours past the due date still count as "now" rather than overdue.
	GraceHours = 6
	// WindowHours ahead of the due date already count as "now".
	WindowHours = 12
	// ContextBuffer is how far in the future a group context's own due
	// date must be before it overrides the items' earliest due date.
	ContextBuffer = 5 * time.Minute
)

// ErrInvalidStatus is returned when unmarshaling an unknown status or tier.
var ErrInvalidStatus = errors.New("review: invalid status")

// Status is the urgency bucket of a due date relative to a reference time.
type Status int

const (
	Overdue Status = iota + 1 // Past due beyond the grace window.
	DueNow                    // Inside the grace/ahead window around the due date.
	Today                     // Later the same calendar day.
	Future                    // A later day.
)

var (
	statusNames  = [...]string{Overdue: "OVERDUE", DueNow: "NOW", Today: "TODAY", Future: "FUTURE"}
	statusByName = map[string]Status{
		"OVERDUE": Overdue,
		"NOW":     DueNow,
		"TODAY":   Today,
		"FUTURE":  Future,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Status(0)
	_ json.Marshaler           = Status(0)
	_ json.Unmarshaler         = (*Status)(nil)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

// String returns the name of the status ("OVERDUE", "NOW", "TODAY", "FUTURE").
// For invalid values it returns "Status(n)".
func (s Status) String() string {
	if s.IsValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsValid reports whether s is a valid status.
func (s Status) IsValid() bool {
	return s >= Overdue && s <= Future
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, ok := statusByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Status serializes as a JSON string.
func (s Status) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}
	return s.UnmarshalText([]byte(str))
}

// StatusOf classifies a due date against the reference time. A zero due
// date (the rendition of an unparseable timestamp) is Overdue: the engine
// fails toward more review, never less.
//
// For a fixed due date the status only moves forward as now advances:
// Future → Today → DueNow → Overdue.
func StatusOf(due, now time.Time) Status {
	if due.IsZero() {
		return Overdue
	}
	diffHours := due.Sub(now).Hours()
	switch {
	case diffHours < -GraceHours:
		return Overdue
	case diffHours <= WindowHours:
		return DueNow
	case sameDay(due, now):
		return Today
	default:
		return Future
	}
}

// ParseDue parses an ISO-8601 / RFC 3339 timestamp. Unparseable input
// yields the zero time, which StatusOf treats as Overdue.
func ParseDue(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
