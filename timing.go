package orbit

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// TimingClass classifies how an answer's response time compares to the
// expected reading/answer time of the item.
type TimingClass int

const (
	TooFast    TimingClass = iota + 1 // Faster than a fraction of the target; likely a guess or click-through.
	NormalPace                        // Within the expected range.
	Slow                              // Well beyond the target.
)

var (
	timingNames = [...]string{TooFast: "too-fast", NormalPace: "normal", Slow: "slow"}
	timingByName = map[string]TimingClass{
		"too-fast": TooFast,
		"normal":   NormalPace,
		"slow":     Slow,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = TimingClass(0)
	_ json.Marshaler           = TimingClass(0)
	_ json.Unmarshaler         = (*TimingClass)(nil)
	_ encoding.TextMarshaler   = TimingClass(0)
	_ encoding.TextUnmarshaler = (*TimingClass)(nil)
)

// String returns the name of the timing class ("too-fast", "normal", "slow").
// For invalid values it returns "TimingClass(n)".
func (c TimingClass) String() string {
	if c.IsValid() {
		return timingNames[c]
	}
	return fmt.Sprintf("TimingClass(%d)", int(c))
}

// IsValid reports whether c is a valid timing class.
func (c TimingClass) IsValid() bool {
	return c >= TooFast && c <= Slow
}

// MarshalText implements encoding.TextMarshaler.
func (c TimingClass) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTiming, int(c))
	}
	return []byte(timingNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TimingClass) UnmarshalText(text []byte) error {
	v, ok := timingByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTiming, text)
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler. TimingClass serializes as a JSON string.
func (c TimingClass) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (c *TimingClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTiming, data)
	}
	return c.UnmarshalText([]byte(s))
}
