package review

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Tier is a coarse mastery bucket used for prioritization and display.
type Tier int

const (
	Gold   Tier = iota + 1 // Mastery >= 85.
	Silver                 // Mastery >= 70.
	Bronze                 // Everything below.
)

var (
	tierNames  = [...]string{Gold: "GOLD", Silver: "SILVER", Bronze: "BRONZE"}
	tierByName = map[string]Tier{
		"GOLD":   Gold,
		"SILVER": Silver,
		"BRONZE": Bronze,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Tier(0)
	_ json.Marshaler           = Tier(0)
	_ json.Unmarshaler         = (*Tier)(nil)
	_ encoding.TextMarshaler   = Tier(0)
	_ encoding.TextUnmarshaler = (*Tier)(nil)
)

// String returns the name of the tier ("GOLD", "SILVER", "BRONZE").
// For invalid values it returns "Tier(n)".
func (t Tier) String() string {
	if t.IsValid() {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// IsValid reports whether t is a valid tier.
func (t Tier) IsValid() bool {
	return t >= Gold && t <= Bronze
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	v, ok := tierByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}
	*t = v
	return nil
}

// MarshalJSON implements json.Marshaler. Tier serializes as a JSON string.
func (t Tier) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}
	return t.UnmarshalText([]byte(s))
}

// TierOf maps a mastery figure to its tier: Gold >= 85, Silver >= 70,
// Bronze below.
func TierOf(mastery float64) Tier {
	switch {
	case mastery >= 85:
		return Gold
	case mastery >= 70:
		return Silver
	default:
		return Bronze
	}
}

// PriorityScore combines urgency and mastery into a single sort key.
// The base score follows the status; weaker material gets a bonus so it
// is boosted even when not urgent.
func PriorityScore(s Status, t Tier) int {
	var base int
	switch s {
	case Overdue:
		base = 100
	case DueNow:
		base = 80
	case Today:
		base = 50
	default:
		base = 10
	}
	switch t {
	case Bronze:
		base += 20
	case Silver:
		base += 10
	}
	return base
}
