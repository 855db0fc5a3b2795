package orbit

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// SelfEval represents the learner's own confidence assessment of an answer.
type SelfEval int

const (
	EvalHard   SelfEval = iota + 1 // Recalled with significant difficulty.
	EvalNormal                     // Recalled with some effort.
	EvalEasy                       // Recalled effortlessly.
)

var (
	selfEvalNames = [...]string{EvalHard: "Hard", EvalNormal: "Normal", EvalEasy: "Easy"}
	selfEvalByName = map[string]SelfEval{
		"Hard":   EvalHard,
		"Normal": EvalNormal,
		"Easy":   EvalEasy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = SelfEval(0)
	_ json.Marshaler           = SelfEval(0)
	_ json.Unmarshaler         = (*SelfEval)(nil)
	_ encoding.TextMarshaler   = SelfEval(0)
	_ encoding.TextUnmarshaler = (*SelfEval)(nil)
)

// String returns the name of the evaluation ("Hard", "Normal", "Easy").
// For invalid values it returns "SelfEval(n)".
func (e SelfEval) String() string {
	if e.IsValid() {
		return selfEvalNames[e]
	}
	return fmt.Sprintf("SelfEval(%d)", int(e))
}

// IsValid reports whether e is a valid evaluation (EvalHard through EvalEasy).
func (e SelfEval) IsValid() bool {
	return e >= EvalHard && e <= EvalEasy
}

// MarshalText implements encoding.TextMarshaler.
func (e SelfEval) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSelfEval, int(e))
	}
	return []byte(selfEvalNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *SelfEval) UnmarshalText(text []byte) error {
	v, ok := selfEvalByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSelfEval, text)
	}
	*e = v
	return nil
}

// MarshalJSON implements json.Marshaler. SelfEval serializes as a JSON string.
func (e SelfEval) MarshalJSON() ([]byte, error) {
	text, err := e.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (e *SelfEval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSelfEval, data)
	}
	return e.UnmarshalText([]byte(s))
}
