package orbit

import (
	"encoding/json"
	"time"
)

// Attempt records a single answer to an item. Records are append-only;
// each answer produces exactly one. Meta is opaque analytics payload the
// scheduler never reads back.
type Attempt struct {
	ID             string          `json:"id"`
	At             time.Time       `json:"at"`
	WasCorrect     bool            `json:"was_correct"`
	MasteryAfter   float64         `json:"mastery_after"`
	StabilityAfter float64         `json:"stability_after"`
	TimeSec        float64         `json:"time_sec"`
	SelfEval       SelfEval        `json:"self_eval"`
	Timing         TimingClass     `json:"timing"`
	TargetSec      float64         `json:"target_sec"`
	Meta           json.RawMessage `json:"meta,omitempty"`
}
