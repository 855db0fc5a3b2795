package orbit

import (
	"encoding/json"
	"time"
)

// Item represents a reviewable unit (question, flashcard, or cloze gap)
// with its scheduling state. Presentation content beyond Prompt is carried
// opaquely in Payload and never inspected by the scheduler.
type Item struct {
	ID             string          `json:"id"`
	Prompt         string          `json:"prompt"`
	Payload        json.RawMessage `json:"payload,omitempty"` // opaque to the scheduler.
	TotalAttempts  int             `json:"total_attempts"`    // 0 means unseen.
	LastWasCorrect bool            `json:"last_was_correct"`  // meaningful only when TotalAttempts > 0.
	Mastery        float64         `json:"mastery"`           // cumulative score in [0, 100].
	Stability      float64         `json:"stability"`         // days; never below the configured floor.
	NextReview     time.Time       `json:"next_review"`       // zero → treated as already due.
	LastReviewed   *time.Time      `json:"last_reviewed"`     // nil before the first answer.
	History        []Attempt       `json:"history,omitempty"` // append-only, chronological.
}

// NewItem creates an unseen item with the given ID and prompt text.
// It carries the zero scheduling state: unseen items are introduced by the
// session engine in input order and receive real state on their first answer.
func NewItem(id, prompt string) Item {
	return Item{
		ID:     id,
		Prompt: prompt,
	}
}

// clone returns a deep copy of the item. Slice and pointer fields are
// copied so mutations of the copy never reach the original.
func (it Item) clone() Item {
	out := it
	if it.LastReviewed != nil {
		v := *it.LastReviewed
		out.LastReviewed = &v
	}
	if it.History != nil {
		out.History = make([]Attempt, len(it.History))
		copy(out.History, it.History)
	}
	if it.Payload != nil {
		out.Payload = make(json.RawMessage, len(it.Payload))
		copy(out.Payload, it.Payload)
	}
	return out
}
