package orbit

import "fmt"

// Phase represents the mode of an active practice session.
// Phases only move forward: once New empties, the engine never returns to it.
type Phase int

const (
	PhaseNew       Phase = iota + 1 // Introducing unseen items, FIFO.
	PhaseReinforce                  // Re-drilling seen items by priority.
)

var phaseNames = [...]string{PhaseNew: "NEW", PhaseReinforce: "REINFORCE"}

// String returns the name of the phase ("NEW", "REINFORCE").
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p >= PhaseNew && p <= PhaseReinforce {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// QueueStatus is the outcome of asking the session engine for the next question.
type QueueStatus int

const (
	Ready   QueueStatus = iota + 1 // A question is available now.
	Waiting                        // Work exists but is locked in the penalty box.
	Empty                          // Nothing left; the session naturally concludes.
)

var queueStatusNames = [...]string{Ready: "READY", Waiting: "WAITING", Empty: "EMPTY"}

// String returns the name of the status ("READY", "WAITING", "EMPTY").
// For invalid values it returns "QueueStatus(n)".
func (s QueueStatus) String() string {
	if s >= Ready && s <= Empty {
		return queueStatusNames[s]
	}
	return fmt.Sprintf("QueueStatus(%d)", int(s))
}
