package review

import (
	"math"
	"time"

	"github.com/recall-orbit/orbit"
)

// visualFloor is the lowest displayed mastery during the between-cycle
// decay interpolation. The linear fade to a fixed floor is a deliberate
// display heuristic, not a forgetting curve; it exists so a group does
// not show a static 100% between study cycles.
const visualFloor = 40.0

// neverStudiedHorizon is how far in the future the due date of a group
// with no items and no context is placed.
const neverStudiedHorizon = 10 * 365 * 24 * time.Hour

// GroupContext carries group-level review state from a just-completed
// study cycle. When its own due date is meaningfully in the future it
// overrides the items' earliest due date, so a finished cycle does not
// look due again just because one item's own schedule is short.
type GroupContext struct {
	NextReview         time.Time `json:"next_review"`
	LastCycleCompleted time.Time `json:"last_cycle_completed"`
	Mastery            float64   `json:"mastery"`
}

// Summary is the composite review status of one logical group of items.
type Summary struct {
	Status       Status         `json:"status"`
	Tier         Tier           `json:"tier"`
	Priority     int            `json:"priority"`
	Label        string         `json:"label"`
	Breakdown    map[Status]int `json:"breakdown"`
	AvgMastery   float64        `json:"avg_mastery"`
	NextReviewAt time.Time      `json:"next_review_at"`
}

// Aggregate folds the items of one logical group into a single Summary.
//
// The average mastery is the mean current domain over attempted items
// only. The group's effective due date is the earliest item due date —
// one overdue item makes the whole group due — unless the group context's
// own due date lies beyond now+ContextBuffer, in which case it wins.
// Between a completed cycle and the context's due date the displayed
// average fades linearly toward visualFloor.
//
// Empty input without a context yields the never-studied default; with a
// context, the context itself is classified.
func Aggregate(items []orbit.Item, model *orbit.Model, gc *GroupContext, now time.Time) Summary {
	breakdown := map[Status]int{}
	var sum float64
	attempted := 0
	var minDue time.Time
	hasBadDue := false

	for _, it := range items {
		breakdown[StatusOf(it.NextReview, now)]++
		if it.TotalAttempts > 0 {
			sum += model.Domain(it, now)
			attempted++
		}
		if it.NextReview.IsZero() {
			hasBadDue = true
			continue
		}
		if minDue.IsZero() || it.NextReview.Before(minDue) {
			minDue = it.NextReview
		}
	}

	contextWins := gc != nil && gc.NextReview.After(now.Add(ContextBuffer))

	if len(items) == 0 {
		if gc == nil {
			due := now.Add(neverStudiedHorizon)
			return summarize(Future, 0, due, breakdown, now)
		}
		avg := fadeMastery(gc.Mastery, gc, now)
		return summarize(StatusOf(gc.NextReview, now), avg, gc.NextReview, breakdown, now)
	}

	var avg float64
	if attempted > 0 {
		avg = sum / float64(attempted)
	}
	avg = fadeMastery(avg, gc, now)

	due := minDue
	if contextWins {
		due = gc.NextReview
	}

	status := StatusOf(due, now)
	if hasBadDue && !contextWins {
		status = Overdue
	}
	return summarize(status, avg, due, breakdown, now)
}

func summarize(status Status, avg float64, due time.Time, breakdown map[Status]int, now time.Time) Summary {
	tier := TierOf(avg)
	return Summary{
		Status:       status,
		Tier:         tier,
		Priority:     PriorityScore(status, tier),
		Label:        Label(status, due, now),
		Breakdown:    breakdown,
		AvgMastery:   avg,
		NextReviewAt: due,
	}
}

// fadeMastery applies the between-cycle visual decay: starting at the
// computed average when the cycle completed, the displayed value drops
// linearly as time runs toward the context's due date, clamped at
// visualFloor. Averages at or below the floor are shown as-is.
func fadeMastery(avg float64, gc *GroupContext, now time.Time) float64 {
	if gc == nil || gc.LastCycleCompleted.IsZero() || !gc.NextReview.After(now) {
		return avg
	}
	if avg <= visualFloor {
		return avg
	}
	total := gc.NextReview.Sub(gc.LastCycleCompleted)
	if total <= 0 {
		return avg
	}
	elapsed := now.Sub(gc.LastCycleCompleted)
	if elapsed < 0 {
		return avg
	}
	progress := math.Min(1, elapsed.Seconds()/total.Seconds())
	return math.Max(visualFloor, avg-(avg-visualFloor)*progress)
}
