package orbit

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Model computes time-decayed retention and post-answer scheduling state.
// It is pure: every method derives its result from the item, the config,
// and the explicit time argument. Malformed item data is clamped, never
// rejected, always biasing toward more review rather than less.
type Model struct {
	cfg Config
}

// NewModel creates a Model from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewModel(cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Domain returns the current time-decayed retention estimate in [0, 100].
// Retention is not stored; it is derived from mastery, stability, and the
// elapsed time since the last answer:
//
//	domain(t) = floor + (mastery - floor) * 0.9^(t / stability)
//
// so retention is 90%-retained after one stability interval and decays
// asymptotically toward the domain floor, never to zero. Returns 0 for
// items that have never been answered.
func (m *Model) Domain(item Item, now time.Time) float64 {
	if item.TotalAttempts == 0 || item.LastReviewed == nil {
		return 0
	}
	mastery := clamp(item.Mastery, 0, 100)
	floor := m.cfg.DomainFloor
	if mastery <= floor {
		return mastery
	}
	elapsed := now.Sub(*item.LastReviewed).Hours() / 24.0
	if elapsed <= 0 {
		return mastery
	}
	stability := item.Stability
	if stability < m.cfg.StabilityFloor {
		stability = m.cfg.StabilityFloor
	}
	r := math.Pow(0.9, elapsed/stability)
	return floor + (mastery-floor)*r
}

// ApplyAnswer produces the item's next scheduling state after a single
// answer. The input item is not mutated; the returned item carries the
// updated state plus one appended attempt record, which is also returned
// for the caller to persist or ship to analytics.
func (m *Model) ApplyAnswer(item Item, correct bool, eval SelfEval, timeTakenSec float64, now time.Time) (Item, Attempt) {
	it := item.clone()

	if !eval.IsValid() {
		eval = EvalNormal
	}
	if math.IsNaN(timeTakenSec) || timeTakenSec < 0 {
		timeTakenSec = 0
	}
	if timeTakenSec > 3600 {
		timeTakenSec = 3600
	}

	target := m.targetSeconds(it.Prompt)
	timing := m.classifyTiming(timeTakenSec, target)

	stability := it.Stability
	if stability <= 0 {
		stability = m.cfg.DefaultStability
	}
	mastery := clamp(it.Mastery, 0, 100)

	if correct {
		stability = math.Min(stability*m.growth(eval), m.cfg.MaxIntervalDays)
		gain := m.cfg.MasteryGain
		if timing == TooFast {
			// Fast and correct may be a guess; reward it less.
			gain *= m.cfg.TooFastDamp
		}
		mastery = math.Min(100, mastery+gain)
		it.NextReview = now.Add(days(stability))
	} else {
		stability = math.Max(m.cfg.StabilityFloor, stability*m.cfg.LapseFactor)
		mastery = math.Max(0, mastery-m.cfg.MasteryLoss)
		it.NextReview = now.Add(m.cfg.RetryDelay)
	}

	it.Stability = stability
	it.Mastery = mastery
	it.LastWasCorrect = correct
	it.LastReviewed = &now
	it.TotalAttempts++

	att := Attempt{
		ID:             uuid.NewString(),
		At:             now,
		WasCorrect:     correct,
		MasteryAfter:   mastery,
		StabilityAfter: stability,
		TimeSec:        timeTakenSec,
		SelfEval:       eval,
		Timing:         timing,
		TargetSec:      target,
		Meta:           nil,
	}
	it.History = append(it.History, att)

	return it, att
}

// Priority scores an item for ordering inside the reinforce pool; higher
// is shown sooner. Overdue, weak, and recently-wrong items float to the
// top. The value has no meaning beyond relative ordering.
func (m *Model) Priority(item Item, now time.Time) float64 {
	var overdueDays float64
	if item.NextReview.IsZero() {
		// No usable due date: fail toward more review.
		overdueDays = m.cfg.MaxIntervalDays
	} else {
		overdueDays = clamp(now.Sub(item.NextReview).Hours()/24.0, -m.cfg.MaxIntervalDays, m.cfg.MaxIntervalDays)
	}

	weakness := (100 - m.Domain(item, now)) / 10

	var wrongBoost float64
	if item.TotalAttempts > 0 && !item.LastWasCorrect && item.LastReviewed != nil {
		hours := math.Max(0, now.Sub(*item.LastReviewed).Hours())
		// 24-hour half-life: a miss this session outranks one from last week.
		wrongBoost = 15 * math.Pow(0.5, hours/24)
	}

	return 2*overdueDays + weakness + wrongBoost
}

// TargetSeconds returns the expected reading/answer time for the item's
// prompt, clamped to the configured range.
func (m *Model) TargetSeconds(item Item) float64 {
	return m.targetSeconds(item.Prompt)
}

func (m *Model) targetSeconds(prompt string) float64 {
	chars := float64(len([]rune(prompt)))
	return clamp(2.0+chars/m.cfg.ReadCharsPerSec, m.cfg.TargetMinSec, m.cfg.TargetMaxSec)
}

func (m *Model) classifyTiming(timeSec, targetSec float64) TimingClass {
	switch {
	case timeSec < m.cfg.TooFastRatio*targetSec:
		return TooFast
	case timeSec > m.cfg.SlowRatio*targetSec:
		return Slow
	default:
		return NormalPace
	}
}

func (m *Model) growth(eval SelfEval) float64 {
	switch eval {
	case EvalEasy:
		return m.cfg.GrowthEasy
	case EvalHard:
		return m.cfg.GrowthHard
	default:
		return m.cfg.GrowthNormal
	}
}

func days(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
