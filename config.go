package orbit

import (
	"fmt"
	"time"
)

// PenaltyDuration is the cool-down applied to an item after a wrong answer
// in a session before it can be shown again. This is deliberate product
// behavior and is not configurable.
const PenaltyDuration = 10 * time.Minute

// Config tunes the retention model and session engine.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	DefaultStability float64 `json:"default_stability"`  // days for brand-new items; zero → 1.0
	StabilityFloor   float64 `json:"stability_floor"`    // minimum stability; zero → 0.1
	MaxIntervalDays  float64 `json:"max_interval_days"`  // cap on the review interval; zero → 365
	DomainFloor      float64 `json:"domain_floor"`       // retention decays toward this, not zero; zero → 15
	GrowthEasy       float64 `json:"growth_easy"`        // stability multiplier, confident recall; zero → 2.5
	GrowthNormal     float64 `json:"growth_normal"`      // stability multiplier, normal recall; zero → 2.0
	GrowthHard       float64 `json:"growth_hard"`        // stability multiplier, strained recall; zero → 1.3
	LapseFactor      float64 `json:"lapse_factor"`       // stability contraction on a wrong answer; zero → 0.3
	MasteryGain      float64 `json:"mastery_gain"`       // mastery increment on a correct answer; zero → 12
	MasteryLoss      float64 `json:"mastery_loss"`       // mastery decrement on a wrong answer; zero → 20
	TooFastDamp      float64 `json:"too_fast_damp"`      // gain multiplier for too-fast correct answers; zero → 0.5
	TooFastRatio     float64 `json:"too_fast_ratio"`     // fraction of target below which an answer is too-fast; zero → 0.3
	SlowRatio        float64 `json:"slow_ratio"`         // multiple of target above which an answer is slow; zero → 2.0
	ReadCharsPerSec  float64 `json:"read_chars_per_sec"` // prompt reading speed for the time target; zero → 15
	TargetMinSec     float64 `json:"target_min_sec"`     // lower clamp on the time target; zero → 3
	TargetMaxSec     float64 `json:"target_max_sec"`     // upper clamp on the time target; zero → 60

	// RetryDelay is how far into the future a wrong answer reschedules
	// the item. Zero → 10 minutes.
	RetryDelay time.Duration `json:"retry_delay"`

	// Clock supplies the session engine's notion of now. Zero → time.Now.
	// Not serialized.
	Clock func() time.Time `json:"-"`
}

// withDefaults returns a copy of cfg with zero-value fields filled in.
func (cfg Config) withDefaults() Config {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&cfg.DefaultStability, 1.0)
	def(&cfg.StabilityFloor, 0.1)
	def(&cfg.MaxIntervalDays, 365)
	def(&cfg.DomainFloor, 15)
	def(&cfg.GrowthEasy, 2.5)
	def(&cfg.GrowthNormal, 2.0)
	def(&cfg.GrowthHard, 1.3)
	def(&cfg.LapseFactor, 0.3)
	def(&cfg.MasteryGain, 12)
	def(&cfg.MasteryLoss, 20)
	def(&cfg.TooFastDamp, 0.5)
	def(&cfg.TooFastRatio, 0.3)
	def(&cfg.SlowRatio, 2.0)
	def(&cfg.ReadCharsPerSec, 15)
	def(&cfg.TargetMinSec, 3)
	def(&cfg.TargetMaxSec, 60)
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 10 * time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return cfg
}

// validate checks a defaults-filled config for out-of-range values.
func (cfg Config) validate() error {
	checks := []struct {
		name string
		v    float64
		lo   float64
		hi   float64
	}{
		{"default_stability", cfg.DefaultStability, 0.01, 1000},
		{"stability_floor", cfg.StabilityFloor, 0.001, 10},
		{"max_interval_days", cfg.MaxIntervalDays, 1, 36500},
		{"domain_floor", cfg.DomainFloor, 0, 99},
		{"growth_easy", cfg.GrowthEasy, 1, 10},
		{"growth_normal", cfg.GrowthNormal, 1, 10},
		{"growth_hard", cfg.GrowthHard, 1, 10},
		{"lapse_factor", cfg.LapseFactor, 0.01, 1},
		{"mastery_gain", cfg.MasteryGain, 0.1, 100},
		{"mastery_loss", cfg.MasteryLoss, 0.1, 100},
		{"too_fast_damp", cfg.TooFastDamp, 0, 1},
		{"too_fast_ratio", cfg.TooFastRatio, 0.01, 0.99},
		{"slow_ratio", cfg.SlowRatio, 1, 100},
		{"read_chars_per_sec", cfg.ReadCharsPerSec, 1, 100},
		{"target_min_sec", cfg.TargetMinSec, 1, 600},
		{"target_max_sec", cfg.TargetMaxSec, 1, 3600},
	}
	for _, c := range checks {
		if c.v < c.lo || c.v > c.hi {
			return fmt.Errorf("%w: %s = %v, bounds [%v, %v]", ErrInvalidConfig, c.name, c.v, c.lo, c.hi)
		}
	}
	if cfg.TargetMinSec > cfg.TargetMaxSec {
		return fmt.Errorf("%w: target_min_sec %v > target_max_sec %v", ErrInvalidConfig, cfg.TargetMinSec, cfg.TargetMaxSec)
	}
	if cfg.RetryDelay < 0 {
		return fmt.Errorf("%w: retry_delay %v must not be negative", ErrInvalidConfig, cfg.RetryDelay)
	}
	return nil
}
