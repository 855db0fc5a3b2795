package orbit

import "errors"

// Sentinel errors for the orbit package.
// Use errors.Is to check: errors.Is(err, orbit.ErrInvalidConfig)
var (
	ErrInvalidConfig   = errors.New("orbit: config value out of bounds")
	ErrInvalidSelfEval = errors.New("orbit: invalid self-evaluation")
	ErrInvalidTiming   = errors.New("orbit: invalid timing class")
)
