// Package orbit implements the scheduling core of a spaced-repetition
// study application.
//
// orbit provides a pure-Go retention Model for computing time-decayed
// retention ("domain") and post-answer scheduling state, and a session
// Engine that drives a single practice session: unseen items first, then
// priority drilling of seen material with a penalty-box retry cycle for
// wrong answers. The orbit/review subpackage classifies and aggregates
// review status for groups of items outside a session.
//
// Basic usage:
//
//	m, err := orbit.NewModel(orbit.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	item := orbit.NewItem("q1", "What is the capital of France?")
//	item, attempt := m.ApplyAnswer(item, true, orbit.EvalNormal, 7, time.Now())
package orbit
