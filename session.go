package orbit

import (
	"sort"
	"time"
)

// NextQuestion is the result of asking the engine for the next question.
// Item is set only when Status is Ready; WaitMs only when Status is Waiting.
type NextQuestion struct {
	Status QueueStatus
	Item   *Item
	WaitMs int64 // milliseconds until the soonest penalty-box unlock.
}

// Engine owns the life cycle of one practice session. It splits items
// into an unseen FIFO queue and a reinforce pool, hands out the next
// question, and defers wrongly answered items into a 10-minute cool-down.
//
// The engine is single-threaded and synchronous: it never sleeps, holds
// no timers, and performs no work between calls. Waiting on the penalty
// box is expressed purely as data; the caller re-polls Next and the
// engine re-evaluates against its clock. Exactly one Engine serves one
// session; discarding the instance ends it.
type Engine struct {
	model    *Model
	items    map[string]Item
	newQueue []string
	pool     map[string]struct{}
	penalty  map[string]time.Time
	answered map[string]struct{}
	phase    Phase
	now      func() time.Time
}

// NewEngine creates a session engine over the given items.
// Items with zero attempts form the FIFO new queue in input order; the
// rest form the reinforce pool. The phase starts at PhaseNew iff the new
// queue is non-empty. Invalid config values return an error.
func NewEngine(items []Item, cfg Config) (*Engine, error) {
	model, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		model:    model,
		items:    make(map[string]Item, len(items)),
		pool:     make(map[string]struct{}),
		penalty:  make(map[string]time.Time),
		answered: make(map[string]struct{}),
		now:      model.cfg.Clock,
	}

	for _, it := range items {
		if _, dup := e.items[it.ID]; dup {
			continue // first occurrence wins
		}
		e.items[it.ID] = it.clone()
		if it.TotalAttempts == 0 {
			e.newQueue = append(e.newQueue, it.ID)
		} else {
			e.pool[it.ID] = struct{}{}
		}
	}

	e.phase = PhaseReinforce
	if len(e.newQueue) > 0 {
		e.phase = PhaseNew
	}
	return e, nil
}

// Submit records the outcome of answering the item with the given id.
// A wrong answer locks the item in the penalty box for exactly ten
// minutes; a correct answer clears any pending penalty. Answering the
// last unseen item flips the phase forward to PhaseReinforce; the phase
// never moves back. Unknown ids are ignored.
func (e *Engine) Submit(id string, correct bool) {
	if _, ok := e.items[id]; !ok {
		return
	}

	e.answered[id] = struct{}{}

	for i, qid := range e.newQueue {
		if qid == id {
			e.newQueue = append(e.newQueue[:i], e.newQueue[i+1:]...)
			break
		}
	}
	e.pool[id] = struct{}{}

	if correct {
		delete(e.penalty, id)
	} else {
		e.penalty[id] = e.now().Add(PenaltyDuration)
	}

	if e.phase == PhaseNew && len(e.newQueue) == 0 {
		e.phase = PhaseReinforce
	}
}

// UpdateItem refreshes the engine's stored copy of an item after the
// caller has applied an answer through the retention model, so that
// reinforcement priorities track the latest state. Unknown ids are
// ignored.
func (e *Engine) UpdateItem(item Item) {
	if _, ok := e.items[item.ID]; !ok {
		return
	}
	e.items[item.ID] = item.clone()
}

// Next returns the next question to show, evaluated in strict priority
// order: unlocked penalty retries pre-empt everything; then the head of
// the new queue during PhaseNew; then the highest-priority reinforce
// candidate not yet answered this session. When only locked retries
// remain it returns Waiting with the time until the soonest unlock; when
// nothing remains it returns Empty.
func (e *Engine) Next() NextQuestion {
	now := e.now()

	// Unlocked penalty retries first, earliest unlock wins.
	if id, ok := e.unlockedRetry(now); ok {
		it := e.items[id]
		return NextQuestion{Status: Ready, Item: &it}
	}

	if e.phase == PhaseNew {
		if id, ok := e.nextNew(); ok {
			it := e.items[id]
			return NextQuestion{Status: Ready, Item: &it}
		}
	}

	if id, ok := e.nextReinforce(now); ok {
		it := e.items[id]
		return NextQuestion{Status: Ready, Item: &it}
	}

	if wait, ok := e.soonestUnlock(now); ok {
		return NextQuestion{Status: Waiting, WaitMs: wait.Milliseconds()}
	}
	return NextQuestion{Status: Empty}
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// PendingRetries returns the number of items currently in the penalty box.
func (e *Engine) PendingRetries() int {
	return len(e.penalty)
}

// unlockedRetry returns the penalty-boxed id whose unlock time has passed,
// preferring the earliest unlock. Entries whose item vanished are dropped.
func (e *Engine) unlockedRetry(now time.Time) (string, bool) {
	var best string
	var bestAt time.Time
	for id, at := range e.penalty {
		if _, ok := e.items[id]; !ok {
			delete(e.penalty, id)
			continue
		}
		if at.After(now) {
			continue
		}
		if best == "" || at.Before(bestAt) || (at.Equal(bestAt) && id < best) {
			best, bestAt = id, at
		}
	}
	return best, best != ""
}

// nextNew returns the head of the new queue, skipping ids whose item is
// missing from the map.
func (e *Engine) nextNew() (string, bool) {
	for len(e.newQueue) > 0 {
		id := e.newQueue[0]
		if _, ok := e.items[id]; ok {
			return id, true
		}
		e.newQueue = e.newQueue[1:]
	}
	return "", false
}

// nextReinforce returns the highest-priority pool candidate that is not
// penalty-boxed and has not been answered this session.
func (e *Engine) nextReinforce(now time.Time) (string, bool) {
	type scored struct {
		id    string
		score float64
	}
	var candidates []scored
	for id := range e.pool {
		if _, locked := e.penalty[id]; locked {
			continue
		}
		if _, done := e.answered[id]; done {
			continue
		}
		it, ok := e.items[id]
		if !ok {
			continue
		}
		candidates = append(candidates, scored{id: id, score: e.model.Priority(it, now)})
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	return candidates[0].id, true
}

// soonestUnlock returns the time until the earliest pending penalty unlock.
func (e *Engine) soonestUnlock(now time.Time) (time.Duration, bool) {
	var best time.Duration
	found := false
	for _, at := range e.penalty {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		if !found || d < best {
			best = d
			found = true
		}
	}
	return best, found
}
