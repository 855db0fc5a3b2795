package orbit

import (
	"testing"
	"time"
)

// testClock is a manually advanced clock for driving the engine in tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T, items []Item) (*Engine, *testClock) {
	t.Helper()
	clock := &testClock{now: t0}
	e, err := NewEngine(items, Config{Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, clock
}

func unseen(ids ...string) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = NewItem(id, "prompt for "+id)
	}
	return items
}

func seenWithDue(id string, due time.Time) Item {
	it := NewItem(id, "prompt for "+id)
	it.TotalAttempts = 2
	it.LastWasCorrect = true
	it.Mastery = 60
	it.Stability = 2
	it.NextReview = due
	reviewed := t0.Add(-24 * time.Hour)
	it.LastReviewed = &reviewed
	return it
}

func mustReady(t *testing.T, e *Engine) *Item {
	t.Helper()
	q := e.Next()
	if q.Status != Ready {
		t.Fatalf("Next() = %v, want Ready", q.Status)
	}
	return q.Item
}

// --- Construction ---

func TestNewEnginePartition(t *testing.T) {
	items := append(unseen("a", "b"), seenWithDue("c", t0))
	e, _ := newTestEngine(t, items)

	if e.Phase() != PhaseNew {
		t.Errorf("Phase = %v, want PhaseNew", e.Phase())
	}
	if len(e.newQueue) != 2 {
		t.Errorf("newQueue = %v, want [a b]", e.newQueue)
	}
	if _, ok := e.pool["c"]; !ok {
		t.Error("attempted item c should be in the reinforce pool")
	}
}

func TestNewEngineAllSeenStartsReinforce(t *testing.T) {
	e, _ := newTestEngine(t, []Item{seenWithDue("a", t0), seenWithDue("b", t0)})
	if e.Phase() != PhaseReinforce {
		t.Errorf("Phase = %v, want PhaseReinforce", e.Phase())
	}
}

func TestNewEngineEmpty(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	if e.Phase() != PhaseReinforce {
		t.Errorf("Phase = %v, want PhaseReinforce", e.Phase())
	}
	if q := e.Next(); q.Status != Empty {
		t.Errorf("Next() = %v, want Empty", q.Status)
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	_, err := NewEngine(nil, Config{LapseFactor: 5})
	if err == nil {
		t.Error("NewEngine should reject an out-of-bounds config")
	}
}

func TestNewEngineDuplicateIDs(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a", "a", "b"))
	if len(e.newQueue) != 2 {
		t.Errorf("newQueue = %v, duplicate id should be dropped", e.newQueue)
	}
}

// --- New phase: FIFO ---

func TestNewPhaseFIFO(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a", "b", "c"))

	for _, want := range []string{"a", "b", "c"} {
		it := mustReady(t, e)
		if it.ID != want {
			t.Fatalf("Next() = %s, want %s (FIFO)", it.ID, want)
		}
		e.Submit(it.ID, true)
	}
	if e.Phase() != PhaseReinforce {
		t.Errorf("Phase = %v, want PhaseReinforce after new queue drained", e.Phase())
	}
}

func TestNextIsIdempotentWithoutSubmit(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a", "b"))
	first := mustReady(t, e)
	second := mustReady(t, e)
	if first.ID != second.ID {
		t.Errorf("repeated Next() without Submit returned %s then %s", first.ID, second.ID)
	}
}

// --- Penalty box ---

func TestSubmitWrongSetsExactPenalty(t *testing.T) {
	e, clock := newTestEngine(t, unseen("a"))
	e.Submit("a", false)

	unlock, ok := e.penalty["a"]
	if !ok {
		t.Fatal("wrong answer should place the item in the penalty box")
	}
	if got := unlock.Sub(clock.Now()); got != 10*time.Minute {
		t.Errorf("penalty window = %v, want exactly 10m", got)
	}
	if e.PendingRetries() != 1 {
		t.Errorf("PendingRetries = %d, want 1", e.PendingRetries())
	}
}

func TestSubmitCorrectClearsPenalty(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a"))
	e.Submit("a", false)
	e.Submit("a", true)
	if e.PendingRetries() != 0 {
		t.Errorf("PendingRetries = %d, want 0 after correct retry", e.PendingRetries())
	}
}

func TestSubmitCorrectTwiceIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a"))
	e.Submit("a", false)
	e.Submit("a", true)
	e.Submit("a", true)
	if e.PendingRetries() != 0 {
		t.Errorf("PendingRetries = %d, want 0 (correct submit never re-adds)", e.PendingRetries())
	}
}

func TestNextNeverReturnsLockedItem(t *testing.T) {
	e, clock := newTestEngine(t, []Item{seenWithDue("a", t0.Add(-24*time.Hour))})
	e.Submit("a", false)

	// Poll every minute across the whole window: the locked item must
	// never surface before its unlock time.
	for i := 0; i < 10; i++ {
		q := e.Next()
		if q.Status == Ready {
			t.Fatalf("Next() returned %s while still locked (minute %d)", q.Item.ID, i)
		}
		clock.Advance(time.Minute)
	}
	q := e.Next()
	if q.Status != Ready || q.Item.ID != "a" {
		t.Fatalf("Next() after unlock = %v, want Ready a", q.Status)
	}
}

func TestPenaltyRetryPreemptsNewPhase(t *testing.T) {
	e, clock := newTestEngine(t, unseen("a", "b", "c"))

	it := mustReady(t, e)
	e.Submit(it.ID, false) // a goes to the penalty box

	if got := mustReady(t, e); got.ID != "b" {
		t.Fatalf("Next() = %s, want b while a is locked", got.ID)
	}

	// Once unlocked, the retry pre-empts the remaining new items.
	clock.Advance(PenaltyDuration)
	if got := mustReady(t, e); got.ID != "a" {
		t.Errorf("Next() = %s, want penalty retry a to pre-empt the new queue", got.ID)
	}
}

func TestWaitingReportsSoonestUnlock(t *testing.T) {
	e, clock := newTestEngine(t, unseen("a", "b"))
	it := mustReady(t, e)
	e.Submit(it.ID, false)
	clock.Advance(2 * time.Minute)
	it = mustReady(t, e)
	e.Submit(it.ID, false)

	q := e.Next()
	if q.Status != Waiting {
		t.Fatalf("Next() = %v, want Waiting", q.Status)
	}
	// a unlocks first, 8 minutes out.
	if want := (8 * time.Minute).Milliseconds(); q.WaitMs != want {
		t.Errorf("WaitMs = %d, want %d", q.WaitMs, want)
	}
}

// --- Reinforce phase ---

func TestReinforcePrefersHigherPriority(t *testing.T) {
	overdue := seenWithDue("overdue", t0.Add(-5*24*time.Hour))
	future := seenWithDue("future", t0.Add(5*24*time.Hour))
	e, _ := newTestEngine(t, []Item{future, overdue})

	if got := mustReady(t, e); got.ID != "overdue" {
		t.Errorf("Next() = %s, want the overdue item first", got.ID)
	}
}

func TestReinforceSkipsAnsweredThisSession(t *testing.T) {
	e, _ := newTestEngine(t, []Item{
		seenWithDue("a", t0.Add(-5*24*time.Hour)),
		seenWithDue("b", t0.Add(-1*24*time.Hour)),
	})

	first := mustReady(t, e)
	e.Submit(first.ID, true)
	second := mustReady(t, e)
	if second.ID == first.ID {
		t.Errorf("Next() repeated %s immediately within the session", first.ID)
	}
	e.Submit(second.ID, true)

	if q := e.Next(); q.Status != Empty {
		t.Errorf("Next() = %v, want Empty once every candidate is answered", q.Status)
	}
}

func TestPhaseNeverRevertsToNew(t *testing.T) {
	e, clock := newTestEngine(t, unseen("a", "b"))
	for e.Phase() == PhaseNew {
		it := mustReady(t, e)
		e.Submit(it.ID, true)
	}
	for i := 0; i < 20; i++ {
		e.Next()
		clock.Advance(time.Minute)
		if e.Phase() != PhaseReinforce {
			t.Fatal("phase reverted to PhaseNew")
		}
	}
}

// --- Defensive behavior ---

func TestSubmitUnknownIDIgnored(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a"))
	e.Submit("ghost", false)
	if e.PendingRetries() != 0 {
		t.Error("unknown id should not enter the penalty box")
	}
	if got := mustReady(t, e); got.ID != "a" {
		t.Errorf("Next() = %s, want a", got.ID)
	}
}

func TestUpdateItemRefreshesPriorityInput(t *testing.T) {
	weak := seenWithDue("weak", t0.Add(-24*time.Hour))
	weak.Mastery = 10
	strong := seenWithDue("strong", t0.Add(-24*time.Hour))
	strong.Mastery = 90
	e, _ := newTestEngine(t, []Item{weak, strong})

	// After an external answer, the updated copy drives the ordering.
	boosted := weak
	boosted.Mastery = 100
	e.UpdateItem(boosted)

	if got := mustReady(t, e); got.ID != "strong" {
		t.Errorf("Next() = %s, want strong after weak was boosted to 100", got.ID)
	}
}

func TestUpdateItemUnknownIDIgnored(t *testing.T) {
	e, _ := newTestEngine(t, unseen("a"))
	e.UpdateItem(NewItem("ghost", "x"))
	if _, ok := e.items["ghost"]; ok {
		t.Error("UpdateItem should not add unknown items")
	}
}

// --- End-to-end scenario ---

func TestSessionEndToEnd(t *testing.T) {
	e, clock := newTestEngine(t, unseen("A", "B", "C"))
	m := mustModel(t, Config{})

	// A first (FIFO), answered wrong.
	it := mustReady(t, e)
	if it.ID != "A" {
		t.Fatalf("first question = %s, want A", it.ID)
	}
	updated, _ := m.ApplyAnswer(*it, false, EvalNormal, 4, clock.Now())
	e.Submit("A", false)
	e.UpdateItem(updated)

	if e.PendingRetries() != 1 {
		t.Fatalf("PendingRetries = %d, want 1", e.PendingRetries())
	}

	// B and C follow in order; C answered wrong.
	for _, step := range []struct {
		id      string
		correct bool
	}{{"B", true}, {"C", false}} {
		it = mustReady(t, e)
		if it.ID != step.id {
			t.Fatalf("question = %s, want %s", it.ID, step.id)
		}
		updated, _ = m.ApplyAnswer(*it, step.correct, EvalNormal, 4, clock.Now())
		e.Submit(step.id, step.correct)
		e.UpdateItem(updated)
	}

	if e.Phase() != PhaseReinforce {
		t.Fatalf("Phase = %v, want PhaseReinforce", e.Phase())
	}

	// Everything is answered and A, C are locked: the session waits on A.
	q := e.Next()
	if q.Status != Waiting {
		t.Fatalf("Next() = %v, want Waiting", q.Status)
	}
	if q.WaitMs <= 0 || q.WaitMs > PenaltyDuration.Milliseconds() {
		t.Fatalf("WaitMs = %d, want within (0, %d]", q.WaitMs, PenaltyDuration.Milliseconds())
	}

	// The caller's poll loop: advance past unlocks and retry until done.
	for steps := 0; ; steps++ {
		if steps > 10 {
			t.Fatal("session did not conclude")
		}
		q = e.Next()
		switch q.Status {
		case Ready:
			updated, _ = m.ApplyAnswer(*q.Item, true, EvalNormal, 4, clock.Now())
			e.Submit(q.Item.ID, true)
			e.UpdateItem(updated)
		case Waiting:
			clock.Advance(time.Duration(q.WaitMs) * time.Millisecond)
		case Empty:
			if e.PendingRetries() != 0 {
				t.Errorf("PendingRetries = %d, want 0 at session end", e.PendingRetries())
			}
			return
		}
	}
}
