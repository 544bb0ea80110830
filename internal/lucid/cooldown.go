package lucid

import (
	"sync"
	"time"
)

// failureGate throttles remote attempts after a failure. It is a heuristic,
// not a mutual-exclusion guarantee: concurrent callers may both observe
// "not in cooldown" and both attempt the remote call.
type failureGate struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time // zero value means no recorded failure
	now    func() time.Time
}

func newFailureGate(window time.Duration) *failureGate {
	return &failureGate{window: window, now: time.Now}
}

func (g *failureGate) inCooldown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.last.IsZero() && g.now().Sub(g.last) < g.window
}

func (g *failureGate) markFailure() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = g.now()
}

// clear resets the gate. Called on any remote success, including one that
// found nothing.
func (g *failureGate) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = time.Time{}
}
