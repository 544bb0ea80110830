package lucid

import (
	"testing"
	"time"
)

func TestFailureGate(t *testing.T) {
	now := time.Now()
	g := newFailureGate(10 * time.Second)
	g.now = func() time.Time { return now }

	if g.inCooldown() {
		t.Error("fresh gate should not be in cooldown")
	}

	g.markFailure()
	if !g.inCooldown() {
		t.Error("expected cooldown right after failure")
	}

	// Just inside the window
	now = now.Add(9 * time.Second)
	if !g.inCooldown() {
		t.Error("expected cooldown 9s after failure")
	}

	// Window elapsed
	now = now.Add(2 * time.Second)
	if g.inCooldown() {
		t.Error("cooldown should have expired after 11s")
	}
}

func TestFailureGate_Clear(t *testing.T) {
	g := newFailureGate(time.Hour)
	g.markFailure()
	g.clear()
	if g.inCooldown() {
		t.Error("clear should end the cooldown immediately")
	}
}
