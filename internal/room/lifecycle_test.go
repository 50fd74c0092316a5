package room

import (
	"testing"
	"time"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/rs/zerolog"
)

// TestSweepIdle_ZeroGracePeriodDestroysImmediately guards against
// GracePeriod<=0 being treated as "disable the sweep" instead of its
// documented meaning (DESIGN.md: "default 0s — collect immediately once
// a room has zero connected humans").
func TestSweepIdle_ZeroGracePeriodDestroysImmediately(t *testing.T) {
	hub := broadcast.NewHub()
	reg := NewRegistry()
	lc := NewLifecycle(reg, hub, DefaultConfig(), nil, zerolog.Nop(), 0)

	r := lc.CreateRoom()
	code := r.Code

	lc.SweepIdle()

	if reg.Get(code) != nil {
		t.Fatalf("expected a room with zero connected humans to be destroyed on the first sweep under GracePeriod<=0")
	}
}

// TestSweepIdle_PositiveGracePeriodWaits confirms a nonzero grace
// period still behaves as a grace period and not as an immediate
// collection (the zero-tolerance fix must not regress this case).
func TestSweepIdle_PositiveGracePeriodWaits(t *testing.T) {
	hub := broadcast.NewHub()
	reg := NewRegistry()
	lc := NewLifecycle(reg, hub, DefaultConfig(), nil, zerolog.Nop(), time.Hour)

	r := lc.CreateRoom()
	code := r.Code

	lc.SweepIdle()

	if reg.Get(code) == nil {
		t.Fatalf("expected a room within its grace period to survive a sweep")
	}
}
