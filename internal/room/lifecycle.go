package room

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/efreeman/liaptui/internal/ai"
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/rs/zerolog"
)

// codeAlphabet excludes no letters; a short 4-letter code is meant to be
// read aloud and typed, not to avoid visual ambiguity at scale (no
// lobby listing to search, per spec.md §1 — a code only needs to be
// unique within the registry at the moment it's minted).
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const codeLength = 4

// Lifecycle wires a Registry, Hub, and per-room config together and
// owns room creation/destruction, the in-memory analogue of the
// teacher's GameRepo.Create/Delete pair plus the host-leaves-lobby and
// idle-cleanup paths unique to an in-memory room.
type Lifecycle struct {
	Registry    *Registry
	Hub         *broadcast.Hub
	Config      Config
	Decider     ai.Decider
	Log         zerolog.Logger
	GracePeriod time.Duration

	// OnRoomCreated, if set, runs once a new room is registered — the
	// hook a caller needs to attach an extra Hub subscriber (e.g. an
	// audit trail recorder) to every room from its first broadcast on.
	OnRoomCreated func(code string)

	rng *rand.Rand

	emptyMu    sync.Mutex
	emptySince map[string]time.Time
}

// NewLifecycle constructs a Lifecycle ready to mint and reap rooms.
func NewLifecycle(reg *Registry, hub *broadcast.Hub, cfg Config, decider ai.Decider, log zerolog.Logger, gracePeriod time.Duration) *Lifecycle {
	return &Lifecycle{
		Registry:    reg,
		Hub:         hub,
		Config:      cfg,
		Decider:     decider,
		Log:         log,
		GracePeriod: gracePeriod,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		emptySince:  make(map[string]time.Time),
	}
}

// CreateRoom mints a fresh room code, constructs its Room, registers
// it, and starts its consumer goroutine.
func (l *Lifecycle) CreateRoom() *Room {
	var code string
	for {
		code = l.generateCode()
		r := New(code, l.Config, l.Decider, l.Hub, l.Log, l.rng.Uint64(), l.rng.Uint64())
		r.OnClosed = l.destroyRoom
		if l.Registry.Add(r) {
			go r.Run()
			if l.OnRoomCreated != nil {
				l.OnRoomCreated(code)
			}
			return r
		}
	}
}

func (l *Lifecycle) generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[l.rng.IntN(len(codeAlphabet))]
	}
	return string(b)
}

// destroyRoom stops a room's consumer goroutine and releases its
// registry slot and Hub subscribers. Registered as the Room's OnClosed
// callback (host-leaves-lobby) and also called directly by the
// idle-cleanup sweep.
func (l *Lifecycle) destroyRoom(code string) {
	r := l.Registry.Get(code)
	if r == nil {
		return
	}
	r.Stop()
	l.Hub.CloseRoom(code)
	l.Registry.Delete(code)

	l.emptyMu.Lock()
	delete(l.emptySince, code)
	l.emptyMu.Unlock()
}

// SweepIdle tears down any room with zero connected humans for at
// least GracePeriod. GracePeriod <= 0 means zero tolerance: a room
// observed with no connected humans is destroyed on this very sweep,
// matching the conservative default spec.md §9's Design Notes call for
// ("collect immediately once a room has zero connected humans") rather
// than disabling collection altogether.
func (l *Lifecycle) SweepIdle() {
	now := time.Now()
	var toDestroy []string

	l.emptyMu.Lock()
	for _, code := range l.Registry.Codes() {
		r := l.Registry.Get(code)
		if r == nil {
			delete(l.emptySince, code)
			continue
		}
		if r.ConnectedHumanCount() > 0 {
			delete(l.emptySince, code)
			continue
		}
		if l.GracePeriod <= 0 {
			toDestroy = append(toDestroy, code)
			continue
		}
		since, tracked := l.emptySince[code]
		if !tracked {
			l.emptySince[code] = now
			continue
		}
		if now.Sub(since) >= l.GracePeriod {
			toDestroy = append(toDestroy, code)
		}
	}
	l.emptyMu.Unlock()

	for _, code := range toDestroy {
		l.destroyRoom(code)
	}
}

// JoinRoom looks up a room by its external code and submits a join
// action for it. Submission is fire-and-forget, like every other
// action: the caller observes the outcome (player_joined or error) via
// its broadcast subscription, not a return value.
func (l *Lifecycle) JoinRoom(code, playerID, name string) (*Room, error) {
	r := l.Registry.Get(code)
	if r == nil {
		return nil, ErrRoomNotFound
	}
	r.Submit(Action{Type: ActionJoinRoom, PlayerID: playerID, Payload: JoinPayload{Name: name}})
	return r, nil
}

// RunIdleSweeper runs SweepIdle on an interval until stop is closed.
// Runs regardless of GracePeriod: a zero grace period still needs the
// ticker to actually observe and collect empty rooms (see SweepIdle).
func (l *Lifecycle) RunIdleSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.SweepIdle()
		case <-stop:
			return
		}
	}
}
