package room

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/efreeman/liaptui/internal/ai"
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
	"github.com/rs/zerolog"
)

// Config bundles the tunables the expanded spec exposes as
// environment variables (SPEC_FULL.md §6).
type Config struct {
	DedupWindow        time.Duration
	TransitionCooldown time.Duration
	RedealTimeout      time.Duration
}

// DefaultConfig matches the documented defaults.
func DefaultConfig() Config {
	return Config{
		DedupWindow:        dedupWindowDefault,
		TransitionCooldown: 50 * time.Millisecond,
		RedealTimeout:      15 * time.Second,
	}
}

// Room is the per-room orchestrator: one Game aggregate, one action
// queue, one consumer goroutine. It is the sole writer of its Game;
// everything else only reads snapshot copies carried in broadcast
// events (spec.md §5).
type Room struct {
	Code string
	Host string // player ID of the current host

	Game    *liapgame.Game
	Decider ai.Decider

	hub *broadcast.Hub
	log zerolog.Logger
	rng *rand.Rand

	actions chan Action
	dedup   *dedupCache
	botDedup *dedupCache
	cooldown time.Duration

	redealTimeout time.Duration
	redealGen     int

	submitMu   sync.Mutex
	lastSubmit map[string]time.Time

	depth int

	stopCh chan struct{}
	doneCh chan struct{}
	closed atomic.Bool

	OnClosed func(code string)
}

const rateLimitMinInterval = 5 * time.Millisecond

// New constructs a Room ready to Run. seed seeds the room's own PRNG
// (shuffling, bot delay sampling) so tests can make it deterministic.
func New(code string, cfg Config, decider ai.Decider, hub *broadcast.Hub, log zerolog.Logger, seed1, seed2 uint64) *Room {
	var players [4]*liapgame.Player
	return &Room{
		Code:       code,
		Game:       liapgame.NewGame(players),
		Decider:    decider,
		hub:        hub,
		log:        log.With().Str("room_id", code).Logger(),
		rng:        rand.New(rand.NewPCG(seed1, seed2)),
		actions:    make(chan Action, actionQueueCapacity),
		dedup:      newDedupCache(cfg.DedupWindow, dedupCacheCapacity),
		botDedup:   newDedupCache(botDedupWindow, dedupCacheCapacity),
		cooldown:      cfg.TransitionCooldown,
		redealTimeout: cfg.RedealTimeout,
		lastSubmit:    make(map[string]time.Time),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Submit enqueues an action for this room's consumer goroutine. A
// duplicate submission within the dedup window, or a burst from one
// source exceeding the per-source rate limit, is silently dropped —
// matching spec.md §4.3 ("producer applies per-source rate limits";
// "identical action within 100ms is dropped"). An action addressed to a
// room whose consumer goroutine has already been stopped (the room was
// torn down) gets a targeted lifecycle error instead of vanishing
// silently into a queue nobody will ever drain, per spec.md §7's
// lifecycle-error taxonomy.
func (r *Room) Submit(a Action) {
	if r.closed.Load() {
		r.emitError(a, ErrRoomClosed)
		return
	}

	a.Timestamp = time.Now()

	if a.PlayerID != "" {
		r.submitMu.Lock()
		last, ok := r.lastSubmit[a.PlayerID]
		tooSoon := ok && a.Timestamp.Sub(last) < rateLimitMinInterval
		if !tooSoon {
			r.lastSubmit[a.PlayerID] = a.Timestamp
		}
		r.submitMu.Unlock()
		if tooSoon {
			return
		}
	}

	if r.dedup.Seen(a.dedupKey()) {
		return
	}

	select {
	case r.actions <- a:
	default:
		r.log.Warn().Str("action", string(a.Type)).Msg("action queue full, dropping")
	}
}

// NotifyConnected submits the internal connection-state action for a
// seat, for use by transport packages that can't name the unexported
// action type directly.
func (r *Room) NotifyConnected(seat int) {
	r.Submit(Action{Type: actionPlayerConnected, Seat: seat})
}

// NotifyDisconnected submits the internal disconnection-state action
// for a seat, for use by transport packages that can't name the
// unexported action type directly.
func (r *Room) NotifyDisconnected(seat int) {
	r.Submit(Action{Type: actionPlayerDisconnected, Seat: seat})
}

// Run drains the action queue until Stop is called. Intended to be run
// in its own goroutine (one per room), the only goroutine that ever
// mutates r.Game.
func (r *Room) Run() {
	defer close(r.doneCh)
	for {
		select {
		case a := <-r.actions:
			r.process(a)
		case <-r.stopCh:
			return
		}
	}
}

// Stop signals the consumer goroutine to exit and waits for it. Once
// stopped, a room never processes another action: Submit rejects with
// ErrRoomClosed from this point on instead of enqueueing onto a queue
// nobody drains.
func (r *Room) Stop() {
	r.closed.Store(true)
	close(r.stopCh)
	<-r.doneCh
}

func (r *Room) process(a Action) {
	r.depth++
	defer func() { r.depth-- }()

	switch a.Type {
	case actionPlayerConnected:
		r.handlePlayerConnected(a)
		r.scheduleBotActions()
		return
	case actionPlayerDisconnected:
		r.handlePlayerDisconnected(a)
		r.scheduleBotActions()
		return
	case ActionLeaveGame:
		r.handleLeaveGame(a)
		r.scheduleBotActions()
		return
	case actionRedealTimeout:
		handleRedealTimeout(r, a)
		r.advance()
		r.scheduleBotActions()
		return
	case ActionJoinRoom:
		// join_room is only legal in the lobby; a room whose phase has
		// already moved on has a fixed four seats for the rest of the
		// game (spec.md §4.7 — mid-game loss is handled by leave_game/
		// disconnect, not by a new player joining).
		if r.Game.Phase != liapgame.PhaseWaiting {
			r.emitError(a, ErrGameNotWaiting)
			return
		}
	}

	h := handlers[r.Game.Phase]
	if h.handleAction == nil {
		r.emitError(a, ErrWrongPhase)
		return
	}
	if err := h.handleAction(r, a); err != nil {
		r.emitError(a, err)
		return
	}
	r.advance()
	r.scheduleBotActions()
}

// handlePlayerConnected restores is_bot from original_is_bot for a
// reconnecting seat, per spec.md §4.6. Host migration only ever moves
// host *away* from a disconnected seat, never back on reconnect.
func (r *Room) handlePlayerConnected(a Action) {
	p := r.Game.Player(a.Seat)
	if p == nil {
		return
	}
	p.Connected = true
	p.IsBot = p.OriginalIsBot
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerReconnected,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": p.Name},
	})
}

// handlePlayerDisconnected stashes original_is_bot, flips the seat to
// bot control, and migrates host if the disconnected seat was host.
func (r *Room) handlePlayerDisconnected(a Action) {
	p := r.Game.Player(a.Seat)
	if p == nil {
		return
	}
	p.Connected = false
	p.OriginalIsBot = p.IsBot
	p.IsBot = true
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerDisconnected,
		RoomCode: r.Code,
		Data: map[string]any{
			"player_name":   p.Name,
			"can_reconnect": true,
			"is_bot":        true,
		},
	})
	if r.Host == p.ID {
		r.migrateHost()
	}
}

// handleLeaveGame converts a seated player to permanent bot control
// mid-game, per spec.md §4.7 ("leave in game: the player is converted
// to bot"). Unlike a disconnect, original_is_bot is not stashed: there
// is no reconnect path back to human control for a voluntary leave.
func (r *Room) handleLeaveGame(a Action) {
	p := r.Game.Player(r.SeatByID(a.PlayerID))
	if p == nil || p.IsBot {
		return
	}
	p.IsBot = true
	p.OriginalIsBot = true
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerLeft,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": p.Name, "seat": p.Seat, "is_bot": true},
	})
	if r.Host == p.ID {
		r.migrateHost()
	}
}

// migrateHost picks the new host per spec.md §4.7: first connected
// human, else any human, else any bot.
func (r *Room) migrateHost() {
	old := r.Host
	var fallbackHuman, fallbackAny *liapgame.Player
	for _, p := range r.Game.Players {
		if p == nil {
			continue
		}
		if !p.IsBot && p.Connected {
			r.Host = p.ID
			r.broadcastHostChanged(old, p.Name)
			return
		}
		if !p.IsBot && fallbackHuman == nil {
			fallbackHuman = p
		}
		if fallbackAny == nil {
			fallbackAny = p
		}
	}
	if fallbackHuman != nil {
		r.Host = fallbackHuman.ID
		r.broadcastHostChanged(old, fallbackHuman.Name)
	} else if fallbackAny != nil {
		r.Host = fallbackAny.ID
		r.broadcastHostChanged(old, fallbackAny.Name)
	}
}

func (r *Room) broadcastHostChanged(oldHostID, newHostName string) {
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventHostChanged,
		RoomCode: r.Code,
		Data:     map[string]any{"old_host": oldHostID, "new_host": newHostName},
	})
}

// SeatByID finds the seat occupied by the given player ID, or -1.
func (r *Room) SeatByID(playerID string) int {
	for seat, p := range r.Game.Players {
		if p != nil && p.ID == playerID {
			return seat
		}
	}
	return -1
}

// SeatByName finds the seat occupied by the given player name, or -1.
func (r *Room) SeatByName(name string) int {
	for seat, p := range r.Game.Players {
		if p != nil && p.Name == name {
			return seat
		}
	}
	return -1
}

// advance repeatedly applies checkTransition/onEnter until the phase
// settles, broadcasting a phase_change event for every transition
// (including a same-phase re-entry, e.g. an accepted redeal or a
// completed turn with cards remaining). A follow-up transition is just
// another iteration of this loop, so no handler calls back into
// advance(). No lock guards it: only the room's consumer goroutine ever
// runs this method. The depth counter process() maintains is not read
// here.
func (r *Room) advance() {
	for {
		h := handlers[r.Game.Phase]
		if h.checkTransition == nil {
			return
		}
		next, ok := h.checkTransition(r)
		if !ok {
			return
		}
		if r.cooldown > 0 {
			time.Sleep(r.cooldown)
		}
		r.Game.Phase = next
		if nh := handlers[next]; nh.onEnter != nil {
			nh.onEnter(r)
		}
		r.broadcastPhaseChange()
	}
}

func (r *Room) emitError(a Action, err error) {
	r.hub.Broadcast(broadcast.Event{
		Type:           broadcast.EventError,
		RoomCode:       r.Code,
		TargetPlayerID: a.PlayerID,
		Data: map[string]any{
			"code":    err.Error(),
			"message": err.Error(),
		},
	})
}

// broadcastPhaseChange builds and sends the phase_change event per
// spec.md §6: phase, round, turn, public per-seat data, plus a private
// hand view sent only to the owning player. The public send and every
// private send are all part of one logical transition, so they share a
// single version reserved once up front rather than each minting its
// own via Hub.Broadcast — otherwise spec.md §8's "exactly one
// phase_change event with a strictly greater version" per transition
// would be violated the moment a room has more than one connected
// human.
func (r *Room) broadcastPhaseChange() {
	publicData := r.publicSnapshot()
	checksum := broadcast.Checksum(publicData)
	version := r.hub.NextVersion(r.Code)

	r.hub.BroadcastVersioned(broadcast.Event{
		Type:     broadcast.EventPhaseChange,
		RoomCode: r.Code,
		Checksum: checksum,
		Data:     publicData,
	}, version)

	for _, p := range r.Game.Players {
		if p == nil || p.IsBot {
			continue
		}
		r.hub.BroadcastVersioned(broadcast.Event{
			Type:           broadcast.EventPhaseChange,
			RoomCode:       r.Code,
			Checksum:       checksum,
			TargetPlayerID: p.ID,
			Data: map[string]any{
				"phase":   r.Game.Phase.String(),
				"my_hand": handView(p.Hand),
			},
		}, version)
	}
}

func (r *Room) publicSnapshot() map[string]any {
	players := make([]map[string]any, 0, 4)
	for seat, p := range r.Game.Players {
		if p == nil {
			continue
		}
		players = append(players, map[string]any{
			"seat":           seat,
			"id":              p.ID,
			"name":            p.Name,
			"is_bot":          p.IsBot,
			"connected":       p.Connected,
			"score":           p.Score,
			"declared":        p.Declared,
			"captured_piles":  p.CapturedPiles,
			"hand_size":       len(p.Hand),
		})
	}
	return map[string]any{
		"phase":             r.Game.Phase.String(),
		"round_number":      r.Game.RoundNumber,
		"turn_number":       r.Game.TurnNumber,
		"redeal_multiplier": r.Game.RedealMultiplier,
		"players_public":    players,
	}
}

func handView(hand []liapgame.Piece) []map[string]any {
	out := make([]map[string]any, len(hand))
	for i, p := range hand {
		out[i] = map[string]any{"kind": p.Kind.String(), "color": p.Color.String(), "points": p.Points}
	}
	return out
}

// ConnectedHumanCount reports how many seated players are human and
// currently connected, used by the lifecycle idle-cleanup sweep.
func (r *Room) ConnectedHumanCount() int {
	count := 0
	for _, p := range r.Game.Players {
		if p != nil && !p.IsBot && p.Connected {
			count++
		}
	}
	return count
}

// OccupiedSeats reports how many seats (human or bot) are filled.
func (r *Room) OccupiedSeats() int {
	count := 0
	for _, p := range r.Game.Players {
		if p != nil {
			count++
		}
	}
	return count
}
