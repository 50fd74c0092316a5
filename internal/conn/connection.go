package conn

import (
	"encoding/json"
	"sync"

	"github.com/efreeman/liaptui/internal/broadcast"
)

// maxQueuedCritical bounds the per-player critical-event replay queue
// per spec.md §5's resource bounds (per-player queue <= 100 entries).
const maxQueuedCritical = 100

// PlayerConnection is one player's live-or-queued event sink. It
// implements broadcast.Subscriber: while connected, events are encoded
// and written to the live Channel; while disconnected, only critical
// events are retained (bounded, oldest dropped first) for replay on
// reconnect. Corresponds to one websocket connection's worth of state
// in the teacher's Hub, but keyed by player identity instead of by the
// raw connection pointer so it survives a reconnect.
type PlayerConnection struct {
	mu        sync.Mutex
	roomCode  string
	playerID  string
	channel   Channel
	connected bool
	queue     []broadcast.Event
}

func newPlayerConnection(roomCode, playerID string) *PlayerConnection {
	return &PlayerConnection{roomCode: roomCode, playerID: playerID}
}

// Deliver implements broadcast.Subscriber.
func (p *PlayerConnection) Deliver(event broadcast.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.connected && p.channel != nil {
		p.sendLocked(event)
		return
	}
	if !broadcast.IsCritical(event.Type) {
		return
	}
	p.queue = append(p.queue, event)
	if len(p.queue) > maxQueuedCritical {
		p.queue = p.queue[1:]
	}
}

func (p *PlayerConnection) sendLocked(event broadcast.Event) {
	encoded, err := json.Marshal(struct {
		Event    broadcast.EventType `json:"event"`
		Version  int                 `json:"version"`
		Checksum string              `json:"checksum,omitempty"`
		Data     map[string]any      `json:"data"`
	}{event.Type, event.Version, event.Checksum, event.Data})
	if err != nil {
		return
	}
	// Best-effort: a send error here means the channel just dropped;
	// the transport's own read loop will notice and report disconnect
	// through the Manager.
	_ = p.channel.Send(encoded)
}

// attach marks the connection live on the given channel and drains any
// queued critical events, returning them in order for the caller to
// forward as a queued_messages envelope before resuming live delivery.
func (p *PlayerConnection) attach(ch Channel) []broadcast.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channel = ch
	p.connected = true
	queued := p.queue
	p.queue = nil
	return queued
}

// detach marks the connection disconnected; subsequent critical events
// are queued instead of delivered live.
func (p *PlayerConnection) detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channel = nil
	p.connected = false
}

// Connected reports whether the player currently has a live channel.
func (p *PlayerConnection) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}
