// Package audit implements the optional event audit trail spec.md §6
// allows ("may be written to a durable log keyed by (room_id,
// sequence)"). The engine runs with zero external services by default
// (NoopSink); a Redis or Postgres sink can be wired in when an
// installation wants the trail to survive a restart. Neither sink is
// ever read back to reconstruct a live room — recovering a room's game
// state after a process restart is out of scope (spec.md §1, Non-goal
// "durable storage of completed games").
package audit

import (
	"context"

	"github.com/efreeman/liaptui/internal/broadcast"
)

// Sink receives a copy of every broadcast event, keyed by the room and
// a per-room monotonic sequence (the event's own Version field serves
// as that sequence).
type Sink interface {
	Record(ctx context.Context, roomCode string, event broadcast.Event)
}

// NoopSink discards every event. The default, matching "the engine
// runs with zero external services" from SPEC_FULL.md §6.
type NoopSink struct{}

// Record implements Sink.
func (NoopSink) Record(context.Context, string, broadcast.Event) {}

// Recorder adapts a Sink into a broadcast.Subscriber so it can be
// registered with the Hub like any other listener (a room's own
// players, or this trail, all look the same to Hub.Broadcast).
type Recorder struct {
	roomCode string
	sink     Sink
}

// NewRecorder returns a broadcast.Subscriber that forwards every event
// for roomCode into sink.
func NewRecorder(roomCode string, sink Sink) *Recorder {
	return &Recorder{roomCode: roomCode, sink: sink}
}

// Deliver implements broadcast.Subscriber.
func (r *Recorder) Deliver(event broadcast.Event) {
	r.sink.Record(context.Background(), r.roomCode, event)
}
