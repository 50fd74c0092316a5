package conn

import (
	"testing"

	"github.com/efreeman/liaptui/internal/broadcast"
)

type fakeChannel struct {
	sent [][]byte
}

func (f *fakeChannel) Send(msg []byte) error {
	f.sent = append(f.sent, msg)
	return nil
}
func (f *fakeChannel) Recv() <-chan []byte { return nil }
func (f *fakeChannel) Close() error        { return nil }

// S6 — disconnect/reconnect: queued critical events replay in order,
// then live delivery resumes.
func TestManager_ReconnectReplaysQueuedCriticalEventsInOrder(t *testing.T) {
	hub := broadcast.NewHub()
	mgr := NewManager(hub)

	ch1 := &fakeChannel{}
	mgr.Connect("ABCD", "bob", "p-bob", ch1)

	mgr.Disconnect("ABCD", "bob")
	if mgr.Connected("ABCD", "bob") {
		t.Fatalf("expected bob to be disconnected")
	}

	hub.Broadcast(broadcast.Event{Type: broadcast.EventPhaseChange, RoomCode: "ABCD"})
	hub.Broadcast(broadcast.Event{Type: broadcast.EventTurnResolved, RoomCode: "ABCD"})
	hub.Broadcast(broadcast.Event{Type: broadcast.EventPlayerJoined, RoomCode: "ABCD"}) // non-critical, dropped

	ch2 := &fakeChannel{}
	queued, reconnected := mgr.Connect("ABCD", "bob", "p-bob", ch2)
	if !reconnected {
		t.Fatalf("expected Connect to report a reconnect")
	}
	if len(queued) != 2 {
		t.Fatalf("expected 2 queued critical events, got %d", len(queued))
	}
	if queued[0].Type != broadcast.EventPhaseChange || queued[1].Type != broadcast.EventTurnResolved {
		t.Fatalf("queued events out of order: %+v", queued)
	}

	hub.Broadcast(broadcast.Event{Type: broadcast.EventScoreUpdate, RoomCode: "ABCD"})
	if len(ch2.sent) != 1 {
		t.Fatalf("expected live delivery to resume on the new channel, got %d sends", len(ch2.sent))
	}
	if len(ch1.sent) != 0 {
		t.Fatalf("expected no further sends on the stale channel")
	}
}

func TestManager_FreshJoinHasNoQueuedEvents(t *testing.T) {
	hub := broadcast.NewHub()
	mgr := NewManager(hub)
	queued, reconnected := mgr.Connect("ABCD", "alice", "p-alice", &fakeChannel{})
	if reconnected {
		t.Fatalf("expected a fresh join, not a reconnect")
	}
	if len(queued) != 0 {
		t.Fatalf("expected no queued events on first join")
	}
}
