package broadcast

import "testing"

type recordingSubscriber struct {
	events []Event
}

func (r *recordingSubscriber) Deliver(e Event) {
	r.events = append(r.events, e)
}

func TestBroadcast_DeliversToAllSubscribersInOrder(t *testing.T) {
	hub := NewHub()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	hub.Register("ABCD", "alice", a)
	hub.Register("ABCD", "bob", b)

	hub.Broadcast(Event{Type: EventPhaseChange, RoomCode: "ABCD"})
	hub.Broadcast(Event{Type: EventTurnResolved, RoomCode: "ABCD"})

	for _, sub := range []*recordingSubscriber{a, b} {
		if len(sub.events) != 2 {
			t.Fatalf("expected 2 events delivered, got %d", len(sub.events))
		}
		if sub.events[0].Version != 1 || sub.events[1].Version != 2 {
			t.Fatalf("expected strictly increasing versions, got %d then %d",
				sub.events[0].Version, sub.events[1].Version)
		}
	}
}

func TestBroadcast_TargetedEventOnlyReachesOneSubscriber(t *testing.T) {
	hub := NewHub()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	hub.Register("ABCD", "alice", a)
	hub.Register("ABCD", "bob", b)

	hub.Broadcast(Event{Type: EventError, RoomCode: "ABCD", TargetPlayerID: "alice"})

	if len(a.events) != 1 {
		t.Fatalf("expected alice to receive the targeted event")
	}
	if len(b.events) != 0 {
		t.Fatalf("expected bob not to receive the targeted event")
	}
}

func TestNextVersion_SharedAcrossBroadcastVersionedCalls(t *testing.T) {
	hub := NewHub()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	hub.Register("ABCD", "alice", a)
	hub.Register("ABCD", "bob", b)

	version := hub.NextVersion("ABCD")
	hub.BroadcastVersioned(Event{Type: EventPhaseChange, RoomCode: "ABCD"}, version)
	hub.BroadcastVersioned(Event{Type: EventPhaseChange, RoomCode: "ABCD", TargetPlayerID: "alice"}, version)

	if a.events[0].Version != version || a.events[1].Version != version {
		t.Fatalf("expected both derived events to share version %d, got %d and %d",
			version, a.events[0].Version, a.events[1].Version)
	}
	if b.events[0].Version != version {
		t.Fatalf("expected bob's public event to also carry version %d, got %d", version, b.events[0].Version)
	}

	hub.Broadcast(Event{Type: EventTurnResolved, RoomCode: "ABCD"})
	if a.events[2].Version != version+1 {
		t.Fatalf("expected the next ordinary Broadcast to mint version %d, got %d", version+1, a.events[2].Version)
	}
}

func TestChecksum_StableAcrossMapIterationOrder(t *testing.T) {
	data := map[string]any{"round": 1, "phase": "TURN", "turn": 3}
	c1 := Checksum(data)
	c2 := Checksum(map[string]any{"turn": 3, "phase": "TURN", "round": 1})
	if c1 != c2 {
		t.Fatalf("expected checksum to be independent of key order, got %q vs %q", c1, c2)
	}
}

func TestChecksum_DiffersWhenDataDiffers(t *testing.T) {
	c1 := Checksum(map[string]any{"round": 1})
	c2 := Checksum(map[string]any{"round": 2})
	if c1 == c2 {
		t.Fatalf("expected different data to produce different checksums")
	}
}
