package broadcast

import "sync"

// Subscriber receives events for one player. Implementations decide
// what "receive" means: forward immediately over a live channel, or
// queue for later delivery. The Connection Manager's PlayerConnection
// is the concrete implementation; tests may use a simple recording
// stub.
type Subscriber interface {
	Deliver(Event)
}

// Hub is the per-process broadcast fan-out: one instance serves every
// room. Grounded directly on ws_hub.go's Hub (connections/games maps
// guarded by a mutex, BroadcastToGame iterating registered
// connections); generalized so the registered unit is a Subscriber
// instead of a raw websocket connection.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[string]Subscriber // roomCode -> playerID -> subscriber
	versions    map[string]int                    // roomCode -> last assigned version
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[string]Subscriber),
		versions:    make(map[string]int),
	}
}

// Register attaches a subscriber to a room. Replacing an existing
// registration for the same (room, player) is allowed — a reconnect
// swaps in a new Subscriber without explicit Unregister first.
func (h *Hub) Register(roomCode, playerID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[roomCode] == nil {
		h.subscribers[roomCode] = make(map[string]Subscriber)
	}
	h.subscribers[roomCode][playerID] = sub
}

// Unregister removes a subscriber, e.g. once a room is destroyed.
func (h *Hub) Unregister(roomCode, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers[roomCode], playerID)
	if len(h.subscribers[roomCode]) == 0 {
		delete(h.subscribers, roomCode)
	}
}

// CloseRoom removes every subscriber registration for a room, e.g.
// once it has been destroyed by the registry's idle-cleanup sweep.
func (h *Hub) CloseRoom(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, roomCode)
	delete(h.versions, roomCode)
}

// Broadcast delivers event to every subscriber of event.RoomCode (or
// only event.TargetPlayerID, if set), stamping it with the room's next
// monotonic version first. The room's single consumer goroutine is the
// only caller, so delivery within a room is automatically serialized —
// no separate ordering lock is needed here, matching spec.md §5's
// "broadcasts are serialized per-room" guarantee.
//
// One call mints one version: a producer that must derive several
// events from the same logical transition (a public snapshot plus a
// private per-player view) has to reserve the version once via
// NextVersion and stamp it onto every derived event with
// BroadcastVersioned instead, or each call here would mint its own
// version and split one transition across several version numbers.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	h.versions[event.RoomCode]++
	version := h.versions[event.RoomCode]
	h.mu.Unlock()
	h.deliver(event, version)
}

// NextVersion reserves and returns the next version number for a room
// without delivering anything, for a producer that will stamp that one
// version onto several derived events via BroadcastVersioned.
func (h *Hub) NextVersion(roomCode string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.versions[roomCode]++
	return h.versions[roomCode]
}

// BroadcastVersioned delivers event stamped with an already-reserved
// version (see NextVersion) instead of minting a new one.
func (h *Hub) BroadcastVersioned(event Event, version int) {
	h.deliver(event, version)
}

func (h *Hub) deliver(event Event, version int) {
	event.Version = version

	h.mu.Lock()
	subs := h.subscribers[event.RoomCode]
	targets := make([]Subscriber, 0, len(subs))
	if event.TargetPlayerID != "" {
		if sub, ok := subs[event.TargetPlayerID]; ok {
			targets = append(targets, sub)
		}
	} else {
		for _, sub := range subs {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.Deliver(event)
	}
}

// SubscriberCount reports how many players are currently registered to
// a room, for tests and diagnostics.
func (h *Hub) SubscriberCount(roomCode string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[roomCode])
}
