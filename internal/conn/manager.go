package conn

import (
	"sync"

	"github.com/efreeman/liaptui/internal/broadcast"
)

// Manager tracks one PlayerConnection per (room, player name) and
// registers/unregisters it with the broadcast Hub as channels come and
// go. One Manager serves the whole process, mirroring the teacher's
// single process-wide Hub.
type Manager struct {
	hub *broadcast.Hub

	mu          sync.Mutex
	connections map[string]*PlayerConnection // "roomCode/playerName" -> connection
}

// NewManager constructs a Manager backed by hub.
func NewManager(hub *broadcast.Hub) *Manager {
	return &Manager{hub: hub, connections: make(map[string]*PlayerConnection)}
}

func key(roomCode, playerName string) string { return roomCode + "/" + playerName }

// Connect attaches ch as the live channel for (roomCode, playerName),
// creating the PlayerConnection on first contact. It returns any
// critical events queued while the player was disconnected (nil on a
// fresh join) and whether this was a reconnect to an existing session.
func (m *Manager) Connect(roomCode, playerName, playerID string, ch Channel) (queued []broadcast.Event, reconnected bool) {
	m.mu.Lock()
	k := key(roomCode, playerName)
	pc, exists := m.connections[k]
	if !exists {
		pc = newPlayerConnection(roomCode, playerID)
		m.connections[k] = pc
	}
	m.mu.Unlock()

	queued = pc.attach(ch)
	m.hub.Register(roomCode, playerID, pc)
	return queued, exists
}

// Disconnect marks (roomCode, playerName) disconnected. The
// PlayerConnection stays registered with the Hub so subsequent
// critical events are queued rather than lost, and Connect can later
// reattach a fresh channel to the same queue.
func (m *Manager) Disconnect(roomCode, playerName string) {
	m.mu.Lock()
	pc, ok := m.connections[key(roomCode, playerName)]
	m.mu.Unlock()
	if ok {
		pc.detach()
	}
}

// Connected reports whether a player currently has a live channel.
func (m *Manager) Connected(roomCode, playerName string) bool {
	m.mu.Lock()
	pc, ok := m.connections[key(roomCode, playerName)]
	m.mu.Unlock()
	return ok && pc.Connected()
}

// Forget removes all connection state for a room, e.g. once it has
// been destroyed.
func (m *Manager) Forget(roomCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := roomCode + "/"
	for k := range m.connections {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.connections, k)
		}
	}
	m.hub.CloseRoom(roomCode)
}
