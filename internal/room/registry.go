package room

import (
	"sync"

	"github.com/efreeman/liaptui/pkg/liapgame"
)

// Registry is the in-memory analogue of the teacher's GameRepo: Create,
// FindByID/Get, ListOpen, Delete, but backed by a concurrent map over an
// actual room instead of a row in Postgres — a room lives entirely in
// process memory for the duration of its game.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Add registers a room under its code. Returns false if the code is
// already taken.
func (reg *Registry) Add(r *Room) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[r.Code]; exists {
		return false
	}
	reg.rooms[r.Code] = r
	return true
}

// Get returns the room for a code, or nil if none exists.
func (reg *Registry) Get(code string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// Delete removes a room from the registry.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// ListOpen returns every room still in its lobby (WAITING phase),
// mirroring GameRepo.ListOpen's "status = waiting" filter.
func (reg *Registry) ListOpen() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var open []*Room
	for _, r := range reg.rooms {
		if r.Game.Phase == liapgame.PhaseWaiting {
			open = append(open, r)
		}
	}
	return open
}

// Codes returns every currently registered room code, for diagnostics
// and the idle-cleanup sweep.
func (reg *Registry) Codes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	codes := make([]string, 0, len(reg.rooms))
	for code := range reg.rooms {
		codes = append(codes, code)
	}
	return codes
}
