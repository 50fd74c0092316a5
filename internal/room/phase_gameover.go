package room

import "github.com/efreeman/liaptui/internal/broadcast"

// enterGameOver broadcasts final standings. GAME_OVER is terminal: no
// handleAction or checkTransition is registered for it, so the room's
// consumer goroutine keeps running (late-arriving actions get an
// ErrWrongPhase error, since the phase has no handleAction) until the
// room is torn down.
func enterGameOver(r *Room) {
	standings := make([]map[string]any, 0, 4)
	for seat, p := range r.Game.Players {
		if p == nil {
			continue
		}
		standings = append(standings, map[string]any{
			"seat":  seat,
			"name":  p.Name,
			"score": p.Score,
		})
	}
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventGameOver,
		RoomCode: r.Code,
		Data:     map[string]any{"standings": standings},
	})
}
