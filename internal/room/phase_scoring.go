package room

import (
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

// enterScoring applies §4.1's scoring formula to every seat (ApplyRoundScore
// also clears each seat's declared and captured_piles), and carries the
// round's final trick winner forward as next round's starter.
func enterScoring(r *Room) {
	deltas := make(map[string]any, 4)
	for seat, p := range r.Game.Players {
		if p == nil {
			continue
		}
		delta := p.ApplyRoundScore(r.Game.RedealMultiplier)
		deltas[p.ID] = map[string]any{"seat": seat, "delta": delta, "score": p.Score}
	}

	r.Game.RoundStarter = r.Game.CurrentTurnStarter

	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventScoreUpdate,
		RoomCode: r.Code,
		Data:     map[string]any{"deltas": deltas},
	})
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventRoundComplete,
		RoomCode: r.Code,
		Data:     map[string]any{"round_number": r.Game.RoundNumber},
	})
}

func checkScoringTransition(r *Room) (liapgame.Phase, bool) {
	if r.Game.AnyWinner() != -1 {
		return liapgame.PhaseGameOver, true
	}
	r.Game.RedealMultiplier = 1
	r.Game.RoundNumber++
	return liapgame.PhasePreparation, true
}
