package room

import (
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

// enterTurn starts a fresh trick: the first trick of the round leads
// with RoundStarter, every later trick leads with the previous trick's
// winner (already stashed in CurrentTurnStarter by handlePlay).
func enterTurn(r *Room) {
	r.Game.TurnNumber++
	r.Game.CurrentTurnPlays = nil
	r.Game.RequiredPieceCount = 0
	if r.Game.TurnNumber == 1 {
		r.Game.CurrentTurnStarter = r.Game.RoundStarter
	}
}

func handleTurnAction(r *Room, a Action) error {
	if a.Type != ActionPlay {
		return ErrWrongPhase
	}
	seat := r.SeatByID(a.PlayerID)
	expected := (r.Game.CurrentTurnStarter + len(r.Game.CurrentTurnPlays)) % 4
	if seat == -1 || seat != expected {
		return ErrNotYourTurn
	}

	payload, _ := a.Payload.(PlayPayload)
	player := r.Game.Player(seat)
	pieces, err := validateIndices(player.Hand, payload.Indices)
	if err != nil {
		return err
	}

	isStarter := len(r.Game.CurrentTurnPlays) == 0
	if isStarter {
		if liapgame.Classify(pieces) == liapgame.Invalid {
			return ErrInvalidPlay
		}
		r.Game.RequiredPieceCount = len(pieces)
	} else if len(pieces) != r.Game.RequiredPieceCount {
		return ErrWrongPieceCount
	}

	played, remaining := liapgame.RemoveFromHand(player.Hand, payload.Indices)
	player.Hand = remaining
	r.Game.CurrentTurnPlays = append(r.Game.CurrentTurnPlays, liapgame.TurnPlay{
		Seat:   seat,
		Pieces: played,
		Order:  len(r.Game.CurrentTurnPlays),
	})

	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventRoomUpdate,
		RoomCode: r.Code,
		Data:     map[string]any{"seat": seat, "piece_count": len(played)},
	})

	if len(r.Game.CurrentTurnPlays) == 4 {
		resolveTrick(r)
	}
	return nil
}

func resolveTrick(r *Room) {
	winner := liapgame.ResolveTurn(r.Game.CurrentTurnPlays)
	won := r.Game.Player(winner)
	won.CapturedPiles += r.Game.RequiredPieceCount
	r.Game.CurrentTurnStarter = winner
	r.Game.TurnJustCompleted = true

	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventTurnResolved,
		RoomCode: r.Code,
		Data: map[string]any{
			"winner_seat":  winner,
			"piece_count":  r.Game.RequiredPieceCount,
			"turn_number":  r.Game.TurnNumber,
		},
	})
}

func checkTurnTransition(r *Room) (liapgame.Phase, bool) {
	if r.Game.AllHandsEmpty() {
		return liapgame.PhaseScoring, true
	}
	if r.Game.TurnJustCompleted {
		r.Game.TurnJustCompleted = false
		return liapgame.PhaseTurn, true
	}
	return liapgame.PhaseTurn, false
}

// validateIndices checks that indices are in range, distinct, and
// non-empty, returning the referenced pieces in the given order.
func validateIndices(hand []liapgame.Piece, indices []int) ([]liapgame.Piece, error) {
	if len(indices) == 0 || len(indices) > 6 {
		return nil, ErrWrongPieceCount
	}
	seen := make(map[int]bool, len(indices))
	pieces := make([]liapgame.Piece, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(hand) || seen[i] {
			return nil, ErrUnknownPieceIndex
		}
		seen[i] = true
		pieces = append(pieces, hand[i])
	}
	return pieces, nil
}
