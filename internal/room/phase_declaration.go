package room

import (
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

// enterDeclaration opens the declaration order starting at RoundStarter,
// per spec.md §4.4: the round's starter declares first, then clockwise.
func enterDeclaration(r *Room) {
	r.Game.StartDeclaration()
	r.Game.TurnNumber = 0
}

func handleDeclarationAction(r *Room, a Action) error {
	if a.Type != ActionDeclare {
		return ErrWrongPhase
	}
	seat := r.SeatByID(a.PlayerID)
	if seat == -1 || seat != r.Game.CurrentDeclarer() {
		return ErrNotYourTurn
	}
	payload, _ := a.Payload.(DeclarePayload)
	value := payload.Value

	if value < 0 || value > 8 {
		return ErrInvalidDeclaration
	}
	player := r.Game.Player(seat)
	if value == 0 && player.MustDeclareNonZero {
		return ErrInvalidDeclaration
	}
	if forbidden := r.Game.ForbiddenDeclaration(seat); forbidden != -1 && value == forbidden {
		return ErrInvalidDeclaration
	}

	player.RecordDeclaration(value)
	r.Game.AdvanceDeclarer()

	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventRoomUpdate,
		RoomCode: r.Code,
		Data:     map[string]any{"seat": seat, "declared": value},
	})
	return nil
}

func checkDeclarationTransition(r *Room) (liapgame.Phase, bool) {
	if r.Game.DeclarationComplete() {
		return liapgame.PhaseTurn, true
	}
	return liapgame.PhaseDeclaration, false
}
