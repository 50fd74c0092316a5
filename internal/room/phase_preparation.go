package room

import (
	"time"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

// redealTimeoutPayload tags an internal_redeal_timeout action with the
// pending set's generation so a timer left over from an already
// resolved redeal decision is a harmless no-op when it fires.
type redealTimeoutPayload struct{ gen int }

// enterPreparation deals a fresh round, resolves round 1's starter (the
// holder of GENERAL_RED), and broadcasts the set of seats holding a weak
// hand so each can accept or decline a redeal in seat order.
func enterPreparation(r *Room) {
	r.Game.DealRound(r.rng)

	if !r.Game.FirstDealDone {
		r.Game.FirstDealDone = true
		r.Game.RoundStarter = generalRedHolder(r.Game)
	}

	recomputeWeakPending(r)
}

func recomputeWeakPending(r *Room) {
	weak := r.Game.WeakHandSeats()
	if len(weak) == 0 {
		r.Game.WeakPlayersPending = nil
		return
	}
	pending := make(map[int]bool, len(weak))
	for _, seat := range weak {
		pending[seat] = true
	}
	r.Game.WeakPlayersPending = pending

	seats := make([]int, 0, len(weak))
	seats = append(seats, weak...)
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventRoomUpdate,
		RoomCode: r.Code,
		Data:     map[string]any{"weak_hand_seats": seats},
	})
	r.scheduleRedealTimeout()
}

// scheduleRedealTimeout arms the one per-action timeout spec.md §5
// names ("per-action timeouts exist only for the redeal-decision
// phase"). It's tagged with the current redealGen so a timer left over
// from a prior pending set (already resolved by an accept/decline
// sweep) is a no-op when it eventually fires.
func (r *Room) scheduleRedealTimeout() {
	r.redealGen++
	gen := r.redealGen
	time.AfterFunc(r.redealTimeout, func() {
		r.Submit(Action{Type: actionRedealTimeout, Payload: redealTimeoutPayload{gen: gen}})
	})
}

func handlePreparationAction(r *Room, a Action) error {
	switch a.Type {
	case ActionAcceptRedeal:
		return handleAcceptRedeal(r, a)
	case ActionDeclineRedeal:
		return handleDeclineRedeal(r, a)
	default:
		return ErrWrongPhase
	}
}

func handleAcceptRedeal(r *Room, a Action) error {
	seat := r.SeatByID(a.PlayerID)
	if seat == -1 || !r.Game.WeakPlayersPending[seat] {
		return ErrNoRedealPending
	}
	r.Game.RedealMultiplier *= 2
	r.Game.RoundStarter = seat
	r.Game.WeakPlayersPending = nil
	r.Game.Redealt = true

	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventRoomUpdate,
		RoomCode: r.Code,
		Data: map[string]any{
			"redeal_accepted_by": seat,
			"redeal_multiplier":  r.Game.RedealMultiplier,
		},
	})
	return nil
}

func handleDeclineRedeal(r *Room, a Action) error {
	seat := r.SeatByID(a.PlayerID)
	if seat == -1 || !r.Game.WeakPlayersPending[seat] {
		return ErrNoRedealPending
	}
	delete(r.Game.WeakPlayersPending, seat)
	return nil
}

// handleRedealTimeout auto-declines every seat still pending a redeal
// decision when its generation's timer fires, so a slow or absent
// player never stalls the round. A stale timer (the pending set this
// generation was armed for has already resolved) is ignored.
func handleRedealTimeout(r *Room, a Action) {
	payload, ok := a.Payload.(redealTimeoutPayload)
	if !ok || payload.gen != r.redealGen || r.Game.Phase != liapgame.PhasePreparation {
		return
	}
	for seat := range r.Game.WeakPlayersPending {
		delete(r.Game.WeakPlayersPending, seat)
	}
}

// checkPreparationTransition re-enters PREPARATION for an accepted
// redeal (clearing and recomputing weak hands against the new deal), or
// moves on to DECLARATION once every weak seat has declined.
func checkPreparationTransition(r *Room) (liapgame.Phase, bool) {
	if r.Game.Redealt {
		r.Game.Redealt = false
		return liapgame.PhasePreparation, true
	}
	if len(r.Game.WeakPlayersPending) == 0 {
		return liapgame.PhaseDeclaration, true
	}
	return liapgame.PhasePreparation, false
}

// generalRedHolder returns the seat holding the red GENERAL piece, the
// round 1 starter per spec.md §4.4. Every deck contains exactly one, so
// this always finds a seat once hands are dealt.
func generalRedHolder(g *liapgame.Game) int {
	for seat, p := range g.Players {
		for _, piece := range p.Hand {
			if piece.Kind == liapgame.General && piece.Color == liapgame.Red {
				return seat
			}
		}
	}
	return 0
}
