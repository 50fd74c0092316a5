package room

import (
	"fmt"
	"time"

	"github.com/efreeman/liaptui/internal/ai"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

// botDedupWindow exceeds the maximum scheduling delay so a decision
// point can only ever be scheduled once, no matter how many
// intervening actions re-trigger scheduleBotActions while the delayed
// submission is still in flight.
const botDedupWindow = 2 * time.Second

const (
	botDelayMin = 500 * time.Millisecond
	botDelaySpan = time.Second
)

// scheduleBotActions inspects whose turn it is in the current phase
// and, if that seat is bot-controlled, computes its decision now (while
// still on the room's single-writer goroutine) and submits it after a
// randomized human-like delay. Called after every processed action so
// declaration/turn advances — which don't always change phase — still
// drive the next bot in seat order, per spec.md §4.3.
func (r *Room) scheduleBotActions() {
	switch r.Game.Phase {
	case liapgame.PhasePreparation:
		r.scheduleRedealDecisions()
	case liapgame.PhaseDeclaration:
		r.scheduleDeclaration()
	case liapgame.PhaseTurn:
		r.schedulePlay()
	}
}

func (r *Room) scheduleRedealDecisions() {
	for seat := range r.Game.WeakPlayersPending {
		p := r.Game.Player(seat)
		if p == nil || !p.IsBot {
			continue
		}
		key := fmt.Sprintf("redeal:%d:%d", r.Game.RoundNumber, seat)
		if r.botDedup.Seen(key) {
			continue
		}
		accept := r.Decider.AcceptRedeal(p.Hand, p.Score, opponentScores(r.Game, seat))
		actionType := ActionDeclineRedeal
		if accept {
			actionType = ActionAcceptRedeal
		}
		r.scheduleSubmit(Action{Type: actionType, PlayerID: p.ID, Seat: seat})
	}
}

func (r *Room) scheduleDeclaration() {
	seat := r.Game.CurrentDeclarer()
	if seat == -1 {
		return
	}
	p := r.Game.Player(seat)
	if p == nil || !p.IsBot {
		return
	}
	key := fmt.Sprintf("declare:%d:%d", r.Game.RoundNumber, seat)
	if r.botDedup.Seen(key) {
		return
	}
	ctx := ai.DeclarationContext{
		Position:              r.Game.DeclareIndex,
		PreviousDeclarations:  previousDeclarations(r.Game),
		MustDeclareNonZero:    p.MustDeclareNonZero,
		RedealMultiplier:      r.Game.RedealMultiplier,
		OwnScore:              p.Score,
		OpponentScores:        opponentScores(r.Game, seat),
		IsStarter:             r.Game.DeclareIndex == 0,
	}
	value := r.Decider.Declare(p.Hand, ctx)
	r.scheduleSubmit(Action{Type: ActionDeclare, PlayerID: p.ID, Seat: seat, Payload: DeclarePayload{Value: value}})
}

func (r *Room) schedulePlay() {
	seat := (r.Game.CurrentTurnStarter + len(r.Game.CurrentTurnPlays)) % 4
	p := r.Game.Player(seat)
	if p == nil || !p.IsBot || len(p.Hand) == 0 {
		return
	}
	key := fmt.Sprintf("play:%d:%d:%d", r.Game.TurnNumber, seat, len(r.Game.CurrentTurnPlays))
	if r.botDedup.Seen(key) {
		return
	}
	isStarter := len(r.Game.CurrentTurnPlays) == 0
	required := r.Game.RequiredPieceCount
	if isStarter {
		required = 0
	}
	indices := r.Decider.ChoosePlay(p.Hand, required, isStarter)
	r.scheduleSubmit(Action{Type: ActionPlay, PlayerID: p.ID, Seat: seat, Payload: PlayPayload{Indices: indices}})
}

// scheduleSubmit delays the given action's submission to simulate
// thinking time, per spec.md §4.3 ("bot scheduler ... submits with a
// randomized delay"). The action's payload was already computed
// against the current game state; only the enqueue is deferred.
func (r *Room) scheduleSubmit(a Action) {
	delay := botDelayMin + time.Duration(r.rng.Float64()*float64(botDelaySpan))
	time.AfterFunc(delay, func() {
		r.Submit(a)
	})
}

func previousDeclarations(g *liapgame.Game) []int {
	out := make([]int, 0, g.DeclareIndex)
	for i := 0; i < g.DeclareIndex; i++ {
		out = append(out, g.Players[g.DeclarationOrder[i]].Declared)
	}
	return out
}

func opponentScores(g *liapgame.Game, seat int) []int {
	out := make([]int, 0, 3)
	for s, p := range g.Players {
		if s == seat || p == nil {
			continue
		}
		out = append(out, p.Score)
	}
	return out
}
