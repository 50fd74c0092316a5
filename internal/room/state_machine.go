package room

import "github.com/efreeman/liaptui/pkg/liapgame"

// phaseHandler groups the three hooks spec.md §4.4 assigns to every
// phase. Modeled as a handler table keyed by Phase instead of a class
// hierarchy, per the Design Notes — each hook is a plain function,
// mirroring the teacher's per-phase methods dispatched from
// resolvePhaseInternal's switch on gs.Phase.
type phaseHandler struct {
	onEnter         func(r *Room)
	handleAction    func(r *Room, a Action) error
	checkTransition func(r *Room) (liapgame.Phase, bool)
}

var handlers map[liapgame.Phase]phaseHandler

func init() {
	handlers = map[liapgame.Phase]phaseHandler{
		liapgame.PhaseWaiting: {
			handleAction:    handleWaitingAction,
			checkTransition: checkWaitingTransition,
		},
		liapgame.PhasePreparation: {
			onEnter:         enterPreparation,
			handleAction:    handlePreparationAction,
			checkTransition: checkPreparationTransition,
		},
		liapgame.PhaseDeclaration: {
			onEnter:         enterDeclaration,
			handleAction:    handleDeclarationAction,
			checkTransition: checkDeclarationTransition,
		},
		liapgame.PhaseTurn: {
			onEnter:         enterTurn,
			handleAction:    handleTurnAction,
			checkTransition: checkTurnTransition,
		},
		liapgame.PhaseScoring: {
			onEnter:         enterScoring,
			checkTransition: checkScoringTransition,
		},
		liapgame.PhaseGameOver: {
			onEnter: enterGameOver,
		},
	}
}
