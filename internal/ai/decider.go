// Package ai implements the pure declaration/play/redeal-acceptance
// decision logic for bot-controlled seats. Every exported function here
// is deterministic given its inputs and has no side effects, mirroring
// the teacher's bot.Strategy capability-interface split
// (internal/bot/strategy.go in the example pack) adapted to closed-form
// arithmetic instead of move search.
package ai

import "github.com/efreeman/liaptui/pkg/liapgame"

// DeclarationContext carries everything the declaration algorithm needs
// beyond the hand itself.
type DeclarationContext struct {
	Position            int   // 0..3, position in this round's declaration order
	PreviousDeclarations []int // declarations already made this round, in order
	MustDeclareNonZero   bool
	RedealMultiplier     int
	OwnScore             int
	OpponentScores       []int
	IsStarter            bool
}

// FieldStrength classifies the aggregate strength of prior declarations.
type FieldStrength int

const (
	FieldNormal FieldStrength = iota
	FieldWeak
	FieldStrong
)

// fieldStrength computes field strength from previous declarations per
// spec.md §4.2 step 2: empty -> normal; avg <= 1.0 -> weak; avg >= 3.5 ->
// strong; else normal.
func fieldStrength(previous []int) FieldStrength {
	if len(previous) == 0 {
		return FieldNormal
	}
	sum := 0
	for _, d := range previous {
		sum += d
	}
	avg := float64(sum) / float64(len(previous))
	switch {
	case avg <= 1.0:
		return FieldWeak
	case avg >= 3.5:
		return FieldStrong
	default:
		return FieldNormal
	}
}

// Decider is implemented by every AI policy; the current engine has one
// concrete implementation (HeuristicDecider) but the interface gives
// future difficulty tiers a seam without overbuilding now.
type Decider interface {
	Declare(hand []liapgame.Piece, ctx DeclarationContext) int
	ChoosePlay(hand []liapgame.Piece, requiredCount int, isStarter bool) []int
	AcceptRedeal(hand []liapgame.Piece, ownScore int, opponentScores []int) bool
}

// HeuristicDecider is the spec-defined deterministic policy.
type HeuristicDecider struct{}

var _ Decider = HeuristicDecider{}
