package ai

import "github.com/efreeman/liaptui/pkg/liapgame"

// AcceptRedeal decides whether a weak hand accepts a redeal. The
// decision is deterministic: spec.md's 0.8/0.6/0.3 acceptance
// probability tiers collapse to a fixed >=0.6 threshold so the policy
// stays a pure function of its inputs, consistent with the rest of
// this package. A seat leading by 10 or more points always declines,
// since doubling the multiplier only helps a trailing player catch up.
func (HeuristicDecider) AcceptRedeal(hand []liapgame.Piece, ownScore int, opponentScores []int) bool {
	if len(opponentScores) > 0 {
		bestOpp := opponentScores[0]
		for _, opp := range opponentScores[1:] {
			if opp > bestOpp {
				bestOpp = opp
			}
		}
		if ownScore-bestOpp >= 10 {
			return false
		}
	}
	return redealTier(hand) >= 0.6
}

func redealTier(hand []liapgame.Piece) float64 {
	maxPiece, total := 0, 0
	for _, p := range hand {
		total += p.Points
		if p.Points > maxPiece {
			maxPiece = p.Points
		}
	}
	switch {
	case maxPiece <= 9:
		return 0.8
	case total < 60:
		return 0.6
	default:
		return 0.3
	}
}
