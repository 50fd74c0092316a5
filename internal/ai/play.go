package ai

import (
	"sort"

	"github.com/efreeman/liaptui/pkg/liapgame"
)

// ChoosePlay selects which hand indices to play this turn. When
// requiredCount is 0 (the seat is starting the turn and may choose any
// size), it searches every size from the strongest play type down.
// Otherwise it searches only combinations of the exact required size.
// If no valid combination exists, it falls back to discarding the
// lowest-value pieces so the seat always has a legal move.
func (HeuristicDecider) ChoosePlay(hand []liapgame.Piece, requiredCount int, isStarter bool) []int {
	if len(hand) == 0 {
		return nil
	}

	sizes := []int{requiredCount}
	if isStarter && requiredCount == 0 {
		sizes = []int{6, 5, 4, 3, 2, 1}
	}

	var best []int
	var bestType liapgame.PlayType = liapgame.Invalid
	bestSum := -1

	for _, size := range sizes {
		if size <= 0 || size > len(hand) {
			continue
		}
		indices := make([]int, size)
		for i := range indices {
			indices[i] = i
		}
		for {
			pieces := make([]liapgame.Piece, size)
			for i, idx := range indices {
				pieces[i] = hand[idx]
			}
			if t := liapgame.Classify(pieces); t != liapgame.Invalid {
				sum := 0
				for _, p := range pieces {
					sum += p.Points
				}
				if t > bestType || (t == bestType && sum > bestSum) {
					bestType = t
					bestSum = sum
					best = append([]int(nil), indices...)
				}
			}
			if !nextCombination(indices, len(hand)) {
				break
			}
		}
		if best != nil {
			break
		}
	}

	if best != nil {
		return best
	}

	// No valid combination of the required size: discard the lowest-value
	// pieces so the seat still has a legal (losing) play.
	n := requiredCount
	if n <= 0 || n > len(hand) {
		n = 1
	}
	order := make([]int, len(hand))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return hand[order[i]].Points < hand[order[j]].Points
	})
	discard := append([]int(nil), order[:n]...)
	sort.Ints(discard)
	return discard
}
