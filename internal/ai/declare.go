package ai

import (
	"math"

	"github.com/efreeman/liaptui/pkg/liapgame"
)

// combo is a candidate non-SINGLE play found in the hand during
// declaration planning.
type combo struct {
	size int
	typ  liapgame.PlayType
	sum  int
}

// Declare implements the declaration algorithm of spec.md §4.2, steps
// 1-9, in order.
func (HeuristicDecider) Declare(hand []liapgame.Piece, ctx DeclarationContext) int {
	// Step 1: pile room.
	prevSum := 0
	for _, d := range ctx.PreviousDeclarations {
		prevSum += d
	}
	pileRoom := 8 - prevSum
	if pileRoom < 0 {
		pileRoom = 0
	}

	// Step 2: field strength.
	field := fieldStrength(ctx.PreviousDeclarations)

	// Step 3: enumerate valid non-SINGLE combos, retain only "strong" ones.
	allCombos := enumerateCombos(hand)
	var strongCombos []combo
	for _, c := range allCombos {
		if c.typ >= liapgame.ThreeOfAKind || (c.typ == liapgame.Pair && c.sum > 12) {
			strongCombos = append(strongCombos, c)
		}
	}

	// Step 4: opener score.
	openerScore := 0.0
	for _, piece := range hand {
		switch {
		case piece.Points >= 13:
			openerScore += 1.0
		case piece.Points >= 11:
			openerScore += openerWeight(field)
		}
	}
	hasReliableOpener := openerScore > 0

	// Step 5: filter combos to the viable set.
	hasGeneralRed := liapgame.HasGeneralRed(hand)
	opponentOpportunity := false
	for _, d := range ctx.PreviousDeclarations {
		if d >= 3 {
			opponentOpportunity = true
			break
		}
	}
	var viable []combo
	for _, c := range strongCombos {
		if c.size > pileRoom {
			continue
		}
		if ctx.IsStarter || hasReliableOpener || hasGeneralRed || opponentOpportunity {
			viable = append(viable, c)
		}
	}

	// Step 6: base score.
	comboSizeSum := 0
	for _, c := range viable {
		comboSizeSum += c.size
	}
	base := float64(comboSizeSum) + math.Floor(openerScore)
	base = clampF(base, 0, float64(pileRoom))

	// Step 7: GENERAL_RED-in-hand adjustments.
	if hasGeneralRed {
		if field == FieldWeak {
			// Weak field: all enumerated combos are usable, not just the
			// otherwise-viable subset.
			sizeSum := 0
			for _, c := range strongCombos {
				if c.size <= pileRoom {
					sizeSum += c.size
				}
			}
			base = clampF(float64(sizeSum)+math.Floor(openerScore), 0, float64(pileRoom))
		}
		premiumOpeners := 0
		for _, piece := range hand {
			if piece.Points >= 11 {
				premiumOpeners++
			}
		}
		base += multiOpenerBonus(premiumOpeners)
	}

	value := int(math.Floor(base))

	// Step 8: cap extremes.
	if allPiecesAtLeast(hand, 8) && value > 5 {
		value = 5
	}
	if allPiecesAtMost(hand, 2) && value > 2 {
		value = 2
	}

	// Step 9: clamp, then honor must-declare-nonzero and the
	// last-declarer forbidden-sum constraint.
	value = clampI(value, 0, pileRoom)
	value = clampI(value, 0, 8)

	strongHand := len(strongCombos) > 0 || hasReliableOpener

	// pile_room only shapes the heuristic preference above; the hard
	// legal range for a declaration is always [0,8], and avoiding the
	// forbidden sum-to-8 value takes priority over staying inside
	// pile_room when the two conflict.
	if ctx.MustDeclareNonZero && value == 0 {
		value = nearestAllowed(value, -1, 8, strongHand)
	}

	if forbidden, ok := lastDeclarerForbidden(ctx); ok && value == forbidden {
		value = nearestAllowed(value, forbidden, 8, strongHand)
		if ctx.MustDeclareNonZero && value == 0 {
			value = nearestAllowed(value, forbidden, 8, strongHand)
		}
	}

	return clampI(value, 0, 8)
}

// lastDeclarerForbidden computes the forbidden sum-to-8 value for the
// round's final declarer, derived from the three prior declarations
// already recorded in ctx.PreviousDeclarations.
func lastDeclarerForbidden(ctx DeclarationContext) (int, bool) {
	if ctx.Position != 3 || len(ctx.PreviousDeclarations) != 3 {
		return 0, false
	}
	sum := 0
	for _, d := range ctx.PreviousDeclarations {
		sum += d
	}
	forbidden := 8 - sum
	if forbidden < 0 || forbidden > 8 {
		return 0, false
	}
	return forbidden, true
}

// nearestAllowed picks the closest legal value to `from` within [0,
// maxVal], excluding `forbidden` (pass -1 for "no forbidden value, just
// avoid 0") and 0 when the 0 exclusion applies. Ties prefer the higher
// alternative for a strong hand, the lower one otherwise, per spec.md
// §4.2 step 9.
func nearestAllowed(from, forbidden, maxVal int, strongHand bool) int {
	excluded := map[int]bool{}
	if forbidden >= 0 {
		excluded[forbidden] = true
	}
	if from == 0 || forbidden == 0 {
		excluded[0] = true
	}
	for distance := 1; distance <= maxVal+1; distance++ {
		lo, hi := from-distance, from+distance
		loOK := lo >= 0 && lo <= maxVal && !excluded[lo]
		hiOK := hi >= 0 && hi <= maxVal && !excluded[hi]
		switch {
		case loOK && hiOK:
			if strongHand {
				return hi
			}
			return lo
		case hiOK:
			return hi
		case loOK:
			return lo
		}
	}
	return from
}

func openerWeight(field FieldStrength) float64 {
	switch field {
	case FieldWeak:
		return 1.0
	case FieldStrong:
		return 0.7
	default:
		return 0.85
	}
}

func multiOpenerBonus(premiumOpeners int) float64 {
	switch {
	case premiumOpeners >= 4:
		return 1.0
	case premiumOpeners == 3:
		return 0.8
	case premiumOpeners == 2:
		return 0.6
	default:
		return 0
	}
}

func allPiecesAtLeast(hand []liapgame.Piece, points int) bool {
	if len(hand) == 0 {
		return false
	}
	for _, p := range hand {
		if p.Points < points {
			return false
		}
	}
	return true
}

func allPiecesAtMost(hand []liapgame.Piece, points int) bool {
	if len(hand) == 0 {
		return false
	}
	for _, p := range hand {
		if p.Points > points {
			return false
		}
	}
	return true
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// enumerateCombos finds every valid non-SINGLE combination of 2..6
// pieces in the hand, classified by the rule engine.
func enumerateCombos(hand []liapgame.Piece) []combo {
	var combos []combo
	n := len(hand)
	for size := 2; size <= 6 && size <= n; size++ {
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
				for _, piece := range pieces {
					sum += piece.Points
				}
				combos = append(combos, combo{size: size, typ: t, sum: sum})
			}
			if !nextCombination(indices, n) {
				break
			}
		}
	}
	return combos
}

// nextCombination advances indices (a strictly increasing slice of
// indices into [0,n)) to the next combination in lexicographic order.
// Returns false when there is no next combination.
func nextCombination(indices []int, n int) bool {
	k := len(indices)
	i := k - 1
	for i >= 0 && indices[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	indices[i]++
	for j := i + 1; j < k; j++ {
		indices[j] = indices[j-1] + 1
	}
	return true
}
