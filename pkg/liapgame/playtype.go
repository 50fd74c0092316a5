package liapgame

import "sort"

// PlayType identifies the shape of a play. Priority order (low to high)
// matches the iota order: a higher PlayType always beats a lower one
// regardless of points, per spec.md §4.1.
type PlayType int

const (
	Invalid PlayType = iota
	Single
	Pair
	ThreeOfAKind
	Straight
	FourOfAKind
	ExtendedStraight
	ExtendedStraight5
	FiveOfAKind
	DoubleStraight
)

func (t PlayType) String() string {
	switch t {
	case Single:
		return "SINGLE"
	case Pair:
		return "PAIR"
	case ThreeOfAKind:
		return "THREE_OF_A_KIND"
	case Straight:
		return "STRAIGHT"
	case FourOfAKind:
		return "FOUR_OF_A_KIND"
	case ExtendedStraight:
		return "EXTENDED_STRAIGHT"
	case ExtendedStraight5:
		return "EXTENDED_STRAIGHT_5"
	case FiveOfAKind:
		return "FIVE_OF_A_KIND"
	case DoubleStraight:
		return "DOUBLE_STRAIGHT"
	default:
		return "INVALID"
	}
}

// Classify determines the PlayType of a set of pieces. Pure, total,
// deterministic: every input has exactly one classification, with
// INVALID as the catch-all. Order of pieces in the input does not
// matter.
func Classify(pieces []Piece) PlayType {
	switch len(pieces) {
	case 1:
		return Single
	case 2:
		return classifyPair(pieces)
	case 3:
		return classifyThree(pieces)
	case 4:
		return classifyFour(pieces)
	case 5:
		return classifyFive(pieces)
	case 6:
		return classifyDoubleStraight(pieces)
	default:
		return Invalid
	}
}

func sameColor(pieces []Piece) bool {
	if len(pieces) == 0 {
		return false
	}
	c := pieces[0].Color
	for _, p := range pieces[1:] {
		if p.Color != c {
			return false
		}
	}
	return true
}

func countKinds(pieces []Piece) map[Kind]int {
	counts := make(map[Kind]int, len(pieces))
	for _, p := range pieces {
		counts[p.Kind]++
	}
	return counts
}

func classifyPair(pieces []Piece) PlayType {
	if !sameColor(pieces) {
		return Invalid
	}
	if pieces[0].Kind == pieces[1].Kind {
		return Pair
	}
	return Invalid
}

func classifyThree(pieces []Piece) PlayType {
	if !sameColor(pieces) {
		return Invalid
	}
	counts := countKinds(pieces)
	if len(counts) == 1 {
		if _, ok := counts[Soldier]; ok {
			return ThreeOfAKind
		}
		return Invalid
	}
	if isValidStraightSet(counts, 1) {
		return Straight
	}
	return Invalid
}

func classifyFour(pieces []Piece) PlayType {
	if !sameColor(pieces) {
		return Invalid
	}
	counts := countKinds(pieces)
	if len(counts) == 1 {
		if _, ok := counts[Soldier]; ok {
			return FourOfAKind
		}
		return Invalid
	}
	// EXTENDED_STRAIGHT: 4 pieces, one group, exactly one kind duplicated
	// (i.e. 3 distinct kinds across 4 pieces, one appearing twice).
	if isValidStraightSet(counts, 2) {
		return ExtendedStraight
	}
	return Invalid
}

func classifyFive(pieces []Piece) PlayType {
	if !sameColor(pieces) {
		return Invalid
	}
	counts := countKinds(pieces)
	if len(counts) == 1 {
		if _, ok := counts[Soldier]; ok {
			return FiveOfAKind
		}
		return Invalid
	}
	// EXTENDED_STRAIGHT_5: 5 pieces, same group, exactly three distinct kinds.
	if len(counts) == 3 && allSameGroup(counts) {
		return ExtendedStraight5
	}
	return Invalid
}

func classifyDoubleStraight(pieces []Piece) PlayType {
	if !sameColor(pieces) {
		return Invalid
	}
	counts := countKinds(pieces)
	if len(counts) != 3 {
		return Invalid
	}
	for _, k := range []Kind{Chariot, Horse, Cannon} {
		if counts[k] != 2 {
			return Invalid
		}
	}
	return DoubleStraight
}

// isValidStraightSet checks that every kind present belongs to the same
// group and that the kind-count distribution matches the shape selected
// by `extra`. extra == 1 (3-piece STRAIGHT): 3 distinct kinds, each
// count 1. extra == 2 (4-piece EXTENDED_STRAIGHT): 3 distinct kinds from
// one group, exactly one of them appearing twice.
func isValidStraightSet(counts map[Kind]int, extra int) bool {
	if len(counts) != 3 {
		return false
	}
	if !allSameGroup(counts) {
		return false
	}
	total := 0
	dupFound := false
	for _, c := range counts {
		total += c
		switch c {
		case 1:
			// fine
		case 2:
			if extra != 2 || dupFound {
				return false
			}
			dupFound = true
		default:
			return false
		}
	}
	if extra == 1 {
		return total == 3
	}
	return total == 4 && dupFound
}

func allSameGroup(counts map[Kind]int) bool {
	group := 0
	for k := range counts {
		g := groupOf(k)
		if g == 0 {
			return false // SOLDIER can't participate in a STRAIGHT group
		}
		if group == 0 {
			group = g
		} else if group != g {
			return false
		}
	}
	return true
}

// sortedByPointsDesc returns a copy of pieces sorted by points descending.
func sortedByPointsDesc(pieces []Piece) []Piece {
	out := append([]Piece(nil), pieces...)
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out
}
