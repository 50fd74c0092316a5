package liapgame

import "math/rand/v2"

// NewDeck returns the fixed 32-piece deck in a deterministic canonical
// order (not shuffled). GENERAL appears once per color; every other
// non-SOLDIER kind appears twice per color; SOLDIER appears five times
// per color.
func NewDeck() []Piece {
	deck := make([]Piece, 0, 32)
	deck = append(deck, NewPiece(General, Red), NewPiece(General, Black))
	nonSoldier := []Kind{Advisor, Elephant, Chariot, Horse, Cannon}
	for _, kind := range nonSoldier {
		for _, color := range []Color{Red, Black} {
			deck = append(deck, NewPiece(kind, color), NewPiece(kind, color))
		}
	}
	for _, color := range []Color{Red, Black} {
		for i := 0; i < 5; i++ {
			deck = append(deck, NewPiece(Soldier, color))
		}
	}
	return deck
}

// Shuffle returns a new slice containing the same pieces in randomized
// order (Fisher-Yates), leaving the input untouched.
func Shuffle(deck []Piece, rng *rand.Rand) []Piece {
	shuffled := make([]Piece, len(deck))
	copy(shuffled, deck)
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal splits a 32-piece deck into four 8-piece hands, one per seat, in
// seat order. Panics if deck does not have exactly 32 pieces — a
// programmer error, not a runtime condition.
func Deal(deck []Piece) [4][]Piece {
	if len(deck) != 32 {
		panic("liapgame: Deal requires a 32-piece deck")
	}
	var hands [4][]Piece
	for seat := 0; seat < 4; seat++ {
		hands[seat] = append([]Piece(nil), deck[seat*8:seat*8+8]...)
	}
	return hands
}

// HasGeneralRed reports whether the hand contains the GENERAL_RED piece.
func HasGeneralRed(hand []Piece) bool {
	for _, p := range hand {
		if p.Kind == General && p.Color == Red {
			return true
		}
	}
	return false
}

// MaxPoints returns the highest point value among the hand's pieces, or 0
// for an empty hand.
func MaxPoints(hand []Piece) int {
	max := 0
	for _, p := range hand {
		if p.Points > max {
			max = p.Points
		}
	}
	return max
}

// IsWeakHand reports whether the hand has no piece worth more than 9
// points (the spec's definition of a weak hand).
func IsWeakHand(hand []Piece) bool {
	return MaxPoints(hand) <= 9
}

// TotalPoints sums the point values of every piece in the hand.
func TotalPoints(hand []Piece) int {
	total := 0
	for _, p := range hand {
		total += p.Points
	}
	return total
}
