package liapgame

import "testing"

func p(kind Kind, color Color) Piece {
	return NewPiece(kind, color)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		pieces []Piece
		want   PlayType
	}{
		{"single", []Piece{p(General, Red)}, Single},
		{"pair same kind and color", []Piece{p(Chariot, Black), p(Chariot, Black)}, Pair},
		{"pair different color invalid", []Piece{p(Chariot, Black), p(Chariot, Red)}, Invalid},
		{"three soldiers same color", []Piece{p(Soldier, Black), p(Soldier, Black), p(Soldier, Black)}, ThreeOfAKind},
		{"straight chariot horse cannon", []Piece{p(Chariot, Black), p(Horse, Black), p(Cannon, Black)}, Straight},
		{"straight mixed group invalid", []Piece{p(General, Black), p(Horse, Black), p(Cannon, Black)}, Invalid},
		{"four soldiers", []Piece{p(Soldier, Red), p(Soldier, Red), p(Soldier, Red), p(Soldier, Red)}, FourOfAKind},
		{
			"extended straight one dup",
			[]Piece{p(Chariot, Black), p(Chariot, Black), p(Horse, Black), p(Cannon, Black)},
			ExtendedStraight,
		},
		{
			"extended straight 5",
			[]Piece{p(Chariot, Red), p(Chariot, Red), p(Horse, Red), p(Horse, Red), p(Cannon, Red)},
			ExtendedStraight5,
		},
		{"five soldiers", []Piece{p(Soldier, Black), p(Soldier, Black), p(Soldier, Black), p(Soldier, Black), p(Soldier, Black)}, FiveOfAKind},
		{
			"double straight",
			[]Piece{p(Chariot, Red), p(Chariot, Red), p(Horse, Red), p(Horse, Red), p(Cannon, Red), p(Cannon, Red)},
			DoubleStraight,
		},
		{"random junk invalid", []Piece{p(Soldier, Black), p(General, Red)}, Invalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.pieces)
			if got != tc.want {
				t.Fatalf("Classify(%v) = %v, want %v", tc.pieces, got, tc.want)
			}
		})
	}
}

func TestClassifyRoundTrip(t *testing.T) {
	// Every valid combination must yield a non-INVALID type, and for the
	// same piece count there must exist a losing play.
	valid := [][]Piece{
		{p(General, Red)},
		{p(Chariot, Black), p(Chariot, Black)},
		{p(Soldier, Red), p(Soldier, Red), p(Soldier, Red)},
		{p(Chariot, Black), p(Chariot, Black), p(Horse, Black), p(Cannon, Black)},
	}
	for _, hand := range valid {
		got := Classify(hand)
		if got == Invalid {
			t.Fatalf("expected valid classification for %v", hand)
		}
		loser := make([]Piece, len(hand))
		for i := range hand {
			loser[i] = p(Soldier, Black)
		}
		if Classify(loser) == got && Compare(loser, hand, 1, 0) == AWins {
			t.Fatalf("expected a losing play of the same count to exist")
		}
	}
}

// S3 — Turn comparison tie on order.
func TestCompare_TieOnOrder(t *testing.T) {
	starter := []Piece{p(Chariot, Black)}  // 7 points
	f1 := []Piece{p(Chariot, Black)}       // 7 points, same type, later order
	plays := []TurnPlay{
		{Seat: 0, Pieces: starter, Order: 0},
		{Seat: 1, Pieces: f1, Order: 1},
		{Seat: 2, Pieces: []Piece{p(Horse, Black)}, Order: 2},
		{Seat: 3, Pieces: []Piece{p(Cannon, Black)}, Order: 3},
	}
	winner := ResolveTurn(plays)
	if winner != 0 {
		t.Fatalf("expected starter (seat 0) to win on order, got seat %d", winner)
	}
}

// S4 — EXTENDED_STRAIGHT scoring: top-3 distinct kind sum decides the winner.
func TestCompare_ExtendedStraightTopThree(t *testing.T) {
	starter := []Piece{p(Chariot, Black), p(Chariot, Black), p(Horse, Black), p(Cannon, Black)} // 7+5+3=15
	follower := []Piece{p(Chariot, Red), p(Horse, Red), p(Cannon, Red), p(Cannon, Red)}          // 8+6+4=18
	plays := []TurnPlay{
		{Seat: 0, Pieces: starter, Order: 0},
		{Seat: 1, Pieces: follower, Order: 1},
	}
	winner := ResolveTurn(plays)
	if winner != 1 {
		t.Fatalf("expected follower (seat 1) to win, got seat %d", winner)
	}
}

func TestResolveTurn_NonMatchingFollowersAutoStarterWins(t *testing.T) {
	plays := []TurnPlay{
		{Seat: 0, Pieces: []Piece{p(Chariot, Black), p(Chariot, Black)}, Order: 0}, // PAIR
		{Seat: 1, Pieces: []Piece{p(Horse, Black)}, Order: 1},                      // wrong count entirely would be rejected before reaching here,
		// but an invalid same-count combination must still lose:
		{Seat: 2, Pieces: []Piece{p(Horse, Black), p(Cannon, Black)}, Order: 2}, // different kinds, not a PAIR -> INVALID
	}
	winner := ResolveTurn(plays)
	if winner != 0 {
		t.Fatalf("expected starter to win automatically, got seat %d", winner)
	}
}

// S5 — Scoring formulas.
func TestScore(t *testing.T) {
	if got := FinalScore(3, 3, 2); got != 16 {
		t.Fatalf("declared 3 captured 3 mult 2: got %d, want 16", got)
	}
	if got := FinalScore(0, 2, 2); got != -4 {
		t.Fatalf("declared 0 captured 2 mult 2: got %d, want -4", got)
	}
	if got := FinalScore(5, 3, 1); got != -2 {
		t.Fatalf("declared 5 captured 3 mult 1: got %d, want -2", got)
	}
	if got := Score(0, 0); got != 3 {
		t.Fatalf("declared 0 captured 0: got %d, want 3", got)
	}
}
