// Package liapgame implements the immutable piece/deck value types, the
// Game/Player aggregate, and the rule engine (play-type classification,
// comparison, and scoring) for Liap Tui, a four-player trick-taking game.
package liapgame

import "fmt"

// Kind identifies a piece's rank within its color.
type Kind int

const (
	Soldier Kind = iota
	Cannon
	Horse
	Chariot
	Elephant
	Advisor
	General
)

func (k Kind) String() string {
	switch k {
	case Soldier:
		return "SOLDIER"
	case Cannon:
		return "CANNON"
	case Horse:
		return "HORSE"
	case Chariot:
		return "CHARIOT"
	case Elephant:
		return "ELEPHANT"
	case Advisor:
		return "ADVISOR"
	case General:
		return "GENERAL"
	default:
		return "UNKNOWN"
	}
}

// Color is one of the two piece colors.
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "RED"
	}
	return "BLACK"
}

// Piece is an immutable value type: one physical piece in the deck.
type Piece struct {
	Kind   Kind  `json:"kind"`
	Color  Color `json:"color"`
	Points int   `json:"points"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s_%s(%d)", p.Kind, p.Color, p.Points)
}

// basePoints gives the fixed point value for each (Kind, Color) pair, per
// the spec's deck table.
var basePoints = map[Kind]map[Color]int{
	General:  {Red: 14, Black: 13},
	Advisor:  {Red: 12, Black: 11},
	Elephant: {Red: 10, Black: 9},
	Chariot:  {Red: 8, Black: 7},
	Horse:    {Red: 6, Black: 5},
	Cannon:   {Red: 4, Black: 3},
	Soldier:  {Red: 2, Black: 1},
}

// NewPiece constructs a Piece with the canonical point value for its kind/color.
func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color, Points: basePoints[kind][color]}
}

// groupOf returns the STRAIGHT group a kind belongs to (1 or 2), or 0.
// Groups are {GENERAL, ADVISOR, ELEPHANT} and {CHARIOT, HORSE, CANNON}.
func groupOf(k Kind) int {
	switch k {
	case General, Advisor, Elephant:
		return 1
	case Chariot, Horse, Cannon:
		return 2
	default:
		return 0 // SOLDIER has no group
	}
}
