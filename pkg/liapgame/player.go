package liapgame

// Player is one of the four seats in a game. Hands and per-round fields
// are owned by the Player; mutation happens only from the room's state
// machine handlers (see internal/room).
type Player struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Seat            int     `json:"seat"`
	IsBot           bool    `json:"is_bot"`
	Connected       bool    `json:"connected"`
	OriginalIsBot   bool    `json:"-"`
	Score           int     `json:"score"`
	Hand            []Piece `json:"-"`
	Declared        int     `json:"declared"`
	CapturedPiles   int     `json:"captured_piles"`
	ZeroStreak      int     `json:"-"`
	MustDeclareNonZero bool `json:"-"`
}

// RecordDeclaration sets the player's declaration for the round and
// updates their zero-declaration streak per spec.md §9: the streak
// resets to 0 whenever the player declares >= 1, and increments when
// they declare 0.
func (p *Player) RecordDeclaration(value int) {
	p.Declared = value
	if value == 0 {
		p.ZeroStreak++
	} else {
		p.ZeroStreak = 0
	}
	p.MustDeclareNonZero = p.ZeroStreak >= 2
}

// ApplyRoundScore computes this round's score contribution (including the
// redeal multiplier), adds it to the cumulative score, and resets the
// per-round fields.
func (p *Player) ApplyRoundScore(multiplier int) int {
	delta := FinalScore(p.Declared, p.CapturedPiles, multiplier)
	p.Score += delta
	p.Declared = 0
	p.CapturedPiles = 0
	return delta
}

// HasWon reports whether the player's cumulative score meets the win
// threshold.
func (p *Player) HasWon() bool {
	return p.Score >= WinThreshold
}
