package liapgame

import "math/rand/v2"

// Phase identifies the discrete state of a room's game lifecycle.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePreparation
	PhaseDeclaration
	PhaseTurn
	PhaseScoring
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "WAITING"
	case PhasePreparation:
		return "PREPARATION"
	case PhaseDeclaration:
		return "DECLARATION"
	case PhaseTurn:
		return "TURN"
	case PhaseScoring:
		return "SCORING"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Game is the per-room aggregate: players, hands, scores, round number,
// redeal multiplier, and current phase. It is owned exclusively by its
// Room; all mutation flows through the state machine (internal/room).
type Game struct {
	Players            [4]*Player
	RoundNumber        int
	RoundStarter       int
	CurrentTurnStarter int
	RedealMultiplier   int
	Phase              Phase

	// Declaration phase auxiliary state.
	DeclarationOrder []int // seat order for this round's declarations
	DeclareIndex     int   // index into DeclarationOrder of the current declarer

	// Turn phase auxiliary state.
	CurrentTurnPlays    []TurnPlay
	RequiredPieceCount  int
	TurnNumber          int

	// Preparation phase auxiliary state.
	WeakPlayersPending map[int]bool // seats awaiting a redeal decision
	RedealAccepted     bool
	Redealt            bool // consumed flag: a redeal just happened, re-enter PREPARATION

	// Turn phase auxiliary state (continued).
	TurnJustCompleted bool // consumed flag: a turn just resolved, re-enter TURN

	// Waiting phase auxiliary state.
	StartRequested bool // consumed flag: host triggered start_game

	// FirstDealDone distinguishes the very first deal of the game (whose
	// starter is whoever holds GENERAL_RED) from every later deal, whose
	// starter was already decided by the previous round's last turn
	// winner or by a redeal acceptance.
	FirstDealDone bool
}

// NewGame constructs a Game with four seated players, ready for
// PhasePreparation to deal the first round.
func NewGame(players [4]*Player) *Game {
	return &Game{
		Players:          players,
		RoundNumber:      0,
		RedealMultiplier: 1,
		Phase:            PhaseWaiting,
	}
}

// Player returns the player at the given seat, or nil if out of range.
func (g *Game) Player(seat int) *Player {
	if seat < 0 || seat > 3 {
		return nil
	}
	return g.Players[seat]
}

// DeclaredSum returns the sum of all four players' current declarations.
func (g *Game) DeclaredSum() int {
	sum := 0
	for _, p := range g.Players {
		sum += p.Declared
	}
	return sum
}

// IsLastDeclarer reports whether the given seat is the fourth (final)
// declarer in this round's declaration order.
func (g *Game) IsLastDeclarer(seat int) bool {
	return len(g.DeclarationOrder) == 4 && g.DeclarationOrder[3] == seat
}

// ForbiddenDeclaration returns the single declaration value that would
// make the sum across all four players equal 8, applicable only to the
// round's last declarer. Returns -1 if not applicable (no meaningful
// single forbidden value otherwise).
func (g *Game) ForbiddenDeclaration(seat int) int {
	if !g.IsLastDeclarer(seat) {
		return -1
	}
	others := 0
	for _, s := range g.DeclarationOrder[:3] {
		others += g.Players[s].Declared
	}
	forbidden := 8 - others
	if forbidden < 0 || forbidden > 8 {
		return -1
	}
	return forbidden
}

// DealRound shuffles a fresh deck and deals 8 pieces to each player, in
// seat order. It does not change the phase or round number; callers
// decide when to invoke it (initial deal, and again after an accepted
// redeal).
func (g *Game) DealRound(rng *rand.Rand) {
	deck := Shuffle(NewDeck(), rng)
	hands := Deal(deck)
	for seat, p := range g.Players {
		p.Hand = hands[seat]
	}
}

// WeakHandSeats returns the seats whose current hand is a weak hand.
func (g *Game) WeakHandSeats() []int {
	var seats []int
	for seat, p := range g.Players {
		if IsWeakHand(p.Hand) {
			seats = append(seats, seat)
		}
	}
	return seats
}

// StartDeclaration initializes the declaration order starting at
// RoundStarter, clockwise, and resets the per-round declaration index.
func (g *Game) StartDeclaration() {
	order := make([]int, 4)
	for i := 0; i < 4; i++ {
		order[i] = (g.RoundStarter + i) % 4
	}
	g.DeclarationOrder = order
	g.DeclareIndex = 0
}

// CurrentDeclarer returns the seat whose turn it is to declare, or -1 if
// declaration is complete.
func (g *Game) CurrentDeclarer() int {
	if g.DeclareIndex >= len(g.DeclarationOrder) {
		return -1
	}
	return g.DeclarationOrder[g.DeclareIndex]
}

// AdvanceDeclarer moves to the next declarer.
func (g *Game) AdvanceDeclarer() {
	g.DeclareIndex++
}

// DeclarationComplete reports whether all four players have declared.
func (g *Game) DeclarationComplete() bool {
	return g.DeclareIndex >= len(g.DeclarationOrder)
}

// AllHandsEmpty reports whether every player's hand is empty (the TURN
// phase's exit condition).
func (g *Game) AllHandsEmpty() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// TotalHandSize sums the piece count across all hands (invariant check:
// should equal 32 at phase start, 0 at TURN's end).
func (g *Game) TotalHandSize() int {
	total := 0
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}

// AnyWinner returns the seat of the first player whose cumulative score
// meets the win threshold, or -1 if none.
func (g *Game) AnyWinner() int {
	for seat, p := range g.Players {
		if p.HasWon() {
			return seat
		}
	}
	return -1
}

// RemoveFromHand removes the pieces at the given indices from the
// player's hand (indices must be valid and distinct; validated by the
// caller before this is invoked) and returns the removed pieces in
// index order.
func RemoveFromHand(hand []Piece, indices []int) ([]Piece, []Piece) {
	remove := make(map[int]bool, len(indices))
	for _, i := range indices {
		remove[i] = true
	}
	played := make([]Piece, 0, len(indices))
	remaining := make([]Piece, 0, len(hand)-len(indices))
	for i, p := range hand {
		if remove[i] {
			played = append(played, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	return played, remaining
}
