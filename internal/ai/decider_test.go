package ai

import (
	"testing"

	"github.com/efreeman/liaptui/pkg/liapgame"
)

func piece(kind liapgame.Kind, color liapgame.Color) liapgame.Piece {
	return liapgame.NewPiece(kind, color)
}

// S1 — the last declarer may never pick the value that would bring the
// round's declared sum to exactly 8.
func TestDeclare_LastDeclarerCannotMakeSumEight(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Cannon, liapgame.Black),
		piece(liapgame.Horse, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Red),
		piece(liapgame.Soldier, liapgame.Red),
		piece(liapgame.Cannon, liapgame.Red),
		piece(liapgame.Horse, liapgame.Red),
	}
	ctx := DeclarationContext{
		Position:             3,
		PreviousDeclarations: []int{3, 2, 3}, // forbidden value = 0
		MustDeclareNonZero:   false,
		IsStarter:            false,
	}
	forbidden, ok := lastDeclarerForbidden(ctx)
	if !ok || forbidden != 0 {
		t.Fatalf("expected forbidden value 0, got %d (ok=%v)", forbidden, ok)
	}
	got := HeuristicDecider{}.Declare(hand, ctx)
	if got == 0 {
		t.Fatalf("last declarer chose the forbidden value 0")
	}
	if got < 0 || got > 8 {
		t.Fatalf("declaration %d out of range", got)
	}
}

func TestDeclare_MustDeclareNonZeroNeverReturnsZero(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Black),
	}
	ctx := DeclarationContext{
		Position:             1,
		PreviousDeclarations: []int{0},
		MustDeclareNonZero:   true,
	}
	got := HeuristicDecider{}.Declare(hand, ctx)
	if got == 0 {
		t.Fatalf("must_declare_nonzero violated: got 0")
	}
}

func TestDeclare_StaysWithinLegalRangeUnderTightPileRoom(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.General, liapgame.Red),
		piece(liapgame.Advisor, liapgame.Red),
		piece(liapgame.Elephant, liapgame.Red),
		piece(liapgame.General, liapgame.Black),
		piece(liapgame.Advisor, liapgame.Black),
		piece(liapgame.Elephant, liapgame.Black),
		piece(liapgame.Chariot, liapgame.Red),
		piece(liapgame.Chariot, liapgame.Black),
	}
	ctx := DeclarationContext{
		Position:             3,
		PreviousDeclarations: []int{3, 3, 1}, // pile room = 1, forbidden value = 1
	}
	got := HeuristicDecider{}.Declare(hand, ctx)
	if got == 1 {
		t.Fatalf("last declarer chose the forbidden value 1")
	}
	if got < 0 || got > 8 {
		t.Fatalf("declaration %d out of legal range", got)
	}
}

// S2 — a very weak hand accepts a redeal against a close field.
func TestAcceptRedeal_WeakHandAccepts(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Red),
		piece(liapgame.Soldier, liapgame.Red),
	}
	decider := HeuristicDecider{}
	if !decider.AcceptRedeal(hand, 10, []int{8, 9, 11}) {
		t.Fatalf("expected a weak hand to accept the redeal")
	}
}

func TestAcceptRedeal_DeclinesWhenFarAhead(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.Soldier, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Black),
	}
	decider := HeuristicDecider{}
	if decider.AcceptRedeal(hand, 40, []int{10, 12, 15}) {
		t.Fatalf("expected a seat leading by >=10 to decline the redeal")
	}
}

func TestChoosePlay_ReturnsRequiredCount(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.Chariot, liapgame.Black),
		piece(liapgame.Chariot, liapgame.Black),
		piece(liapgame.Soldier, liapgame.Red),
	}
	indices := HeuristicDecider{}.ChoosePlay(hand, 2, false)
	if len(indices) != 2 {
		t.Fatalf("expected 2 indices, got %d", len(indices))
	}
	played := make([]liapgame.Piece, len(indices))
	for i, idx := range indices {
		played[i] = hand[idx]
	}
	if liapgame.Classify(played) == liapgame.Invalid {
		t.Fatalf("chosen play %v is not a valid combination", played)
	}
}

func TestChoosePlay_FallsBackToLowestValueDiscard(t *testing.T) {
	hand := []liapgame.Piece{
		piece(liapgame.General, liapgame.Red),
		piece(liapgame.Soldier, liapgame.Black),
	}
	indices := HeuristicDecider{}.ChoosePlay(hand, 2, false)
	if len(indices) != 2 {
		t.Fatalf("expected fallback discard of 2, got %d", len(indices))
	}
}
