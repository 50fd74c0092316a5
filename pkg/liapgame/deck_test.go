package liapgame

import (
	"math/rand/v2"
	"testing"
)

func TestNewDeckHas32PiecesWithCorrectCounts(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 32 {
		t.Fatalf("expected 32 pieces, got %d", len(deck))
	}
	counts := map[Kind]int{}
	for _, piece := range deck {
		counts[piece.Kind]++
	}
	if counts[General] != 2 {
		t.Fatalf("expected 2 generals (1 per color), got %d", counts[General])
	}
	for _, k := range []Kind{Advisor, Elephant, Chariot, Horse, Cannon} {
		if counts[k] != 4 {
			t.Fatalf("expected 4 of kind %v (2 per color), got %d", k, counts[k])
		}
	}
	if counts[Soldier] != 10 {
		t.Fatalf("expected 10 soldiers, got %d", counts[Soldier])
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewPCG(1, 2))
	shuffled := Shuffle(deck, rng)
	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled deck length changed")
	}
	original := map[Piece]int{}
	for _, p := range deck {
		original[p]++
	}
	for _, p := range shuffled {
		original[p]--
	}
	for piece, remaining := range original {
		if remaining != 0 {
			t.Fatalf("shuffle altered piece multiset: %v off by %d", piece, remaining)
		}
	}
}

func TestDealSplitsIntoFourHandsOf8(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	deck := Shuffle(NewDeck(), rng)
	hands := Deal(deck)
	total := 0
	for _, h := range hands {
		if len(h) != 8 {
			t.Fatalf("expected 8 pieces per hand, got %d", len(h))
		}
		total += len(h)
	}
	if total != 32 {
		t.Fatalf("expected 32 total pieces dealt, got %d", total)
	}
}

func TestIsWeakHand(t *testing.T) {
	weak := []Piece{NewPiece(Soldier, Red), NewPiece(Cannon, Black)}
	if !IsWeakHand(weak) {
		t.Fatalf("expected weak hand (max 3 points)")
	}
	strong := []Piece{NewPiece(General, Red)}
	if IsWeakHand(strong) {
		t.Fatalf("expected non-weak hand with GENERAL_RED present")
	}
}
