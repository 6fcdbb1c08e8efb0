package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))

	if d.Size() != TotalCards {
		t.Fatalf("deck size = %d, want %d", d.Size(), TotalCards)
	}

	counts := make(map[CreatureType]int)
	for {
		card, ok := d.Draw()
		if !ok {
			break
		}
		counts[card]++
	}

	if len(counts) != len(Creatures) {
		t.Fatalf("distinct kinds = %d, want %d", len(counts), len(Creatures))
	}
	for _, c := range Creatures {
		if counts[c] != CopiesPerCreature {
			t.Errorf("copies of %s = %d, want %d", c, counts[c], CopiesPerCreature)
		}
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	for i := 0; i < TotalCards; i++ {
		if _, ok := d.Draw(); !ok {
			t.Fatalf("draw %d failed on a full deck", i)
		}
	}
	if card, ok := d.Draw(); ok {
		t.Fatalf("draw on empty deck returned %s", card)
	}
}

func TestReturnThenDraw(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)))
	card, _ := d.Draw()
	if d.Size() != TotalCards-1 {
		t.Fatalf("size after draw = %d, want %d", d.Size(), TotalCards-1)
	}

	d.Return(card)
	d.Shuffle()
	if d.Size() != TotalCards {
		t.Fatalf("size after return = %d, want %d", d.Size(), TotalCards)
	}
	if _, ok := d.Draw(); !ok {
		t.Fatal("draw after return failed")
	}
}
