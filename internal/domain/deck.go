package domain

import "math/rand"

// Deck is the shared draw pile. Order is an implementation detail; the
// contract is a uniform random draw among the remaining cards, which is
// why every Return must be followed by a Shuffle before the next Draw.
type Deck struct {
	cards []CreatureType
	rng   *rand.Rand
}

// NewDeck builds a full shuffled deck with CopiesPerCreature of each kind.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]CreatureType, 0, TotalCards)
	for _, c := range Creatures {
		for i := 0; i < CopiesPerCreature; i++ {
			cards = append(cards, c)
		}
	}
	d := &Deck{cards: cards, rng: rng}
	d.Shuffle()
	return d
}

// NewDeckFromCards builds a deck holding exactly the given cards in order,
// with the last element on top. Intended for deterministic setups.
func NewDeckFromCards(cards []CreatureType, rng *rand.Rand) *Deck {
	return &Deck{cards: append([]CreatureType(nil), cards...), rng: rng}
}

// Draw removes and returns the top card. ok is false when the deck is
// empty; swap/replace flows treat that as "no replacement issued".
func (d *Deck) Draw() (CreatureType, bool) {
	if len(d.cards) == 0 {
		return "", false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Return puts a card back into the draw pile. Callers must Shuffle before
// the pile is drawn from again so the returned card's position leaks nothing.
func (d *Deck) Return(card CreatureType) {
	d.cards = append(d.cards, card)
}

// Shuffle randomizes the draw order.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}
