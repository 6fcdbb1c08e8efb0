package domain

import "errors"

// StartingCoins is every player's opening balance.
const StartingCoins = 2

var (
	// ErrCardNotFound is returned when a player does not hold the named card.
	ErrCardNotFound = errors.New("card not found in hand")
	// ErrNegativeBalance is returned when a coin adjustment would drop below zero.
	ErrNegativeBalance = errors.New("coin balance cannot go negative")
)

// Player holds one participant's hand, coins and revealed pile.
type Player struct {
	ID       string
	Coins    int
	Hand     []CreatureType
	Revealed []CreatureType
}

// NewPlayer creates a player with the opening coin balance and no cards.
func NewPlayer(id string) *Player {
	return &Player{ID: id, Coins: StartingCoins}
}

// Holds reports whether the player's hand contains the given creature.
func (p *Player) Holds(card CreatureType) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// LoseCard moves one instance of card from the hand to the revealed pile.
// Revealed cards are public and never return to play.
func (p *Player) LoseCard(card CreatureType) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			p.Revealed = append(p.Revealed, card)
			return nil
		}
	}
	return ErrCardNotFound
}

// RemoveCard takes one instance of card out of the hand without revealing
// it, for swap flows where the card goes back to the deck.
func (p *Player) RemoveCard(card CreatureType) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return ErrCardNotFound
}

// AdjustCoins applies a coin delta. The balance never goes negative; the
// engine checks affordability before calling, so a violation is a bug.
func (p *Player) AdjustCoins(delta int) error {
	if p.Coins+delta < 0 {
		return ErrNegativeBalance
	}
	p.Coins += delta
	return nil
}

// Eliminated reports whether the player has no cards left.
func (p *Player) Eliminated() bool {
	return len(p.Hand) == 0
}
