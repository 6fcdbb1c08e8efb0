package domain

import (
	"errors"
	"testing"
)

func TestLoseCardMovesToRevealed(t *testing.T) {
	p := NewPlayer("u1")
	p.Hand = []CreatureType{CreatureDragon, CreatureSlime}

	if err := p.LoseCard(CreatureSlime); err != nil {
		t.Fatalf("LoseCard error: %v", err)
	}

	if len(p.Hand) != 1 || p.Hand[0] != CreatureDragon {
		t.Fatalf("hand = %v, want [dragon]", p.Hand)
	}
	if len(p.Revealed) != 1 || p.Revealed[0] != CreatureSlime {
		t.Fatalf("revealed = %v, want [slime]", p.Revealed)
	}
}

func TestLoseCardNotHeld(t *testing.T) {
	p := NewPlayer("u1")
	p.Hand = []CreatureType{CreatureDragon, CreatureDragon}

	err := p.LoseCard(CreatureFalcon)
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("err = %v, want ErrCardNotFound", err)
	}
	if len(p.Hand) != 2 || len(p.Revealed) != 0 {
		t.Fatal("failed LoseCard must not mutate the player")
	}
}

func TestLoseCardRemovesSingleCopy(t *testing.T) {
	p := NewPlayer("u1")
	p.Hand = []CreatureType{CreatureGolem, CreatureGolem}

	if err := p.LoseCard(CreatureGolem); err != nil {
		t.Fatalf("LoseCard error: %v", err)
	}
	if len(p.Hand) != 1 || p.Hand[0] != CreatureGolem {
		t.Fatalf("hand = %v, want one golem left", p.Hand)
	}
}

func TestAdjustCoins(t *testing.T) {
	p := NewPlayer("u1")
	if p.Coins != StartingCoins {
		t.Fatalf("starting coins = %d, want %d", p.Coins, StartingCoins)
	}

	if err := p.AdjustCoins(3); err != nil {
		t.Fatalf("AdjustCoins(+3) error: %v", err)
	}
	if p.Coins != StartingCoins+3 {
		t.Fatalf("coins = %d, want %d", p.Coins, StartingCoins+3)
	}

	err := p.AdjustCoins(-100)
	if !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("err = %v, want ErrNegativeBalance", err)
	}
	if p.Coins != StartingCoins+3 {
		t.Fatal("failed AdjustCoins must not change the balance")
	}
}

func TestEliminated(t *testing.T) {
	p := NewPlayer("u1")
	if !p.Eliminated() {
		t.Fatal("player with empty hand should read as eliminated")
	}
	p.Hand = []CreatureType{CreatureSlime}
	if p.Eliminated() {
		t.Fatal("player holding a card is not eliminated")
	}
}
