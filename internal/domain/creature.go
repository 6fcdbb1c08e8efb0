package domain

// CreatureType identifies one of the five monster kinds in the deck.
type CreatureType string

const (
	CreatureDragon  CreatureType = "dragon"
	CreatureSpecter CreatureType = "specter"
	CreatureFalcon  CreatureType = "falcon"
	CreatureGolem   CreatureType = "golem"
	CreatureSlime   CreatureType = "slime"
)

const (
	// CopiesPerCreature is how many copies of each kind the deck holds.
	CopiesPerCreature = 3

	// TotalCards is the fixed card population of a game. The sum of
	// deck + hands + revealed piles must equal this at all times.
	TotalCards = 15
)

// Creatures lists every creature kind in catalog order.
var Creatures = []CreatureType{
	CreatureDragon,
	CreatureSpecter,
	CreatureFalcon,
	CreatureGolem,
	CreatureSlime,
}

// Ability returns the client-facing ability description for the creature.
func (c CreatureType) Ability() string {
	switch c {
	case CreatureDragon:
		return "Destroy one of an opponent's monsters."
	case CreatureSpecter:
		return "Steal 2 coins from an opponent."
	case CreatureFalcon:
		return "Swap one of your cards with one from the deck."
	case CreatureGolem:
		return "Block another player's hunt action."
	case CreatureSlime:
		return "Take 3 coins from the bank."
	default:
		return ""
	}
}

// Valid reports whether c names a catalog creature.
func (c CreatureType) Valid() bool {
	switch c {
	case CreatureDragon, CreatureSpecter, CreatureFalcon, CreatureGolem, CreatureSlime:
		return true
	}
	return false
}
