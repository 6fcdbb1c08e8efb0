package bot

import (
	"math/rand"

	"monstercoup/internal/domain"
)

// Strategy decides a bot's declarations, challenge responses and forced
// card losses.
type Strategy interface {
	Declare(g *domain.Game, p *domain.Player, rng *rand.Rand) (domain.Action, string)
	Contest(g *domain.Game, p *domain.Player) bool
	Choose(g *domain.Game, p *domain.Player) domain.CreatureType
}

// BasicStrategy plays honestly: it only declares creature actions it can
// back, presses the final blow once affordable, and contests only claims
// it can prove impossible from visible cards.
type BasicStrategy struct{}

// Declare favors the final blow when affordable, then a held creature's
// ability, then plain hunting for coins.
func (s *BasicStrategy) Declare(g *domain.Game, p *domain.Player, rng *rand.Rand) (domain.Action, string) {
	opp := g.Opponent(p.ID)
	if opp != nil && !opp.Eliminated() && p.Coins >= domain.FinalBlowCost {
		return domain.ActionFinalBlow, opp.ID
	}

	if p.Holds(domain.CreatureSlime) {
		return domain.ActionSlimeHarvest, ""
	}
	if opp != nil && !opp.Eliminated() {
		if p.Holds(domain.CreatureSpecter) && opp.Coins > 0 {
			return domain.ActionSpecterSteal, opp.ID
		}
		if p.Holds(domain.CreatureDragon) && rng.Intn(2) == 0 {
			return domain.ActionDragonStrike, opp.ID
		}
	}

	return domain.ActionHunt, ""
}

// Contest challenges only when every copy of the claimed creature is
// accounted for in the bot's own hand and the revealed piles, which makes
// the claim provably a bluff.
func (s *BasicStrategy) Contest(g *domain.Game, p *domain.Player) bool {
	spec, ok := g.Pending.Action.Spec()
	if !ok || spec.Claim == "" {
		return false
	}

	visible := 0
	for _, c := range p.Hand {
		if c == spec.Claim {
			visible++
		}
	}
	for _, pl := range g.Players {
		for _, c := range pl.Revealed {
			if c == spec.Claim {
				visible++
			}
		}
	}
	return visible >= domain.CopiesPerCreature
}

// Choose gives up a duplicated creature first, otherwise the first card.
func (s *BasicStrategy) Choose(g *domain.Game, p *domain.Player) domain.CreatureType {
	counts := make(map[domain.CreatureType]int, len(p.Hand))
	for _, c := range p.Hand {
		counts[c]++
	}
	for c, n := range counts {
		if n > 1 {
			return c
		}
	}
	return p.Hand[0]
}
