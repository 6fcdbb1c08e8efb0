package bot

import (
	"math/rand"
	"time"

	"monstercoup/internal/domain"
)

// Agent is an autonomous opponent seated when no second human shows up.
type Agent struct {
	ID       string
	Name     string
	Strategy Strategy
	rng      *rand.Rand
}

// NewAgent builds an agent for the given bot user id with the basic
// strategy. rng may be nil to use a time-seeded default.
func NewAgent(id string, rng *rand.Rand) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{
		ID:       id,
		Name:     GetUsername(id),
		Strategy: &BasicStrategy{},
		rng:      rng,
	}
}

// Declare picks the action for the agent's turn.
func (a *Agent) Declare(g *domain.Game) (domain.Action, string) {
	p := g.PlayerByID(a.ID)
	if p == nil {
		return domain.ActionTrain, ""
	}
	return a.Strategy.Declare(g, p, a.rng)
}

// Respond decides whether to contest the pending declared action.
func (a *Agent) Respond(g *domain.Game) bool {
	p := g.PlayerByID(a.ID)
	if p == nil || g.Pending == nil {
		return false
	}
	return a.Strategy.Contest(g, p)
}

// Choose picks which card to give up on a forced loss.
func (a *Agent) Choose(g *domain.Game) domain.CreatureType {
	p := g.PlayerByID(a.ID)
	if p == nil || len(p.Hand) == 0 {
		return ""
	}
	return a.Strategy.Choose(g, p)
}
