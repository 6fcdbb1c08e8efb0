package bot

import (
	"math/rand"
	"testing"

	"monstercoup/internal/domain"
)

func twoPlayerGame(t *testing.T, botHand, oppHand []domain.CreatureType) *domain.Game {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	g := &domain.Game{
		ID:    "g",
		Deck:  domain.NewDeck(rng),
		Phase: domain.PhaseInProgress,
		Turn:  "bot:1",
	}
	b := domain.NewPlayer("bot:1")
	b.Hand = append([]domain.CreatureType(nil), botHand...)
	o := domain.NewPlayer("human")
	o.Hand = append([]domain.CreatureType(nil), oppHand...)
	g.Players = []*domain.Player{b, o}
	return g
}

func TestBasicStrategyDeclare(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := &BasicStrategy{}

	g := twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureGolem, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureFalcon},
	)

	// Final blow dominates everything once affordable.
	g.PlayerByID("bot:1").Coins = domain.FinalBlowCost
	action, target := s.Declare(g, g.PlayerByID("bot:1"), rng)
	if action != domain.ActionFinalBlow || target != "human" {
		t.Fatalf("declare = %s/%s, want final blow on human", action, target)
	}

	// Without it, a golem-only hand has no ability worth claiming.
	g.PlayerByID("bot:1").Coins = 0
	action, _ = s.Declare(g, g.PlayerByID("bot:1"), rng)
	if action != domain.ActionHunt {
		t.Fatalf("declare = %s, want hunt", action)
	}

	// A held slime pays better than hunting.
	g = twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureFalcon, domain.CreatureFalcon},
	)
	action, _ = s.Declare(g, g.PlayerByID("bot:1"), rng)
	if action != domain.ActionSlimeHarvest {
		t.Fatalf("declare = %s, want slime harvest", action)
	}

	// Stealing needs a target with coins.
	g = twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureSpecter, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureFalcon, domain.CreatureFalcon},
	)
	g.PlayerByID("human").Coins = 0
	action, _ = s.Declare(g, g.PlayerByID("bot:1"), rng)
	if action == domain.ActionSpecterSteal {
		t.Fatalf("declared steal against a broke target")
	}
	g.PlayerByID("human").Coins = 3
	action, target = s.Declare(g, g.PlayerByID("bot:1"), rng)
	if action != domain.ActionSpecterSteal || target != "human" {
		t.Fatalf("declare = %s/%s, want steal on human", action, target)
	}
}

func TestBasicStrategyContestsOnlyProvableBluffs(t *testing.T) {
	s := &BasicStrategy{}

	// Bot holds two dragons and a third is revealed: a dragon claim is
	// provably impossible.
	g := twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureDragon, domain.CreatureDragon},
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureFalcon},
	)
	g.PlayerByID("human").Revealed = []domain.CreatureType{domain.CreatureDragon}
	g.Pending = &domain.PendingAction{Actor: "human", Action: domain.ActionDragonStrike, Target: "bot:1"}
	g.Phase = domain.PhaseAwaitingResponse

	if !s.Contest(g, g.PlayerByID("bot:1")) {
		t.Fatalf("provable bluff must be contested")
	}

	// With a copy unaccounted for, the claim could be honest.
	g.PlayerByID("human").Revealed = nil
	if s.Contest(g, g.PlayerByID("bot:1")) {
		t.Fatalf("possible claim must not be contested")
	}

	// Unchallengeable actions are never contested.
	g.Pending = &domain.PendingAction{Actor: "human", Action: domain.ActionTrain}
	if s.Contest(g, g.PlayerByID("bot:1")) {
		t.Fatalf("train carries no claim to contest")
	}
}

func TestBasicStrategyChoosePrefersDuplicates(t *testing.T) {
	s := &BasicStrategy{}

	g := twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureGolem, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureFalcon},
	)
	if got := s.Choose(g, g.PlayerByID("bot:1")); got != domain.CreatureGolem {
		t.Fatalf("choose = %s, want duplicated golem", got)
	}

	g = twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureDragon, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureFalcon},
	)
	if got := s.Choose(g, g.PlayerByID("bot:1")); got != domain.CreatureDragon {
		t.Fatalf("choose = %s, want first card", got)
	}
}

func TestAgentFallbacks(t *testing.T) {
	g := twoPlayerGame(t,
		[]domain.CreatureType{domain.CreatureGolem, domain.CreatureGolem},
		[]domain.CreatureType{domain.CreatureSlime, domain.CreatureFalcon},
	)

	stranger := NewAgent("bot:99", rand.New(rand.NewSource(1)))
	if action, _ := stranger.Declare(g); action != domain.ActionTrain {
		t.Fatalf("unseated agent declare = %s, want train", action)
	}
	if stranger.Respond(g) {
		t.Fatalf("unseated agent must not contest")
	}
	if card := stranger.Choose(g); card != "" {
		t.Fatalf("unseated agent choose = %q, want empty", card)
	}

	seated := NewAgent("bot:1", rand.New(rand.NewSource(1)))
	if seated.Respond(g) {
		t.Fatalf("respond with no pending action must be false")
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("bot:1") {
		t.Fatalf("prefixed id must be a bot")
	}
	if IsBot("a7c9d2e0") {
		t.Fatalf("plain user id must not be a bot")
	}
}
