package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"monstercoup/internal/domain"
)

// Service contains the Monster Coup use-cases operating on domain state.
// Each game must be driven by a single goroutine at a time; the Nakama
// match loop guarantees that for matches it owns.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// NewGame creates an empty game waiting for players.
func (s *Service) NewGame() *domain.Game {
	return &domain.Game{
		ID:    uuid.NewString(),
		Deck:  domain.NewDeck(s.rng),
		Phase: domain.PhaseWaitingForPlayers,
	}
}

// Join adds a player to a game that has not started.
func (s *Service) Join(g *domain.Game, playerID string) ([]Event, error) {
	if g.Phase != domain.PhaseWaitingForPlayers || len(g.Players) >= domain.MaxPlayers {
		return nil, ErrGameFull
	}
	if g.PlayerByID(playerID) != nil {
		return nil, ErrDuplicatePlayer
	}
	g.Players = append(g.Players, domain.NewPlayer(playerID))

	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{PlayerID: playerID, Seat: len(g.Players) - 1},
	}}, nil
}

// Leave removes a player. Before the game starts the seat is simply freed;
// mid-game the leaver forfeits and the opponent wins.
func (s *Service) Leave(g *domain.Game, playerID string) ([]Event, error) {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}

	switch g.Phase {
	case domain.PhaseWaitingForPlayers:
		for i, pl := range g.Players {
			if pl.ID == playerID {
				g.Players = append(g.Players[:i], g.Players[i+1:]...)
				break
			}
		}
		return []Event{{
			Kind:    EventPlayerLeft,
			Payload: PlayerLeftPayload{PlayerID: playerID},
		}}, nil
	case domain.PhaseFinished:
		return nil, nil
	default:
		g.Phase = domain.PhaseFinished
		g.Pending = nil
		g.Choice = nil
		g.Turn = ""
		if opp := g.Opponent(playerID); opp != nil {
			g.Winner = opp.ID
		}
		return []Event{
			{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{PlayerID: playerID}},
			{Kind: EventGameEnded, Payload: GameEndedPayload{WinnerID: g.Winner}},
		}, nil
	}
}

// Start deals two cards to each player and randomly picks the first turn.
func (s *Service) Start(g *domain.Game) ([]Event, error) {
	if g.Phase != domain.PhaseWaitingForPlayers || len(g.Players) != domain.MaxPlayers {
		return nil, ErrNotReady
	}

	events := make([]Event, 0, len(g.Players)+1)
	for _, p := range g.Players {
		for i := 0; i < 2; i++ {
			card, ok := g.Deck.Draw()
			if !ok {
				break
			}
			p.Hand = append(p.Hand, card)
		}
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: p.ID, Hand: append([]domain.CreatureType(nil), p.Hand...)},
			Recipients: []string{p.ID},
		})
	}

	g.Turn = g.Players[s.rng.Intn(len(g.Players))].ID
	g.Phase = domain.PhaseInProgress

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{FirstTurn: g.Turn},
	})
	return events, nil
}

// DeclareAction handles a turn holder's declared action. Instant actions
// resolve immediately; the 7-coin final blow forces the target into a card
// choice; creature-backed actions park the game awaiting a response.
func (s *Service) DeclareAction(g *domain.Game, actorID string, action domain.Action, targetID string) ([]Event, error) {
	if g.Phase != domain.PhaseInProgress {
		return nil, ErrGameNotInProgress
	}
	actor := g.PlayerByID(actorID)
	if actor == nil {
		return nil, ErrUnknownPlayer
	}
	if g.Turn != actorID {
		return nil, ErrWrongTurn
	}
	spec, ok := action.Spec()
	if !ok {
		return nil, ErrUnknownAction
	}
	if spec.NeedsTarget {
		if targetID == "" || targetID == actorID {
			return nil, ErrInvalidTarget
		}
		target := g.PlayerByID(targetID)
		if target == nil || target.Eliminated() {
			return nil, ErrInvalidTarget
		}
	} else {
		targetID = ""
	}
	if actor.Coins < spec.CoinCost {
		return nil, ErrInsufficientCoins
	}

	switch action {
	case domain.ActionTrain, domain.ActionHunt:
		income := domain.TrainIncome
		if action == domain.ActionHunt {
			income = domain.HuntIncome
		}
		_ = actor.AdjustCoins(income)
		events := []Event{{
			Kind:    EventActionResolved,
			Payload: ActionResolvedPayload{Actor: actorID, Action: action, Outcome: OutcomeExecuted},
		}}
		return append(events, s.concludeOrAdvance(g)...), nil

	case domain.ActionFinalBlow:
		_ = actor.AdjustCoins(-domain.FinalBlowCost)
		g.Choice = &domain.PendingChoice{Loser: targetID, Reason: domain.ReasonFinalBlow}
		g.Phase = domain.PhaseAwaitingChoice
		return []Event{
			{Kind: EventActionResolved, Payload: ActionResolvedPayload{Actor: actorID, Action: action, Target: targetID, Outcome: OutcomeExecuted}},
			{Kind: EventChoiceRequired, Payload: ChoiceRequiredPayload{PlayerID: targetID, Reason: domain.ReasonFinalBlow}},
		}, nil

	default:
		g.Pending = &domain.PendingAction{Actor: actorID, Action: action, Target: targetID}
		g.Phase = domain.PhaseAwaitingResponse
		return []Event{{
			Kind:    EventActionDeclared,
			Payload: ActionDeclaredPayload{Actor: actorID, Action: action, Target: targetID},
		}}, nil
	}
}

// RespondToAction resolves the opponent's accept-or-contest answer to the
// pending creature-backed action.
func (s *Service) RespondToAction(g *domain.Game, responderID string, contested bool) ([]Event, error) {
	if g.Phase != domain.PhaseAwaitingResponse || g.Pending == nil {
		return nil, ErrNotAwaitingResponse
	}
	if g.PlayerByID(responderID) == nil {
		return nil, ErrUnknownPlayer
	}
	if responderID == g.Pending.Actor {
		return nil, ErrInvalidResponder
	}

	pa := *g.Pending
	actor := g.PlayerByID(pa.Actor)
	spec, _ := pa.Action.Spec()

	if !contested {
		g.Pending = nil
		events := []Event{{
			Kind:    EventActionResolved,
			Payload: ActionResolvedPayload{Actor: pa.Actor, Action: pa.Action, Target: pa.Target, Outcome: OutcomeExecuted},
		}}
		events = append(events, s.executeAbility(g, pa)...)
		if g.Choice != nil {
			g.Phase = domain.PhaseAwaitingChoice
			events = append(events, Event{
				Kind:    EventChoiceRequired,
				Payload: ChoiceRequiredPayload{PlayerID: g.Choice.Loser, Reason: g.Choice.Reason},
			})
			return events, nil
		}
		return append(events, s.concludeOrAdvance(g)...), nil
	}

	if actor.Holds(spec.Claim) {
		// Proven claim: the challenger owes a card, and the actor's matching
		// card is laundered through the deck so its identity stays hidden.
		events := []Event{{
			Kind:    EventActionResolved,
			Payload: ActionResolvedPayload{Actor: pa.Actor, Action: pa.Action, Target: pa.Target, Outcome: OutcomeChallengeFailed},
		}}
		_ = actor.RemoveCard(spec.Claim)
		g.Deck.Return(spec.Claim)
		g.Deck.Shuffle()
		if card, ok := g.Deck.Draw(); ok {
			actor.Hand = append(actor.Hand, card)
		}
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: actor.ID, Hand: append([]domain.CreatureType(nil), actor.Hand...)},
			Recipients: []string{actor.ID},
		})

		g.Pending = nil
		g.Choice = &domain.PendingChoice{Loser: responderID, Reason: domain.ReasonLostChallenge, Deferred: &pa}
		g.Phase = domain.PhaseAwaitingChoice
		return append(events, Event{
			Kind:    EventChoiceRequired,
			Payload: ChoiceRequiredPayload{PlayerID: responderID, Reason: domain.ReasonLostChallenge},
		}), nil
	}

	// Caught bluffing: the declared action never fires.
	g.Pending = nil
	g.Choice = &domain.PendingChoice{Loser: pa.Actor, Reason: domain.ReasonCaughtBluffing}
	g.Phase = domain.PhaseAwaitingChoice
	return []Event{
		{Kind: EventActionResolved, Payload: ActionResolvedPayload{Actor: pa.Actor, Action: pa.Action, Target: pa.Target, Outcome: OutcomeBluffCaught}},
		{Kind: EventChoiceRequired, Payload: ChoiceRequiredPayload{PlayerID: pa.Actor, Reason: domain.ReasonCaughtBluffing}},
	}, nil
}

// ChooseCardToLose applies a forced card loss, then runs any ability that
// was deferred behind the choice. Deferred abilities may park a further
// choice; the chain keeps the game in the awaiting-choice phase until every
// level is resolved.
func (s *Service) ChooseCardToLose(g *domain.Game, playerID string, card domain.CreatureType) ([]Event, error) {
	if g.Phase != domain.PhaseAwaitingChoice || g.Choice == nil {
		return nil, ErrNotAwaitingChoice
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if g.Choice.Loser != playerID {
		return nil, ErrNotYourChoice
	}
	if err := p.LoseCard(card); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventCardLost,
		Payload: CardLostPayload{PlayerID: playerID, Card: card},
	}}

	deferred := g.Choice.Deferred
	g.Choice = nil

	if deferred != nil {
		spec, _ := deferred.Action.Spec()
		target := g.PlayerByID(deferred.Target)
		if spec.NeedsTarget && (target == nil || target.Eliminated()) {
			// The forced loss removed the ability's target from play.
			events = append(events, Event{
				Kind:    EventActionResolved,
				Payload: ActionResolvedPayload{Actor: deferred.Actor, Action: deferred.Action, Target: deferred.Target, Outcome: OutcomeCancelled},
			})
		} else {
			events = append(events, s.executeAbility(g, *deferred)...)
			if g.Choice != nil {
				events = append(events, Event{
					Kind:    EventChoiceRequired,
					Payload: ChoiceRequiredPayload{PlayerID: g.Choice.Loser, Reason: g.Choice.Reason},
				})
				return events, nil
			}
		}
	}

	return append(events, s.concludeOrAdvance(g)...), nil
}

// executeAbility applies a creature ability. Targets were validated at
// declaration time and re-checked on deferred execution, so effects apply
// fully or not at all.
func (s *Service) executeAbility(g *domain.Game, pa domain.PendingAction) []Event {
	actor := g.PlayerByID(pa.Actor)

	switch pa.Action {
	case domain.ActionDragonStrike:
		g.Choice = &domain.PendingChoice{Loser: pa.Target, Reason: domain.ReasonDragonStrike}
		return nil

	case domain.ActionSpecterSteal:
		target := g.PlayerByID(pa.Target)
		amount := target.Coins
		if amount > domain.StealCap {
			amount = domain.StealCap
		}
		_ = target.AdjustCoins(-amount)
		_ = actor.AdjustCoins(amount)
		return nil

	case domain.ActionFalconSwap:
		if len(actor.Hand) == 0 {
			return nil
		}
		swapped := actor.Hand[0]
		_ = actor.RemoveCard(swapped)
		g.Deck.Return(swapped)
		g.Deck.Shuffle()
		if card, ok := g.Deck.Draw(); ok {
			actor.Hand = append(actor.Hand, card)
		}
		return []Event{{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: actor.ID, Hand: append([]domain.CreatureType(nil), actor.Hand...)},
			Recipients: []string{actor.ID},
		}}

	case domain.ActionSlimeHarvest:
		_ = actor.AdjustCoins(domain.SlimeHarvestGain)
		return nil
	}
	return nil
}

// concludeOrAdvance checks for a winner and, absent one, rotates the turn
// to the next player still holding cards.
func (s *Service) concludeOrAdvance(g *domain.Game) []Event {
	active := g.ActivePlayers()
	if len(active) <= 1 {
		g.Phase = domain.PhaseFinished
		g.Pending = nil
		g.Choice = nil
		g.Turn = ""
		if len(active) == 1 {
			g.Winner = active[0].ID
		}
		return []Event{{Kind: EventGameEnded, Payload: GameEndedPayload{WinnerID: g.Winner}}}
	}

	g.AdvanceTurn()
	g.Phase = domain.PhaseInProgress
	return []Event{{Kind: EventTurnAdvanced, Payload: TurnAdvancedPayload{PlayerID: g.Turn}}}
}
