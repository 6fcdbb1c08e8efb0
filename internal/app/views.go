package app

import "monstercoup/internal/domain"

// PlayerView is the publicly visible slice of a player's state. Card
// identities in hand are never included, only the count.
type PlayerView struct {
	ID        string                `json:"id"`
	Coins     int                   `json:"coins"`
	CardCount int                   `json:"card_count"`
	Revealed  []domain.CreatureType `json:"revealed"`
}

// PendingActionView summarizes the declared action awaiting a response.
// The claim itself is public knowledge; the actor's actual hand is not.
type PendingActionView struct {
	Actor  string        `json:"actor"`
	Action domain.Action `json:"action"`
	Target string        `json:"target,omitempty"`
}

// PublicView is the projection of game state safe to broadcast to everyone.
type PublicView struct {
	GameID      string             `json:"game_id"`
	Phase       domain.Phase       `json:"phase"`
	Players     []PlayerView       `json:"players"`
	Turn        string             `json:"turn,omitempty"`
	DeckSize    int                `json:"deck_size"`
	Pending     *PendingActionView `json:"pending_action,omitempty"`
	ChoiceOwner string             `json:"choice_owner,omitempty"`
	Winner      string             `json:"winner,omitempty"`
}

// PrivateView adds the requesting player's own hand to the public view.
type PrivateView struct {
	PublicView
	Hand []domain.CreatureType `json:"hand"`
}

// ProjectPublic derives the public view from game state.
func ProjectPublic(g *domain.Game) PublicView {
	view := PublicView{
		GameID:   g.ID,
		Phase:    g.Phase,
		Turn:     g.Turn,
		DeckSize: g.Deck.Size(),
		Winner:   g.Winner,
	}
	for _, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			ID:        p.ID,
			Coins:     p.Coins,
			CardCount: len(p.Hand),
			Revealed:  append([]domain.CreatureType(nil), p.Revealed...),
		})
	}
	if g.Pending != nil {
		view.Pending = &PendingActionView{
			Actor:  g.Pending.Actor,
			Action: g.Pending.Action,
			Target: g.Pending.Target,
		}
	}
	if g.Choice != nil {
		view.ChoiceOwner = g.Choice.Loser
	}
	return view
}

// ProjectPrivate derives the view for one participant. It fails for
// non-participants so a stray id can never read a hand.
func ProjectPrivate(g *domain.Game, playerID string) (PrivateView, error) {
	p := g.PlayerByID(playerID)
	if p == nil {
		return PrivateView{}, ErrUnknownPlayer
	}
	return PrivateView{
		PublicView: ProjectPublic(g),
		Hand:       append([]domain.CreatureType(nil), p.Hand...),
	}, nil
}
