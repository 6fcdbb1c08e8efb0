package app

import "monstercoup/internal/domain"

// EventKind identifies emitted game events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventPlayerLeft     EventKind = "player_left"
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventActionDeclared EventKind = "action_declared"
	EventActionResolved EventKind = "action_resolved"
	EventChoiceRequired EventKind = "choice_required"
	EventCardLost       EventKind = "card_lost"
	EventTurnAdvanced   EventKind = "turn_advanced"
	EventGameEnded      EventKind = "game_ended"
)

// Outcome values for ActionResolvedPayload.
const (
	OutcomeExecuted        = "executed"         // ability or instant action applied
	OutcomeChallengeFailed = "challenge_failed" // actor held the card, challenger pays
	OutcomeBluffCaught     = "bluff_caught"     // actor bluffed, action cancelled
	OutcomeCancelled       = "cancelled"        // deferred ability target was gone
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player ids; empty means broadcast
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type GameStartedPayload struct {
	FirstTurn string `json:"first_turn"`
}

// HandDealtPayload is always sent privately to the card holder, both at
// deal time and whenever a hand changes through a swap or replacement.
type HandDealtPayload struct {
	PlayerID string                `json:"player_id"`
	Hand     []domain.CreatureType `json:"hand"`
}

type ActionDeclaredPayload struct {
	Actor  string        `json:"actor"`
	Action domain.Action `json:"action"`
	Target string        `json:"target,omitempty"`
}

type ActionResolvedPayload struct {
	Actor   string        `json:"actor"`
	Action  domain.Action `json:"action"`
	Target  string        `json:"target,omitempty"`
	Outcome string        `json:"outcome"`
}

type ChoiceRequiredPayload struct {
	PlayerID string              `json:"player_id"`
	Reason   domain.ChoiceReason `json:"reason"`
}

type CardLostPayload struct {
	PlayerID string              `json:"player_id"`
	Card     domain.CreatureType `json:"card"`
}

type TurnAdvancedPayload struct {
	PlayerID string `json:"player_id"`
}

type GameEndedPayload struct {
	WinnerID string `json:"winner_id"` // empty on a degenerate draw
}
