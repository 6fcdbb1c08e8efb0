package domain

// Phase is the discrete stage of the per-turn protocol.
type Phase string

const (
	PhaseWaitingForPlayers Phase = "waiting_for_players"
	PhaseInProgress        Phase = "in_progress"
	PhaseAwaitingResponse  Phase = "awaiting_response"
	PhaseAwaitingChoice    Phase = "awaiting_choice"
	PhaseFinished          Phase = "finished"
)

// MaxPlayers is the fixed table size.
const MaxPlayers = 2

// PendingAction is a declared, not-yet-resolved creature-backed action.
// It exists only while the game is awaiting a response.
type PendingAction struct {
	Actor  string
	Action Action
	Target string // empty when the action takes no target
}

// ChoiceReason records why a player owes a forced card loss.
type ChoiceReason string

const (
	ReasonLostChallenge  ChoiceReason = "lost_challenge"
	ReasonCaughtBluffing ChoiceReason = "caught_bluffing"
	ReasonFinalBlow      ChoiceReason = "final_blow"
	ReasonDragonStrike   ChoiceReason = "dragon_strike"
)

// PendingChoice records who owes a forced card loss and, when the loss was
// a challenge penalty, the declared action that must still fire afterwards.
type PendingChoice struct {
	Loser    string
	Reason   ChoiceReason
	Deferred *PendingAction
}

// Game is the aggregate root. It owns the deck and players exclusively;
// the players slice is in join order, which defines turn rotation.
type Game struct {
	ID      string
	Players []*Player
	Deck    *Deck
	Turn    string // current turn player id, empty before start
	Phase   Phase
	Pending *PendingAction
	Choice  *PendingChoice
	Winner  string // set once Phase is finished; empty on a degenerate draw
}

// PlayerByID returns the participant with the given id, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other participant in a two-player game, or nil.
func (g *Game) Opponent(id string) *Player {
	for _, p := range g.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// ActivePlayers returns the players still holding at least one card.
func (g *Game) ActivePlayers() []*Player {
	var active []*Player
	for _, p := range g.Players {
		if !p.Eliminated() {
			active = append(active, p)
		}
	}
	return active
}

// AdvanceTurn moves the turn to the next player in join order that still
// holds a card, wrapping past eliminated players. Returns false when no
// eligible player exists.
func (g *Game) AdvanceTurn() bool {
	if len(g.Players) == 0 {
		return false
	}
	current := 0
	for i, p := range g.Players {
		if p.ID == g.Turn {
			current = i
			break
		}
	}
	for step := 1; step <= len(g.Players); step++ {
		next := g.Players[(current+step)%len(g.Players)]
		if !next.Eliminated() {
			g.Turn = next.ID
			return true
		}
	}
	return false
}

// CardCount sums the deck, hands and revealed piles. It must always equal
// TotalCards; a mismatch indicates a bug, not a user-triggerable state.
func (g *Game) CardCount() int {
	total := g.Deck.Size()
	for _, p := range g.Players {
		total += len(p.Hand) + len(p.Revealed)
	}
	return total
}
