package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"monstercoup/internal/app"
	"monstercoup/internal/bot"
	"monstercoup/internal/config"
	"monstercoup/internal/domain"
	"monstercoup/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [2]string                   `json:"seats"` // user IDs, empty string means seat is empty
	OwnerSeat            int                         `json:"owner_seat"`
	Tick                 int64                       `json:"tick"`
	StakeTier            string                      `json:"stake_tier"`
	Settled              bool                        `json:"settled"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`
	BotMaxDelay          int                         `json:"bot_max_delay"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"`
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	Presences            map[string]runtime.Presence `json:"-"`
	App                  *app.Service                `json:"-"`
	Game                 *domain.Game                `json:"-"`
	Bots                 map[string]*bot.Agent       `json:"-"`
	Economy              ports.EconomyPort           `json:"-"`
}

// matchLabel is the advertised matchmaker label.
type matchLabel struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

type declareActionMessage struct {
	Action   string `json:"action"`
	TargetID string `json:"target_id,omitempty"`
}

type respondActionMessage struct {
	Contested bool `json:"contested"`
}

type chooseCardMessage struct {
	Card string `json:"card"`
}

type errorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (ms *MatchState) openSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) humanCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
	}
	state.Game = state.App.NewGame()

	if tier, ok := params["stake_tier"].(string); ok {
		state.StakeTier = tier
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["monstercoup_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["monstercoup_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["monstercoup_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	state.BotAutoFillDelay = 5
	if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
		state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
	}

	labelBytes, err := json.Marshal(buildLabel(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Game.Phase != domain.PhaseWaitingForPlayers {
		return state, false, "match already started"
	}

	if matchState.openSeatCount() <= 0 {
		hasBot := false
		for _, seat := range matchState.Seats {
			if bot.IsBot(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return state, false, "match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		seat := -1
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				seat = i
				break
			}
		}

		// No empty seat: hand a bot's seat back to the human while in lobby.
		if seat < 0 {
			for i, seatUserId := range matchState.Seats {
				if bot.IsBot(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					if _, err := matchState.App.Leave(matchState.Game, seatUserId); err != nil {
						logger.Error("MatchJoin: Failed to remove bot %s: %v", seatUserId, err)
						continue
					}
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = ""
					seat = i
					break
				}
			}
		}

		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}

		events, err := matchState.App.Join(matchState.Game, p.GetUserId())
		if err != nil {
			logger.Warn("MatchJoin: User %s could not join game: %v", p.GetUserId(), err)
			continue
		}
		matchState.Seats[seat] = p.GetUserId()
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	if owner := findFirstHumanSeat(matchState.Seats[:]); owner != matchState.OwnerSeat {
		matchState.OwnerSeat = owner
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastViews(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave frees the seat while in lobby; a mid-game leave forfeits.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}

		events, err := matchState.App.Leave(matchState.Game, p.GetUserId())
		if err != nil {
			logger.Warn("MatchLeave: User %s leave rejected: %v", p.GetUserId(), err)
		}
		if matchState.Game.Phase == domain.PhaseWaitingForPlayers {
			matchState.Seats[seat] = ""
		}
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	if owner := findFirstHumanSeat(matchState.Seats[:]); owner != matchState.OwnerSeat {
		matchState.OwnerSeat = owner
	}

	if findFirstHumanSeat(matchState.Seats[:]) == -1 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastViews(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpDeclareAction:
			mh.handleDeclareAction(ctx, matchState, dispatcher, logger, msg)
		case OpRespondAction:
			mh.handleRespondAction(ctx, matchState, dispatcher, logger, msg)
		case OpChooseCard:
			mh.handleChooseCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the match owner can start the game")
		return
	}

	events, err := state.App.Start(state.Game)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastViews(state, dispatcher, logger)
	logger.Info("StartGame: Game %s started by %s.", state.Game.ID, senderID)
}

func (mh *matchHandler) handleDeclareAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request declareActionMessage
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleDeclareAction: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed declare_action payload")
		return
	}

	events, err := state.App.DeclareAction(state.Game, senderID, domain.Action(request.Action), request.TargetID)
	if err != nil {
		logger.Warn("handleDeclareAction: User %s failed to declare %q: %v", senderID, request.Action, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastViews(state, dispatcher, logger)
}

func (mh *matchHandler) handleRespondAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request respondActionMessage
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleRespondAction: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed respond_action payload")
		return
	}

	events, err := state.App.RespondToAction(state.Game, senderID, request.Contested)
	if err != nil {
		logger.Warn("handleRespondAction: User %s failed to respond: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastViews(state, dispatcher, logger)
}

func (mh *matchHandler) handleChooseCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request chooseCardMessage
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleChooseCard: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed choose_card payload")
		return
	}

	events, err := state.App.ChooseCardToLose(state.Game, senderID, domain.CreatureType(request.Card))
	if err != nil {
		logger.Warn("handleChooseCard: User %s failed to choose card: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastViews(state, dispatcher, logger)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill the lobby with a bot if a single human has waited long enough.
	if state.Game.Phase == domain.PhaseWaitingForPlayers {
		if state.humanCount() == 1 && state.openSeatCount() > 0 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := bot.GetIdentity(i)
					events, err := state.App.Join(state.Game, identity.UserID)
					if err != nil {
						logger.Error("processBots: Failed to seat bot %s: %v", identity.UserID, err)
						break
					}
					state.Seats[i] = identity.UserID
					state.Bots[identity.UserID] = bot.NewAgent(identity.UserID, nil)
					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
					mh.broadcastEvents(ctx, state, dispatcher, logger, events)
					break
				}
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastViews(state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	botID, act := mh.pendingBotMove(state)
	if botID == "" {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[botID]
	if !exists {
		agent = bot.NewAgent(botID, nil)
		state.Bots[botID] = agent
	}

	var (
		events []app.Event
		err    error
	)
	switch act {
	case "declare":
		action, target := agent.Declare(state.Game)
		events, err = state.App.DeclareAction(state.Game, botID, action, target)
	case "respond":
		events, err = state.App.RespondToAction(state.Game, botID, agent.Respond(state.Game))
	case "choose":
		events, err = state.App.ChooseCardToLose(state.Game, botID, agent.Choose(state.Game))
	}
	if err != nil {
		logger.Error("processBots: Bot %s failed to %s: %v", botID, act, err)
		return
	}

	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastViews(state, dispatcher, logger)
}

// pendingBotMove reports which bot owes a move in the current phase.
func (mh *matchHandler) pendingBotMove(state *MatchState) (string, string) {
	g := state.Game
	switch g.Phase {
	case domain.PhaseInProgress:
		if bot.IsBot(g.Turn) {
			return g.Turn, "declare"
		}
	case domain.PhaseAwaitingResponse:
		if g.Pending != nil {
			if opp := g.Opponent(g.Pending.Actor); opp != nil && bot.IsBot(opp.ID) {
				return opp.ID, "respond"
			}
		}
	case domain.PhaseAwaitingChoice:
		if g.Choice != nil && bot.IsBot(g.Choice.Loser) {
			return g.Choice.Loser, "choose"
		}
	}
	return "", ""
}

func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := opcodeForEvent(ev.Kind)
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}

		data, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		if ev.Kind == app.EventGameEnded {
			mh.settle(ctx, state, logger, ev.Payload.(app.GameEndedPayload))
			mh.updateLabel(state, dispatcher, logger)
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Targeted events with no connected recipient (a bot's hand)
			// must not leak to everyone else.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
		}
	}
}

// broadcastViews sends the public view to everyone and each player's
// private view to that player only.
func (mh *matchHandler) broadcastViews(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	public, err := json.Marshal(app.ProjectPublic(state.Game))
	if err != nil {
		logger.Error("Failed to marshal public view: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpStateUpdate, public, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast public view: %v", err)
	}

	for _, p := range state.Game.Players {
		presence, ok := state.Presences[p.ID]
		if !ok {
			continue
		}
		view, err := app.ProjectPrivate(state.Game, p.ID)
		if err != nil {
			continue
		}
		data, err := json.Marshal(view)
		if err != nil {
			logger.Error("Failed to marshal private view for %s: %v", p.ID, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpPrivateState, data, []runtime.Presence{presence}, nil, true); err != nil {
			logger.Error("Failed to unicast private view to %s: %v", p.ID, err)
		}
	}
}

// settle credits the winner and debits the loser with the configured stake.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, payload app.GameEndedPayload) {
	if state.Settled || state.Economy == nil || payload.WinnerID == "" {
		return
	}
	state.Settled = true

	stake := config.GetStake(state.StakeTier)
	if stake <= 0 {
		return
	}

	updates := make([]ports.WalletUpdate, 0, len(state.Game.Players))
	for _, p := range state.Game.Players {
		if bot.IsBot(p.ID) {
			continue
		}
		amount := -stake
		if p.ID == payload.WinnerID {
			amount = stake
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: p.ID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "game_settlement",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("Failed to settle stakes: %v", err)
	}
}

// sendError unicasts a rejection to the offending sender only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	data, err := json.Marshal(errorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error message: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func errorCode(err error) int {
	if app.IsResource(err) {
		return 404
	}
	return 400
}

func opcodeForEvent(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventPlayerLeft:
		return OpPlayerLeft, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventActionDeclared:
		return OpActionDeclared, true
	case app.EventActionResolved:
		return OpActionResolved, true
	case app.EventChoiceRequired:
		return OpChoiceRequired, true
	case app.EventCardLost:
		return OpCardLost, true
	case app.EventTurnAdvanced:
		return OpTurnAdvanced, true
	case app.EventGameEnded:
		return OpGameEnded, true
	}
	return 0, false
}

func buildLabel(state *MatchState) matchLabel {
	return matchLabel{
		Open:  state.Game.Phase == domain.PhaseWaitingForPlayers && state.openSeatCount() > 0,
		Game:  "monstercoup",
		Phase: string(state.Game.Phase),
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(buildLabel(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
