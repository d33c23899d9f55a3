package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"coinche/internal/app"
	"coinche/internal/bot"
	"coinche/internal/config"
	"coinche/internal/domain"
	"coinche/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the JSON label clients query through the matchmaker.
type MatchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	Phase string `json:"phase"` // "lobby" or "playing"
}

// PlaceBidRequest is the client payload for OpPlaceBid.
type PlaceBidRequest struct {
	Bid domain.Bid `json:"bid"`
}

// PlayCardRequest is the client payload for OpPlayCard.
type PlayCardRequest struct {
	Card domain.Card `json:"card"`
}

// GameErrorEvent is sent privately to a client whose action was rejected.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlayerState is one seat's entry in the match snapshot.
type PlayerState struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
}

// MatchStateSnapshot is broadcast whenever the table composition changes.
type MatchStateSnapshot struct {
	Seats     []string             `json:"seats"`
	OwnerSeat int                  `json:"owner_seat"`
	Tick      int64                `json:"tick"`
	Phase     string               `json:"phase"`
	Players   []PlayerState        `json:"players"`
	Game      *domain.GameSnapshot `json:"game,omitempty"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in lobby

	BotsEnabled        bool                  `json:"bots_enabled"`
	BotMinDelay        int                   `json:"bot_min_delay"`
	BotMaxDelay        int                   `json:"bot_max_delay"`
	BotAutoFillDelay   int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil       int64                 `json:"bot_wait_until"`
	LastShortTableTick int64                 `json:"last_short_table_tick"`
	Bots               map[string]*bot.Agent `json:"-"`

	// TurnDuration is the seconds a human may sit on a turn before the
	// server acts for them. TurnDeadline is the tick that forces it.
	TurnDuration int64 `json:"turn_duration"`
	TurnDeadline int64 `json:"turn_deadline"`

	Leaderboard ports.LeaderboardPort `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		TurnDuration:     int64(config.TurnDurationSeconds()),
		BotAutoFillDelay: config.BotAutoFillDelaySeconds(),
		Leaderboard:      NewNakamaLeaderboardAdapter(nk),
	}

	// Environment overrides for bot behaviour.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["coinche_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
		if val, ok := env["coinche_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMinDelay = i
			}
		}
		if val, ok := env["coinche_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMaxDelay = i
			}
		}
		if val, ok := env["coinche_bot_auto_fill_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotAutoFillDelay = i
			}
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
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

		// Assign seat: try empty seats first, then bots (if lobby).
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}

		mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
			Kind: app.EventPlayerJoined,
			Payload: app.PlayerJoinedPayload{
				UserID: p.GetUserId(),
				Seat:   domain.Seat(matchState.seatOf(p.GetUserId())),
			},
		})
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. During a
// running game the leaver's seat is handed to a bot so the table stays
// four-handed; in the lobby the seat is simply freed.
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
		mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
			Kind: app.EventPlayerLeft,
			Payload: app.PlayerLeftPayload{
				UserID: p.GetUserId(),
				Seat:   domain.Seat(seat),
			},
		})
		if matchState.Game != nil && matchState.BotsEnabled {
			identity := bot.GetBotIdentity(seat)
			matchState.Seats[seat] = identity.UserID
			matchState.Bots[identity.UserID] = newAgent(identity)
			logger.Info("MatchLeave: User %s left mid-game, bot %s takes seat %d.", p.GetUserId(), identity.UserID, seat)
		} else {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}
	}

	matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

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
		case OpPlaceBid:
			mh.handlePlaceBid(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.Game == nil {
		if matchState.BotsEnabled {
			mh.autoFillLobby(matchState, dispatcher, logger)
		}
	} else {
		mh.processTurn(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// autoFillLobby adds bots to every empty seat once a lone human has waited
// out the fill delay.
func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	humanCount := state.GetHumanPlayerCount()
	if humanCount == 0 || state.GetOpenSeatsCount() == 0 {
		state.LastShortTableTick = 0
		return
	}

	if state.LastShortTableTick == 0 {
		state.LastShortTableTick = state.Tick
		logger.Debug("autoFillLobby: Short table detected, starting auto-fill timer.")
		return
	}
	if state.Tick-state.LastShortTableTick < int64(state.BotAutoFillDelay) {
		return
	}

	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = newAgent(identity)
		logger.Info("autoFillLobby: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
	}
	state.LastShortTableTick = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

func newAgent(identity bot.BotIdentity) *bot.Agent {
	return &bot.Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Strategy: bot.BrainForLevel(identity.Level),
	}
}

// processTurn drives the current turn forward: bots act after a short
// humanizing delay, and humans who outstay the turn clock get a forced
// action (pass in the auction, first legal card in play).
func (mh *matchHandler) processTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round := state.Game.Round
	if round == nil || round.Terminal() {
		return
	}
	seat, ok := round.Turn()
	if !ok {
		return
	}
	userID := state.Seats[seat]

	if agent, isBot := state.Bots[userID]; isBot && userID != "" {
		if state.BotWaitUntil == 0 {
			delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
			state.BotWaitUntil = state.Tick + int64(delay)
			return
		}
		if state.Tick < state.BotWaitUntil {
			return
		}
		state.BotWaitUntil = 0

		move, err := agent.Act(state.Game, seat)
		if err != nil {
			logger.Error("processTurn: Bot %s failed to act: %v", userID, err)
			return
		}
		switch {
		case move.Bid != nil:
			mh.applyBid(ctx, state, dispatcher, logger, seat, *move.Bid)
		case move.Card != nil:
			mh.applyCard(ctx, state, dispatcher, logger, seat, *move.Card)
		}
		return
	}

	// Human (or vacated) seat: enforce the turn clock. An empty seat is
	// forced immediately so the game never stalls.
	forceNow := userID == ""
	if !forceNow {
		if state.TurnDeadline == 0 {
			state.TurnDeadline = state.Tick + state.TurnDuration
			return
		}
		forceNow = state.Tick >= state.TurnDeadline
	}
	if !forceNow {
		return
	}
	logger.Info("processTurn: Forcing action for seat %d (user %q).", seat, userID)
	mh.forceAction(ctx, state, dispatcher, logger, seat)
}

func (mh *matchHandler) forceAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat domain.Seat) {
	round := state.Game.Round
	switch round.Phase {
	case domain.RoundBidding:
		mh.applyBid(ctx, state, dispatcher, logger, seat, domain.PassBid)
	case domain.RoundPlaying:
		legal := state.Game.LegalPlays(seat)
		if len(legal) == 0 {
			logger.Error("forceAction: No legal play for seat %d.", seat)
			return
		}
		mh.applyCard(ctx, state, dispatcher, logger, seat, legal[0])
	}
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: Game already running.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	// Coinche needs a full table; top up with bots when allowed.
	if state.GetOpenSeatsCount() > 0 {
		if !state.BotsEnabled {
			logger.Warn("StartGame: Cannot start with %d open seats.", state.GetOpenSeatsCount())
			return
		}
		for i, seat := range state.Seats {
			if seat != "" {
				continue
			}
			identity := bot.GetBotIdentity(i)
			state.Seats[i] = identity.UserID
			state.Bots[identity.UserID] = newAgent(identity)
		}
		mh.broadcastMatchState(state, dispatcher, logger)
	}

	game, events, err := state.App.StartGame(state.Seats[:], config.Rules())
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}
	state.Game = game

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)

	logger.Info("StartGame: Game started, target score %d.", game.Rules.TargetScore)
}

func (mh *matchHandler) handlePlaceBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Game == nil {
		logger.Warn("handlePlaceBid: Game not started.")
		return
	}
	if senderSeat < 0 {
		logger.Warn("handlePlaceBid: User %s holds no seat.", senderID)
		return
	}

	var request PlaceBidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlaceBid: Invalid PlaceBidRequest from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed bid")
		return
	}

	if err := mh.applyBid(ctx, state, dispatcher, logger, domain.Seat(senderSeat), request.Bid); err != nil {
		logger.Warn("handlePlaceBid: User %s (seat %d) failed to bid: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
	}
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s holds no seat.", senderID)
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlayCard: Invalid PlayCardRequest from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed card")
		return
	}

	if err := mh.applyCard(ctx, state, dispatcher, logger, domain.Seat(senderSeat), request.Card); err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %v: %v", senderID, senderSeat, request.Card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
	}
}

func (mh *matchHandler) applyBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat domain.Seat, bid domain.Bid) error {
	events, err := state.App.PlaceBid(state.Game, state.Seats[:], seat, bid)
	if err != nil {
		return err
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	return nil
}

func (mh *matchHandler) applyCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat domain.Seat, card domain.Card) error {
	events, err := state.App.PlayCard(state.Game, state.Seats[:], seat, card)
	if err != nil {
		return err
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	return nil
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:    OpPlayerJoined,
	app.EventPlayerLeft:      OpPlayerLeft,
	app.EventGameStarted:     OpGameStarted,
	app.EventRoundStarted:    OpRoundStarted,
	app.EventHandDealt:       OpHandDealt,
	app.EventBidPlaced:       OpBidPlaced,
	app.EventContractSet:     OpContractSet,
	app.EventRoundVoided:     OpRoundVoided,
	app.EventCardPlayed:      OpCardPlayed,
	app.EventBeloteAnnounced: OpBeloteAnnounced,
	app.EventTrickWon:        OpTrickWon,
	app.EventRoundScored:     OpRoundScored,
	app.EventGameEnded:       OpGameEnded,
}

// dispatchEvents broadcasts the events of one applied action, then drives
// the follow-up transitions they imply: redealing after a scored or
// voided round, and settling when the match ends. Any successful action
// resets the turn clocks.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	state.TurnDeadline = 0
	state.BotWaitUntil = 0

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	for _, ev := range events {
		switch ev.Kind {
		case app.EventRoundScored, app.EventRoundVoided:
			if state.Game == nil || state.Game.Status != domain.StatusInProgress {
				continue
			}
			more, err := state.App.StartNextRound(state.Game, state.Seats[:])
			if err != nil {
				logger.Error("dispatchEvents: Failed to deal next round: %v", err)
				continue
			}
			for _, e := range more {
				mh.broadcastEvent(state, dispatcher, logger, e)
			}
		case app.EventGameEnded:
			mh.settleGame(ctx, state, logger, ev.Payload.(app.GameEndedPayload))
			state.Game = nil
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastMatchState(state, dispatcher, logger)
		}
	}
}

// settleGame writes the win to the leaderboard for every human on the
// winning team.
func (mh *matchHandler) settleGame(ctx context.Context, state *MatchState, logger runtime.Logger, payload app.GameEndedPayload) {
	if state.Leaderboard == nil {
		return
	}
	var updates []ports.ResultUpdate
	for i, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		won := domain.Seat(i).Team() == payload.Winner
		updates = append(updates, ports.ResultUpdate{
			UserID: userID,
			Score:  1,
			Won:    won,
			Metadata: map[string]interface{}{
				"match_id":    ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"final_score": payload.Scores,
			},
		})
	}
	if err := state.Leaderboard.SubmitResults(ctx, updates); err != nil {
		logger.Error("settleGame: Failed to submit results: %v", err)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they
		// are bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if identity, ok := bot.GetBotConfig(userId); ok {
			displayName = identity.DisplayName
		}

		playerStates = append(playerStates, PlayerState{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     labelPhase(state),
		Players:   playerStates,
	}
	if state.Game != nil {
		gs := state.Game.State()
		snapshot.Game = &gs
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal match snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

func labelPhase(state *MatchState) string {
	if state.Game != nil {
		return "playing"
	}
	return "lobby"
}

func marshalLabel(state *MatchState) (string, error) {
	label := MatchLabel{
		Game:  "coinche",
		Open:  state.GetOpenSeatsCount(),
		Phase: labelPhase(state),
	}
	bytes, err := json.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
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
