// internal/game/game.go
package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/engine"
	"github.com/jaydeepc/tuas-game/internal/cache"
	"github.com/jaydeepc/tuas-game/internal/database"
	"github.com/jaydeepc/tuas-game/internal/models"
)

// OnGameEndFunc is the callback executed when a game ends. It receives the
// lobby ID, the winner's ID (uuid.Nil when nobody won), and the final
// board positions by player.
type OnGameEndFunc func(lobbyID uuid.UUID, winner uuid.UUID, positions map[uuid.UUID]int)

// GameEventType represents the type of a game-related event broadcast via
// WebSockets.
type GameEventType string

const (
	EventPrivateSyncState  GameEventType = "private_sync_state"  // Private: full state view for one player.
	EventPrivateActionFail GameEventType = "private_action_fail" // Private: an action was rejected.
	EventGamePlayerTurn    GameEventType = "game_player_turn"    // Public: whose turn it is now.
	EventGameInteraction   GameEventType = "game_interaction"    // Public: a landing raised a forced decision.
	EventGameDuelStart     GameEventType = "game_duel_start"     // Public: a duel began.
	EventGameDuelResult    GameEventType = "game_duel_result"    // Public: a duel roll resolved (or drew).
	EventGameCardPlayed    GameEventType = "game_card_played"    // Public: a card left a hand.
	EventGameEnd           GameEventType = "game_end"            // Public: game over, includes winner.
)

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// GameEvent is the standard structure for broadcasting game state changes
// and actions.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *ClientState           `json:"state,omitempty"`
}

// RPSGame wraps one authoritative engine state with everything the server
// needs around it: connected players, seat assignment, broadcast
// callbacks, the turn timer, persistence, and the action history stream.
type RPSGame struct {
	ID      uuid.UUID
	LobbyID uuid.UUID

	Players []*models.Player

	// State is the authoritative snapshot. Replaced wholesale on every
	// applied action; never mutated in place outside of seat assignment.
	State engine.GameState

	// Seated reports whether connected players have been bound to engine
	// seats (happens when the player count is set).
	Seated bool

	TurnID       int
	TurnDuration time.Duration
	turnTimer    *time.Timer

	GameOver bool

	actionIndex int
	lastSeen    map[uuid.UUID]time.Time
	Mu          sync.Mutex

	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
}

// NewRPSGame creates a new game instance with default settings.
func NewRPSGame(seed uint64) *RPSGame {
	return &RPSGame{
		ID:           uuid.New(),
		State:        engine.NewGame(seed),
		TurnDuration: 60 * time.Second,
		lastSeen:     make(map[uuid.UUID]time.Time),
	}
}

// AddPlayer adds a player before seats are assigned, or marks a returning
// player as reconnected.
// Assumes lock is held by caller.
func (g *RPSGame) AddPlayer(p *models.Player) {
	for i, pl := range g.Players {
		if pl.ID == p.ID {
			g.Players[i].Conn = p.Conn
			g.Players[i].Connected = true
			g.Players[i].User = p.User
			g.lastSeen[p.ID] = time.Now()
			logrus.Infof("game %s: player %s reconnected", g.ID, p.ID)
			return
		}
	}
	if g.Seated {
		logrus.Warnf("game %s: player %s cannot join after seats are assigned", g.ID, p.ID)
		return
	}
	g.Players = append(g.Players, p)
	g.lastSeen[p.ID] = time.Now()
	g.logAction(p.ID, "player_add", nil)
}

// assignSeats binds connected players to the engine seats created by the
// player-count action, in join order. Engine seats adopt the service
// player IDs so every subsequent action addresses players by one ID.
// Assumes lock is held by caller.
func (g *RPSGame) assignSeats() {
	for i := range g.State.Players {
		if i >= len(g.Players) {
			break
		}
		g.State.Players[i].ID = g.Players[i].ID
		g.State.Players[i].Token.Owner = g.Players[i].ID
		if g.Players[i].User != nil {
			g.State.Players[i].Name = g.Players[i].User.Username
		}
	}
	g.Seated = true
}

// HandlePlayerAction routes an incoming client action into the engine.
// Rejections go back to the sender as a private event; accepted actions
// replace the authoritative state, get persisted and logged, and trigger
// a state sync to everyone.
// Assumes lock is held by caller.
func (g *RPSGame) HandlePlayerAction(playerID uuid.UUID, action models.GameAction) {
	if g.GameOver && action.ActionType != "action_reset" {
		logrus.Debugf("game %s: action %s from %s ignored, game over", g.ID, action.ActionType, playerID)
		return
	}

	player := g.getPlayerByID(playerID)
	if player == nil || !player.Connected {
		logrus.Debugf("game %s: action %s from unknown or disconnected player %s ignored", g.ID, action.ActionType, playerID)
		return
	}
	g.lastSeen[playerID] = time.Now()

	engineAction, err := buildEngineAction(playerID, action)
	if err != nil {
		g.failAction(playerID, action.ActionType, err.Error())
		return
	}

	next, err := g.State.Apply(engineAction)
	if err != nil {
		g.failAction(playerID, action.ActionType, err.Error())
		return
	}
	prevPhase := g.State.Phase
	g.State = next

	if _, ok := engineAction.(engine.SetPlayerCount); ok {
		g.assignSeats()
	}

	g.logAction(playerID, action.ActionType, action.Payload)
	g.afterApply(playerID, engineAction, prevPhase)
}

// afterApply runs the side effects of a successful action: persistence,
// the setup-index mirror, domain events, timers, and the state sync.
// Assumes lock is held by caller.
func (g *RPSGame) afterApply(actorID uuid.UUID, action engine.Action, prevPhase engine.Phase) {
	g.persistState()

	switch a := action.(type) {
	case engine.SetSetupPlayerIndex:
		go func(idx int) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if cache.Rdb == nil {
				return
			}
			if err := cache.SetSetupPlayerIndex(ctx, g.ID, idx); err != nil {
				logrus.Errorf("game %s: mirror setup index: %v", g.ID, err)
			}
		}(a.Index)

	case engine.StartGame:
		g.TurnID = 1
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if cache.Rdb == nil {
				return
			}
			if err := cache.ClearSetupPlayerIndex(ctx, g.ID); err != nil {
				logrus.Errorf("game %s: clear setup index: %v", g.ID, err)
			}
		}()
		g.scheduleTurnTimer()
		g.broadcastPlayerTurn()

	case engine.PlayCard:
		if g.State.CardInPlay != nil {
			g.fireEvent(GameEvent{
				Type: EventGameCardPlayed,
				User: &EventUser{ID: actorID},
				Payload: map[string]interface{}{
					"cardId": g.State.CardInPlay.ID.String(),
					"title":  g.State.CardInPlay.Title,
				},
			})
		}

	case engine.InitiateDuel:
		g.fireEvent(GameEvent{
			Type: EventGameDuelStart,
			User: &EventUser{ID: actorID},
			Payload: map[string]interface{}{
				"player1": a.Player1ID.String(),
				"player2": a.Player2ID.String(),
			},
		})

	case engine.DuelRoll:
		g.fireEvent(GameEvent{
			Type: EventGameDuelResult,
			Payload: map[string]interface{}{
				"player1Value": string(a.Player1Value),
				"player2Value": string(a.Player2Value),
				"result":       string(g.State.Duel.Result),
			},
		})

	case engine.EndTurn:
		g.TurnID++
		g.scheduleTurnTimer()
		g.broadcastPlayerTurn()
	}

	// A landing can raise an interaction from several actions, so detect
	// the phase edge rather than switching on the action.
	if prevPhase != engine.PhaseInteraction && g.State.Phase == engine.PhaseInteraction && g.State.CurrentInteraction != nil {
		in := g.State.CurrentInteraction
		payload := map[string]interface{}{
			"interactionType": string(in.Type),
			"options":         in.Options,
		}
		if in.SourcePlayer != nil {
			payload["sourcePlayer"] = in.SourcePlayer.ID.String()
		}
		if in.TargetPlayer != nil {
			payload["targetPlayer"] = in.TargetPlayer.ID.String()
		}
		g.fireEvent(GameEvent{Type: EventGameInteraction, Payload: payload})
	}

	g.broadcastSyncStateToAll()

	if g.State.IsTerminal() {
		g.EndGame()
	}
}

// failAction reports a rejected action back to its sender.
// Assumes lock is held by caller.
func (g *RPSGame) failAction(playerID uuid.UUID, actionType, reason string) {
	logrus.Debugf("game %s: action %s from %s rejected: %s", g.ID, actionType, playerID, reason)
	g.fireEventToPlayer(playerID, GameEvent{
		Type: EventPrivateActionFail,
		Payload: map[string]interface{}{
			"action":  actionType,
			"message": reason,
		},
	})
}

// EndGame finalizes the game: stops timers, persists the result,
// broadcasts the end event, and triggers the OnGameEnd callback.
// Assumes lock is held by caller.
func (g *RPSGame) EndGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true

	if g.turnTimer != nil {
		g.turnTimer.Stop()
		g.turnTimer = nil
	}

	winnerID := uuid.Nil
	if g.State.Winner != nil {
		winnerID = g.State.Winner.ID
	}
	positions := make(map[uuid.UUID]int, len(g.State.Players))
	for _, p := range g.State.Players {
		positions[p.ID] = p.Token.Position
	}

	g.logAction(winnerID, string(EventGameEnd), map[string]interface{}{"winner": winnerID.String()})

	finalState := g.State
	gameID := g.ID
	go func() {
		if database.DB == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.StoreFinalResult(ctx, gameID, winnerID, finalState); err != nil {
			logrus.Errorf("game %s: store final result: %v", gameID, err)
		}
	}()

	payload := map[string]interface{}{
		"winner": winnerID.String(),
	}
	posStrs := make(map[string]int, len(positions))
	for id, pos := range positions {
		posStrs[id.String()] = pos
	}
	payload["positions"] = posStrs
	g.fireEvent(GameEvent{Type: EventGameEnd, Payload: payload})

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.LobbyID, winnerID, positions)
	}
	logrus.Infof("game %s: ended, winner %s", g.ID, winnerID)
}

// HandleDisconnect marks a player as disconnected. The game keeps running;
// a disconnected player's turns time out like any other.
// Assumes lock is held by caller.
func (g *RPSGame) HandleDisconnect(playerID uuid.UUID) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			if !g.Players[i].Connected {
				return
			}
			g.Players[i].Connected = false
			g.Players[i].Conn = nil
			g.logAction(playerID, "player_disconnect", nil)
			logrus.Infof("game %s: player %s disconnected", g.ID, playerID)
			break
		}
	}
	g.broadcastSyncStateToAll()
}

// HandleReconnect marks a player as connected again and sends them the
// current state.
// Assumes lock is held by caller.
func (g *RPSGame) HandleReconnect(p *models.Player) {
	g.AddPlayer(p)
	g.sendSyncState(p.ID)
	g.broadcastSyncStateToAll()
}

// sendSyncState sends the current state view to a single player.
// Assumes lock is held by caller.
func (g *RPSGame) sendSyncState(playerID uuid.UUID) {
	state := g.ClientStateFor(playerID)
	g.fireEventToPlayer(playerID, GameEvent{
		Type:  EventPrivateSyncState,
		State: &state,
	})
}

// broadcastSyncStateToAll sends each connected player their own view.
// Assumes lock is held by caller.
func (g *RPSGame) broadcastSyncStateToAll() {
	for _, p := range g.Players {
		if p.Connected {
			g.sendSyncState(p.ID)
		}
	}
}

// scheduleTurnTimer (re)arms the timer for the current turn. When it
// fires and the turn has not moved on, the current player's turn is ended
// for them.
// Assumes lock is held by caller.
func (g *RPSGame) scheduleTurnTimer() {
	if g.turnTimer != nil {
		g.turnTimer.Stop()
		g.turnTimer = nil
	}
	if g.TurnDuration <= 0 || g.GameOver || g.State.IsTerminal() {
		return
	}

	expectedTurn := g.TurnID
	g.turnTimer = time.AfterFunc(g.TurnDuration, func() {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		if g.GameOver || g.TurnID != expectedTurn {
			return
		}
		g.handleTurnTimeout()
	})
}

// handleTurnTimeout force-ends the current player's turn.
// Assumes lock is held by caller.
func (g *RPSGame) handleTurnTimeout() {
	current := g.State.CurrentPlayer()
	if current == nil {
		return
	}
	logrus.Infof("game %s: turn %d timed out for player %s", g.ID, g.TurnID, current.ID)
	g.logAction(current.ID, "player_timeout", map[string]interface{}{"turn": g.TurnID})

	prevPhase := g.State.Phase
	next, err := g.State.Apply(engine.EndTurn{})
	if err != nil {
		logrus.Errorf("game %s: timeout end turn: %v", g.ID, err)
		return
	}
	g.State = next
	g.afterApply(current.ID, engine.EndTurn{}, prevPhase)
}

// broadcastPlayerTurn notifies all players of the current player's turn.
// Assumes lock is held by caller.
func (g *RPSGame) broadcastPlayerTurn() {
	if g.GameOver || g.State.IsTerminal() {
		return
	}
	current := g.State.CurrentPlayer()
	if current == nil {
		return
	}
	g.fireEvent(GameEvent{
		Type: EventGamePlayerTurn,
		User: &EventUser{ID: current.ID},
		Payload: map[string]interface{}{
			"turn": g.TurnID,
		},
	})
}

// persistState snapshots the authoritative state asynchronously.
// Assumes lock is held by caller.
func (g *RPSGame) persistState() {
	state := g.State
	gameID := g.ID
	go func() {
		if database.DB == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.UpsertGameState(ctx, gameID, state); err != nil {
			logrus.Errorf("game %s: persist state: %v", gameID, err)
		}
	}()
}

// fireEvent broadcasts an event to all connected players via BroadcastFn.
// Assumes lock is held by caller.
func (g *RPSGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		logrus.Warnf("game %s: BroadcastFn is nil, dropping event %s", g.ID, ev.Type)
		return
	}
	g.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to one connected player.
// Assumes lock is held by caller.
func (g *RPSGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		logrus.Warnf("game %s: BroadcastToPlayerFn is nil, dropping event %s", g.ID, ev.Type)
		return
	}
	target := g.getPlayerByID(playerID)
	if target == nil || !target.Connected {
		return
	}
	g.BroadcastToPlayerFn(playerID, ev)
}

// getPlayerByID finds a player by ID within the game's Players slice.
// Assumes lock is held by caller.
func (g *RPSGame) getPlayerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// logAction sends action details to the historian stream via Redis.
// Assumes lock is held by caller.
func (g *RPSGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorUserID:   actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	go func(rec cache.GameActionRecord) {
		if cache.Rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			logrus.Errorf("game %s: publish action %d (%s): %v", rec.GameID, rec.ActionIndex, rec.ActionType, err)
		}
	}(record)
}
