// internal/game/game_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydeepc/tuas-game/engine"
	"github.com/jaydeepc/tuas-game/internal/models"
)

// mockBroadcaster captures game events for testing assertions.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []GameEvent
	playerEvents map[uuid.UUID][]GameEvent
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{
		playerEvents: make(map[uuid.UUID][]GameEvent),
	}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(playerID uuid.UUID, ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[playerID] = append(mb.playerEvents[playerID], ev)
}

func (mb *mockBroadcaster) clear() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = []GameEvent{}
	mb.playerEvents = make(map[uuid.UUID][]GameEvent)
}

func (mb *mockBroadcaster) findEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == eventType {
			return &mb.allEvents[i]
		}
	}
	return nil
}

func (mb *mockBroadcaster) lastPlayerEvent(playerID uuid.UUID, eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	events := mb.playerEvents[playerID]
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	return nil
}

// setupStartedGame drives a game with the given token selections through
// the full setup flow so tests start in the playing phase. Turn order
// follows token type, so players[0] holds rock and goes first.
func setupStartedGame(t *testing.T, specs ...[2]string) (*RPSGame, []*models.Player, *mockBroadcaster) {
	t.Helper()

	g := NewRPSGame(42)
	g.TurnDuration = 0
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	players := make([]*models.Player, len(specs))
	for i := range specs {
		players[i] = &models.Player{
			ID:        uuid.New(),
			Connected: true,
			User:      &models.User{ID: uuid.New(), Username: "Player" + string(rune('A'+i))},
		}
		g.AddPlayer(players[i])
	}

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_set_player_count",
		Payload:    map[string]interface{}{"count": float64(len(specs))},
	})
	require.True(t, g.Seated, "seats should be assigned after player count")
	require.Len(t, g.State.Players, len(specs))

	for i, spec := range specs {
		g.HandlePlayerAction(players[i].ID, models.GameAction{
			ActionType: "action_select_token",
			Payload:    map[string]interface{}{"tokenType": spec[0], "tokenColor": spec[1]},
		})
	}
	g.HandlePlayerAction(players[0].ID, models.GameAction{ActionType: "action_place_all_random"})
	g.HandlePlayerAction(players[0].ID, models.GameAction{ActionType: "action_start_game"})
	require.Equal(t, engine.PhasePlaying, g.State.Phase, "game should be in playing phase")

	mb.clear()
	return g, players, mb
}

// TestSetupAssignsSeats verifies engine seats adopt the connected players'
// identities in join order.
func TestSetupAssignsSeats(t *testing.T) {
	g, players, _ := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	require.Len(t, g.State.Players, 2)
	// Rock sorts first, and players[0] picked rock.
	assert.Equal(t, players[0].ID, g.State.Players[0].ID)
	assert.Equal(t, "PlayerA", g.State.Players[0].Name)
	assert.Equal(t, players[1].ID, g.State.Players[1].ID)
}

// TestStartGameBroadcastsTurn verifies the start action announces the
// first player's turn.
func TestStartGameBroadcastsTurn(t *testing.T) {
	g := NewRPSGame(42)
	g.TurnDuration = 0
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	players := []*models.Player{
		{ID: uuid.New(), Connected: true, User: &models.User{ID: uuid.New(), Username: "PlayerA"}},
		{ID: uuid.New(), Connected: true, User: &models.User{ID: uuid.New(), Username: "PlayerB"}},
	}
	for _, p := range players {
		g.AddPlayer(p)
	}
	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_set_player_count",
		Payload:    map[string]interface{}{"count": float64(2)},
	})
	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_select_token",
		Payload:    map[string]interface{}{"tokenType": "scissors", "tokenColor": "yellow"},
	})
	g.HandlePlayerAction(players[1].ID, models.GameAction{
		ActionType: "action_select_token",
		Payload:    map[string]interface{}{"tokenType": "paper", "tokenColor": "red"},
	})
	g.HandlePlayerAction(players[0].ID, models.GameAction{ActionType: "action_place_all_random"})
	g.HandlePlayerAction(players[0].ID, models.GameAction{ActionType: "action_start_game"})

	turnEvent := mb.findEventByType(EventGamePlayerTurn)
	require.NotNil(t, turnEvent, "expected a turn event after start")
	// Paper sorts before scissors, so PlayerB goes first.
	assert.Equal(t, players[1].ID, turnEvent.User.ID)
	assert.Equal(t, 1, g.TurnID)
}

// TestRejectedActionSendsPrivateFail verifies a rejected action produces
// a private failure event and leaves the state untouched.
func TestRejectedActionSendsPrivateFail(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_set_player_count",
		Payload:    map[string]interface{}{"count": float64(3)},
	})

	failEvent := mb.lastPlayerEvent(players[0].ID, EventPrivateActionFail)
	require.NotNil(t, failEvent, "expected a private failure event")
	assert.Equal(t, "action_set_player_count", failEvent.Payload["action"])
	assert.Len(t, g.State.Players, 2, "rejected action must not change state")
}

// TestSyncStateHidesOpponentHands verifies each observer sees their own
// hand contents but only counts for the opponent.
func TestSyncStateHidesOpponentHands(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_draw_card",
		Payload:    map[string]interface{}{"cardType": "advantage"},
	})

	ownSync := mb.lastPlayerEvent(players[0].ID, EventPrivateSyncState)
	require.NotNil(t, ownSync)
	require.NotNil(t, ownSync.State)
	require.Len(t, ownSync.State.Players, 2)
	assert.Equal(t, 1, ownSync.State.Players[0].AdvantageCount)
	assert.Len(t, ownSync.State.Players[0].AdvantageCards, 1, "own hand should be revealed")

	otherSync := mb.lastPlayerEvent(players[1].ID, EventPrivateSyncState)
	require.NotNil(t, otherSync)
	require.NotNil(t, otherSync.State)
	assert.Equal(t, 1, otherSync.State.Players[0].AdvantageCount)
	assert.Empty(t, otherSync.State.Players[0].AdvantageCards, "opponent hand must stay hidden")
}

// TestDuelFlowEvents verifies duel start and result events.
func TestDuelFlowEvents(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)
	g.State.Players[1].Token.Position = 6

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_initiate_duel",
		Payload:    map[string]interface{}{"opponentId": players[1].ID.String()},
	})
	startEvent := mb.findEventByType(EventGameDuelStart)
	require.NotNil(t, startEvent, "expected duel start event")
	assert.Equal(t, players[0].ID.String(), startEvent.Payload["player1"])
	require.Equal(t, engine.PhaseDuel, g.State.Phase)

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_duel_roll",
		Payload:    map[string]interface{}{"player1Value": "rock", "player2Value": "scissors"},
	})
	resultEvent := mb.findEventByType(EventGameDuelResult)
	require.NotNil(t, resultEvent, "expected duel result event")
	assert.Equal(t, "player1", resultEvent.Payload["result"])
	assert.Equal(t, 2, g.State.Players[1].Token.Position, "duel loser should move back 4")
}

// TestInteractionEventOnLanding verifies the phase edge into interaction
// produces a public event carrying the options.
func TestInteractionEventOnLanding(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)
	// Park a scissors token where the mover will land.
	for i := range g.State.BoardTokens {
		g.State.BoardTokens[i].Position = -1
	}
	g.State.BoardTokens[0].Type = engine.Scissors
	g.State.BoardTokens[0].Position = 4

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_move",
		Payload:    map[string]interface{}{"spaces": float64(4)},
	})

	inEvent := mb.findEventByType(EventGameInteraction)
	require.NotNil(t, inEvent, "expected interaction event")
	assert.Equal(t, string(engine.MoveForwardOrDrawCard), inEvent.Payload["interactionType"])
	opts, ok := inEvent.Payload["options"].([]string)
	require.True(t, ok)
	assert.Contains(t, opts, "Move forward 2 spaces")
}

// TestGameEndFiresEventAndCallback verifies the win path ends the game,
// broadcasts the result, and invokes the OnGameEnd callback.
func TestGameEndFiresEventAndCallback(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	var cbWinner uuid.UUID
	var cbPositions map[uuid.UUID]int
	g.OnGameEnd = func(lobbyID, winner uuid.UUID, positions map[uuid.UUID]int) {
		cbWinner = winner
		cbPositions = positions
	}

	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_move",
		Payload:    map[string]interface{}{"spaces": float64(g.State.BoardSize)},
	})

	require.True(t, g.GameOver, "game should be over after a winning move")
	assert.Equal(t, players[0].ID, cbWinner)
	assert.Equal(t, g.State.BoardSize, cbPositions[players[0].ID])

	endEvent := mb.findEventByType(EventGameEnd)
	require.NotNil(t, endEvent, "expected game end event")
	assert.Equal(t, players[0].ID.String(), endEvent.Payload["winner"])

	// Further play actions are ignored once the game is over.
	mb.clear()
	g.HandlePlayerAction(players[1].ID, models.GameAction{ActionType: "action_end_turn"})
	assert.Nil(t, mb.findEventByType(EventGamePlayerTurn))
}

// TestDisconnectedPlayerIgnored verifies actions from disconnected
// players are dropped.
func TestDisconnectedPlayerIgnored(t *testing.T) {
	g, players, mb := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	g.HandleDisconnect(players[0].ID)
	mb.clear()

	before := g.State.Players[0].Token.Position
	g.HandlePlayerAction(players[0].ID, models.GameAction{
		ActionType: "action_move",
		Payload:    map[string]interface{}{"spaces": float64(3)},
	})
	assert.Equal(t, before, g.State.Players[0].Token.Position)
}

// TestTurnTimeoutEndsTurn verifies the timer forces the turn along when
// the current player stalls.
func TestTurnTimeoutEndsTurn(t *testing.T) {
	g, _, _ := setupStartedGame(t,
		[2]string{"rock", "orange"},
		[2]string{"paper", "red"},
	)

	g.Mu.Lock()
	g.TurnDuration = 50 * time.Millisecond
	g.scheduleTurnTimer()
	g.Mu.Unlock()

	assert.Eventually(t, func() bool {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		return g.TurnID >= 2
	}, 2*time.Second, 10*time.Millisecond, "turn should advance on timeout")

	g.Mu.Lock()
	g.TurnDuration = 0
	if g.turnTimer != nil {
		g.turnTimer.Stop()
		g.turnTimer = nil
	}
	g.Mu.Unlock()
}
