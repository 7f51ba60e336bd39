// internal/server/server_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydeepc/tuas-game/internal/auth"
	"github.com/jaydeepc/tuas-game/internal/config"
	"github.com/jaydeepc/tuas-game/internal/game"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:    testSecret,
		TokenTTLHrs:  1,
		TurnTimerSec: 0,
	}
	s := New(cfg)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func tokenFor(t *testing.T, userID uuid.UUID, username string) string {
	t.Helper()
	token, err := auth.CreateToken(testSecret, userID, username, time.Hour)
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGamesRequireAuth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAndListGames(t *testing.T) {
	_, ts := newTestServer(t)
	token := tokenFor(t, uuid.New(), "creator")

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/games", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		GameID string `json:"gameId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.GameID)

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/games", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var listing struct {
		Games []struct {
			GameID  string `json:"gameId"`
			Phase   string `json:"phase"`
			Players int    `json:"players"`
		} `json:"games"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&listing))
	require.Len(t, listing.Games, 1)
	assert.Equal(t, created.GameID, listing.Games[0].GameID)
	assert.Equal(t, "setup", listing.Games[0].Phase)
}

func TestWebSocketRejectsUnknownGame(t *testing.T) {
	_, ts := newTestServer(t)
	token := tokenFor(t, uuid.New(), "lonely")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, resp, err := websocket.Dial(ctx, ts.URL+"/games/ws?game_id="+uuid.NewString()+"&token="+token, nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

// readEventOfType reads frames until one matches the wanted event type.
func readEventOfType(ctx context.Context, t *testing.T, conn *websocket.Conn, want game.GameEventType) game.GameEvent {
	t.Helper()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err, "reading event of type %s", want)
		var ev game.GameEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		if ev.Type == want {
			return ev
		}
	}
}

func TestWebSocketGameFlow(t *testing.T) {
	s, ts := newTestServer(t)
	g := s.createGame()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userA := uuid.New()
	userB := uuid.New()
	dial := func(userID uuid.UUID, name string) *websocket.Conn {
		url := ts.URL + "/games/ws?game_id=" + g.ID.String() + "&token=" + tokenFor(t, userID, name)
		conn, _, err := websocket.Dial(ctx, url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })
		return conn
	}

	connA := dial(userA, "alice")
	readEventOfType(ctx, t, connA, game.EventPrivateSyncState)
	connB := dial(userB, "bob")
	readEventOfType(ctx, t, connB, game.EventPrivateSyncState)

	action, _ := json.Marshal(map[string]interface{}{
		"action":  "action_set_player_count",
		"payload": map[string]interface{}{"count": 2},
	})
	require.NoError(t, connA.Write(ctx, websocket.MessageText, action))

	for _, conn := range []*websocket.Conn{connA, connB} {
		for {
			ev := readEventOfType(ctx, t, conn, game.EventPrivateSyncState)
			require.NotNil(t, ev.State)
			if len(ev.State.Players) == 2 {
				break
			}
		}
	}

	g.Mu.Lock()
	seated := g.Seated
	names := []string{g.State.Players[0].Name, g.State.Players[1].Name}
	g.Mu.Unlock()
	assert.True(t, seated)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}
