// internal/server/ws.go
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/internal/models"
)

// wsClient is one player's WebSocket connection to one game. Outbound
// events go through the buffered send channel so the game loop never
// blocks on a slow socket.
type wsClient struct {
	playerID uuid.UUID
	conn     *websocket.Conn
	send     chan []byte
}

// handleGameWS upgrades the connection and runs the read loop for one
// player in one game. The token and game ID arrive as query parameters
// because browsers cannot set headers on WebSocket requests.
func (s *Server) handleGameWS(w http.ResponseWriter, r *http.Request) {
	claims, err := s.authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	gameID, err := uuid.Parse(r.URL.Query().Get("game_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game_id")
		return
	}
	g := s.getGame(gameID)
	if g == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		logrus.Debugf("server: websocket accept: %v", err)
		return
	}

	client := &wsClient{
		playerID: claims.UserID,
		conn:     conn,
		send:     make(chan []byte, 64),
	}
	s.mu.Lock()
	if old := s.clients[gameID][claims.UserID]; old != nil {
		close(old.send)
	}
	s.clients[gameID][claims.UserID] = client
	s.mu.Unlock()
	logrus.Infof("server: player %s connected to game %s", claims.UserID, gameID)

	ctx := r.Context()

	// writer
	go func() {
		ping := time.NewTicker(15 * time.Second)
		defer func() {
			ping.Stop()
			_ = conn.Close(websocket.StatusNormalClosure, "bye")
		}()
		for {
			select {
			case msg, ok := <-client.send:
				if !ok {
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.Ping(ctx)
			}
		}
	}()

	g.Mu.Lock()
	g.HandleReconnect(&models.Player{
		ID:        claims.UserID,
		Conn:      conn,
		Connected: true,
		User:      &models.User{ID: claims.UserID, Username: claims.Username},
	})
	g.Mu.Unlock()

	// reader
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var action models.GameAction
		if err := json.Unmarshal(data, &action); err != nil {
			logrus.Debugf("server: bad action from %s: %v", claims.UserID, err)
			continue
		}
		g.Mu.Lock()
		g.HandlePlayerAction(claims.UserID, action)
		g.Mu.Unlock()
	}

	// A newer connection for the same player may have replaced this one;
	// only the active connection tears the player down.
	s.mu.Lock()
	active := s.clients[gameID][claims.UserID] == client
	if active {
		delete(s.clients[gameID], claims.UserID)
		close(client.send)
	}
	s.mu.Unlock()

	if active {
		g.Mu.Lock()
		g.HandleDisconnect(claims.UserID)
		g.Mu.Unlock()
		logrus.Infof("server: player %s disconnected from game %s", claims.UserID, gameID)
	}
}
