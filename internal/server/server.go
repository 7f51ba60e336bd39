// internal/server/server.go
package server

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/internal/config"
	"github.com/jaydeepc/tuas-game/internal/game"
)

// Server owns the HTTP surface and the registry of running games. Each
// game's broadcast callbacks route through the server's per-game client
// table.
type Server struct {
	cfg *config.Config

	// mu guards games and clients. Never acquire a game's Mu while
	// holding mu; the broadcast path runs the other way around.
	mu      sync.Mutex
	games   map[uuid.UUID]*game.RPSGame
	clients map[uuid.UUID]map[uuid.UUID]*wsClient
}

// New creates a server around the given configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:     cfg,
		games:   make(map[uuid.UUID]*game.RPSGame),
		clients: make(map[uuid.UUID]map[uuid.UUID]*wsClient),
	}
}

// Routes builds the HTTP handler for the whole service.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/games", s.handleGames)
	mux.HandleFunc("/games/ws", s.handleGameWS)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleGames creates a game on POST and lists running games on GET.
// Both require a valid token.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	claims, err := s.authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	switch r.Method {
	case http.MethodPost:
		g := s.createGame()
		logrus.Infof("server: game %s created by %s", g.ID, claims.UserID)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"gameId": g.ID.String(),
		})

	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"games": s.gamesSnapshot(),
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// createGame registers a new game and wires its callbacks into the
// server's client table.
func (s *Server) createGame() *game.RPSGame {
	g := game.NewRPSGame(randSeed())
	g.TurnDuration = time.Duration(s.cfg.TurnTimerSec) * time.Second

	gameID := g.ID
	g.BroadcastFn = func(ev game.GameEvent) {
		s.broadcastEvent(gameID, ev)
	}
	g.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.GameEvent) {
		s.sendEvent(gameID, playerID, ev)
	}
	g.OnGameEnd = func(_ uuid.UUID, winner uuid.UUID, positions map[uuid.UUID]int) {
		logrus.Infof("server: game %s finished, winner %s, %d players", gameID, winner, len(positions))
	}

	s.mu.Lock()
	s.games[gameID] = g
	s.clients[gameID] = make(map[uuid.UUID]*wsClient)
	s.mu.Unlock()
	return g
}

func (s *Server) getGame(gameID uuid.UUID) *game.RPSGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[gameID]
}

func (s *Server) gamesSnapshot() []map[string]interface{} {
	s.mu.Lock()
	games := make([]*game.RPSGame, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	s.mu.Unlock()

	list := make([]map[string]interface{}, 0, len(games))
	for _, g := range games {
		g.Mu.Lock()
		list = append(list, map[string]interface{}{
			"gameId":   g.ID.String(),
			"phase":    string(g.State.Phase),
			"players":  len(g.Players),
			"gameOver": g.GameOver,
		})
		g.Mu.Unlock()
	}
	return list
}

// broadcastEvent delivers an event to every client of a game. Slow
// clients drop messages rather than blocking the game.
func (s *Server) broadcastEvent(gameID uuid.UUID, ev game.GameEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.Errorf("server: marshal event %s: %v", ev.Type, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients[gameID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// sendEvent delivers an event to one client of a game.
func (s *Server) sendEvent(gameID, playerID uuid.UUID, ev game.GameEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.Errorf("server: marshal event %s: %v", ev.Type, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.clients[gameID][playerID]
	if c == nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func randSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}
