// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/internal/auth"
	"github.com/jaydeepc/tuas-game/internal/database"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.Errorf("server: hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	id, err := database.CreateUser(r.Context(), req.Username, hash)
	if err != nil {
		logrus.Errorf("server: create user %q: %v", req.Username, err)
		writeError(w, http.StatusConflict, "could not create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       id.String(),
		"username": req.Username,
	})
}

// handleLogin verifies credentials and issues a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	id, hash, err := database.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := auth.VerifyPassword(req.Password, hash); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logrus.Errorf("server: verify password for %q: %v", req.Username, err)
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ttl := time.Duration(s.cfg.TokenTTLHrs) * time.Hour
	token, err := auth.CreateToken(s.cfg.JWTSecret, id, req.Username, ttl)
	if err != nil {
		logrus.Errorf("server: create token for %q: %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
	})
}

// authenticate extracts and verifies the caller's token from the
// Authorization header or, for WebSocket upgrades, the token query
// parameter.
func (s *Server) authenticate(r *http.Request) (*auth.Claims, error) {
	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return auth.VerifyToken(s.cfg.JWTSecret, token)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("server: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
