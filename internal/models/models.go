// internal/models/models.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// User is an authenticated account. The password hash never leaves the
// server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
}

// Player is a connected participant in one game session. It pairs the
// account with the live WebSocket connection; the authoritative game
// position lives in the engine state, keyed by the same ID.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	User      *User           `json:"user,omitempty"`
	Conn      *websocket.Conn `json:"-"`
	Connected bool            `json:"connected"`
}

// GameAction is the envelope every client message arrives in. Payload
// fields depend on ActionType and are validated by the game layer.
type GameAction struct {
	ActionType string                 `json:"action"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
