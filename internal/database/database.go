// internal/database/database.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/engine"
)

// DB is the shared connection pool. Nil until Connect succeeds; callers
// must check before use.
var DB *pgxpool.Pool

// Connect opens the pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("database: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("database: ping: %w", err)
	}
	DB = pool
	logrus.Info("database: connected")
	return nil
}

// Migrate creates the tables used by the game server.
func Migrate(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	_, err := DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS game_states (
			game_id UUID PRIMARY KEY,
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS game_results (
			game_id UUID PRIMARY KEY,
			winner_id UUID,
			final_state JSONB NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}

// CreateUser inserts a new account.
func CreateUser(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	if DB == nil {
		return uuid.Nil, fmt.Errorf("database: not connected")
	}
	id := uuid.New()
	_, err := DB.Exec(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		id, username, passwordHash)
	if err != nil {
		return uuid.Nil, fmt.Errorf("database: create user %q: %w", username, err)
	}
	return id, nil
}

// GetUserByUsername looks up an account for login.
func GetUserByUsername(ctx context.Context, username string) (uuid.UUID, string, error) {
	if DB == nil {
		return uuid.Nil, "", fmt.Errorf("database: not connected")
	}
	var id uuid.UUID
	var hash string
	err := DB.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE username = $1`, username).Scan(&id, &hash)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("database: lookup user %q: %w", username, err)
	}
	return id, hash, nil
}

// UpsertGameState snapshots the full engine state for a game. Called after
// every applied action so an interrupted game can be restored.
func UpsertGameState(ctx context.Context, gameID uuid.UUID, state engine.GameState) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("database: marshal game state: %w", err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO game_states (game_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (game_id) DO UPDATE SET state = $2, updated_at = now()
	`, gameID, data)
	if err != nil {
		return fmt.Errorf("database: upsert game state: %w", err)
	}
	return nil
}

// LoadGameState restores the latest snapshot for a game. The caller must
// re-seed the RNG, which is not part of the serialized state.
func LoadGameState(ctx context.Context, gameID uuid.UUID) (engine.GameState, error) {
	var state engine.GameState
	if DB == nil {
		return state, fmt.Errorf("database: not connected")
	}
	var data []byte
	err := DB.QueryRow(ctx,
		`SELECT state FROM game_states WHERE game_id = $1`, gameID).Scan(&data)
	if err != nil {
		return state, fmt.Errorf("database: load game state: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("database: unmarshal game state: %w", err)
	}
	return state, nil
}

// StoreFinalResult records the finished game alongside its terminal state.
func StoreFinalResult(ctx context.Context, gameID, winnerID uuid.UUID, state engine.GameState) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("database: marshal final state: %w", err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO game_results (game_id, winner_id, final_state)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id) DO UPDATE SET winner_id = $2, final_state = $3, finished_at = now()
	`, gameID, winnerID, data)
	if err != nil {
		return fmt.Errorf("database: store final result: %w", err)
	}
	return nil
}
