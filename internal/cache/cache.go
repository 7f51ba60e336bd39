// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. Nil until InitRedis succeeds; callers
// must check before use.
var Rdb *redis.Client

const (
	actionStreamKey     = "game:actions"
	setupIndexKeyPrefix = "game:setup_index:"
	setupIndexTTL       = 24 * time.Hour
)

// InitRedis connects the shared client and verifies the connection.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: ping redis at %s: %w", addr, err)
	}
	Rdb = client
	logrus.Infof("cache: connected to redis at %s", addr)
	return nil
}

// GameActionRecord is one entry in the per-game action history stream,
// consumed by the historian for replay and audit.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"gameId"`
	ActionIndex   int                    `json:"actionIndex"`
	ActorUserID   uuid.UUID              `json:"actorUserId"`
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload"`
	Timestamp     int64                  `json:"timestamp"`
}

// PublishGameAction appends an action record to the history stream.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return fmt.Errorf("cache: redis client not initialized")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal action record: %w", err)
	}
	return Rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: actionStreamKey,
		Values: map[string]interface{}{
			"game":   rec.GameID.String(),
			"index":  rec.ActionIndex,
			"record": data,
		},
	}).Err()
}

// SetSetupPlayerIndex mirrors the resumable setup position for a game so
// an interrupted setup flow can pick up where it left off.
func SetSetupPlayerIndex(ctx context.Context, gameID uuid.UUID, index int) error {
	if Rdb == nil {
		return fmt.Errorf("cache: redis client not initialized")
	}
	key := setupIndexKeyPrefix + gameID.String()
	return Rdb.Set(ctx, key, index, setupIndexTTL).Err()
}

// GetSetupPlayerIndex reads the mirrored setup position. Returns 0 when no
// value is stored.
func GetSetupPlayerIndex(ctx context.Context, gameID uuid.UUID) (int, error) {
	if Rdb == nil {
		return 0, fmt.Errorf("cache: redis client not initialized")
	}
	key := setupIndexKeyPrefix + gameID.String()
	val, err := Rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: get setup index: %w", err)
	}
	return val, nil
}

// ClearSetupPlayerIndex removes the mirrored setup position once setup
// completes.
func ClearSetupPlayerIndex(ctx context.Context, gameID uuid.UUID) error {
	if Rdb == nil {
		return fmt.Errorf("cache: redis client not initialized")
	}
	return Rdb.Del(ctx, setupIndexKeyPrefix+gameID.String()).Err()
}
