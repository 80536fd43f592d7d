// internal/cache/redis.go

// Package cache publishes board snapshots to a Redis queue for the external
// record-keeper. Pushes are fire-and-forget from the room's perspective.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultQueueName is the Redis list that receives board snapshots.
const DefaultQueueName = "gomoku_moves"

// BoardSnapshot is one journal entry: the full board for a match at the moment
// it was recorded.
type BoardSnapshot struct {
	GameID    string   `json:"game_id"`
	Board     [][]*int `json:"board"`
	Timestamp int64    `json:"timestamp"`
}

// ConnectRedis initializes the global client from REDIS_ADDR (default
// "localhost:6379").
func ConnectRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Rdb = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishBoardSnapshot serializes the snapshot and pushes it onto the queue.
func PublishBoardSnapshot(ctx context.Context, snap BoardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal board snapshot: %w", err)
	}

	queueName := os.Getenv("MOVE_QUEUE_NAME")
	if queueName == "" {
		queueName = DefaultQueueName
	}
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list %q: %w", queueName, err)
	}
	return nil
}
