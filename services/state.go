package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionState is the live per-session blob cached in Redis. It is the fast
// path for reads; the Store remains the source of truth and the state is
// rebuilt from it on a cache miss (see SessionService.loadState).
type SessionState struct {
	SessionID     uint          `json:"session_id"`
	Code          string        `json:"code"`
	Rows          int           `json:"rows"`
	Cols          int           `json:"cols"`
	WinConditions []string      `json:"win_conditions"`
	Status        string        `json:"status"`
	PoolSize      int           `json:"pool_size"`
	DrawOrder     []string      `json:"draw_order"` // fixed permutation, draws are taken in order
	Draws         []StateDraw   `json:"draws"`
	Players       []StatePlayer `json:"players"`
	RoundNumber   int           `json:"round_number"`
	RoundRule     string        `json:"round_rule"`
}

type StateDraw struct {
	Index   int       `json:"index"`
	Term    string    `json:"term"`
	DrawnAt time.Time `json:"drawn_at"`
}

type StatePlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

const stateTTL = 2 * time.Hour

// stateCache wraps the Redis side of the two-tier arrangement.
type stateCache struct {
	redis *redis.Client
}

func newStateCache(client *redis.Client) *stateCache {
	return &stateCache{redis: client}
}

func stateKey(code string) string {
	return "session:" + code
}

func (c *stateCache) Get(ctx context.Context, code string) *SessionState {
	data, err := c.redis.Get(ctx, stateKey(code)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting session state for %s: %v", code, err)
		}
		return nil
	}

	var state SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		log.Printf("Failed to unmarshal session state for %s: %v", code, err)
		return nil
	}
	return &state
}

func (c *stateCache) Put(ctx context.Context, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	if err := c.redis.Set(ctx, stateKey(state.Code), data, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

// Drop evicts a session's cached state so the next read goes through to the
// Store. Used when a Put fails after a successful durable write: a stale blob
// would make the draw sequencer reuse an index, a missing one just costs a
// rebuild.
func (c *stateCache) Drop(ctx context.Context, code string) {
	if err := c.redis.Del(ctx, stateKey(code)).Err(); err != nil {
		log.Printf("Redis error dropping session state for %s: %v", code, err)
	}
}
