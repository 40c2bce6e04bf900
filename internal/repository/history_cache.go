package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voicebot-backend/internal/models"
)

const (
	historyCacheTTL = 24 * time.Hour
	historyCacheMax = 20
)

// HistoryCache keeps the recent turns of each chat session in Redis so the
// chat path can replay context to the provider without a database read.
// It is a cache only; the conversations collection stays the source of truth.
type HistoryCache struct {
	rdb *redis.Client
}

func NewHistoryCache(rdb *redis.Client) *HistoryCache {
	return &HistoryCache{rdb: rdb}
}

func (c *HistoryCache) Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error {
	key := historyKey(sessionID)

	pipe := c.rdb.TxPipeline()
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.LTrim(ctx, key, -historyCacheMax, -1)
	pipe.Expire(ctx, key, historyCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history for %s: %w", sessionID, err)
	}
	return nil
}

// Recent returns the cached turns in order. A missing key yields an empty
// slice, letting callers fall back to the conversation store.
func (c *HistoryCache) Recent(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	raw, err := c.rdb.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", sessionID, err)
	}

	msgs := make([]models.ChatMessage, 0, len(raw))
	for _, entry := range raw {
		var m models.ChatMessage
		if err := json.Unmarshal([]byte(entry), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat_history:%s", sessionID)
}
