// Package redisstore keeps typing indicators in Redis, where key expiry
// does the cleanup of abandoned indicators.
package redisstore

import (
	"chat-live/domain"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const typingKeyPrefix = "typing"

type TypingRepository struct {
	R *redis.Client
}

func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func NewTypingRepository(rdb *redis.Client) *TypingRepository {
	return &TypingRepository{R: rdb}
}

func typingKey(chatID domain.ChatID, userID domain.UserID) string {
	return fmt.Sprintf("%s:%d:%d", typingKeyPrefix, chatID, userID)
}

func (t *TypingRepository) UpsertTyping(ctx context.Context, indicator domain.TypingIndicator) error {
	bytes, err := json.Marshal(indicator)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	ttl := time.Until(indicator.ExpiresAt)
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	return t.R.Set(ctx, typingKey(indicator.ChatID, indicator.UserID), bytes, ttl).Err()
}

func (t *TypingRepository) DeleteTyping(ctx context.Context, chatID domain.ChatID, userID domain.UserID) error {
	return t.R.Del(ctx, typingKey(chatID, userID)).Err()
}

func (t *TypingRepository) Typing(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (domain.TypingIndicator, bool, error) {
	raw, err := t.R.Get(ctx, typingKey(chatID, userID)).Bytes()
	if err == redis.Nil {
		return domain.TypingIndicator{}, false, nil
	}
	if err != nil {
		return domain.TypingIndicator{}, false, err
	}
	var indicator domain.TypingIndicator
	if err := json.Unmarshal(raw, &indicator); err != nil {
		return domain.TypingIndicator{}, false, err
	}
	return indicator, true, nil
}
