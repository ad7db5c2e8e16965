package repositories

import (
	"chat-live/domain"
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// TypingRepository stores typing indicators as Badger entries carrying a
// TTL, so that abandoned indicators disappear even without a sweeper.
type TypingRepository struct {
	db *badger.DB
}

func NewTypingRepository(db *badger.DB) *TypingRepository {
	return &TypingRepository{db: db}
}

func (t *TypingRepository) UpsertTyping(ctx context.Context, indicator domain.TypingIndicator) error {
	ttl := time.Until(indicator.ExpiresAt)
	if ttl < time.Second {
		// Badger expiry has a one second resolution
		ttl = time.Second
	}
	return update(ctx, t.db, func(txn *badger.Txn) error {
		bytes, err := json.Marshal(indicator)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		entry := badger.NewEntry(typingKey(indicator.ChatID, indicator.UserID), bytes).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (t *TypingRepository) DeleteTyping(ctx context.Context, chatID domain.ChatID, userID domain.UserID) error {
	return update(ctx, t.db, func(txn *badger.Txn) error {
		return txn.Delete(typingKey(chatID, userID))
	})
}

// Typing returns the indicator of a user in a chat, if still stored.
func (t *TypingRepository) Typing(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (domain.TypingIndicator, bool, error) {
	var indicator domain.TypingIndicator
	err := view(ctx, t.db, func(txn *badger.Txn) error {
		return getJSON(txn, typingKey(chatID, userID), &indicator)
	})
	if errs.Is(err, badger.ErrKeyNotFound) {
		return domain.TypingIndicator{}, false, nil
	}
	if err != nil {
		return domain.TypingIndicator{}, false, err
	}
	return indicator, true, nil
}

func (t *TypingRepository) ActiveTyping(ctx context.Context, chatID domain.ChatID) ([]domain.TypingIndicator, error) {
	var indicators []domain.TypingIndicator
	err := view(ctx, t.db, func(txn *badger.Txn) error {
		var err error
		indicators, err = scanJSON[domain.TypingIndicator](txn, typingChatPrefix(chatID))
		return err
	})
	return indicators, err
}
