package repositories

import (
	"chat-live/domain"
	"context"
	errs "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// ChatRepository stores chats and their participants.
// Chat management belongs to the REST layer; the delivery core only
// reads participants, the write methods exist for that layer and tests.
type ChatRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewChatRepository(db *badger.DB) (*ChatRepository, error) {
	seq, err := db.GetSequence([]byte(chatSequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("chat sequence: %w", err)
	}
	return &ChatRepository{db: db, seq: seq}, nil
}

// CreateChat persists a chat with an initial participant set and returns it.
func (c *ChatRepository) CreateChat(ctx context.Context, kind domain.ChatKind, name *string, participants ...domain.Participant) (domain.Chat, error) {
	next, err := c.seq.Next()
	if err != nil {
		return domain.Chat{}, err
	}
	now := time.Now().UTC()
	chat := domain.Chat{ID: domain.ChatID(next + 1), Kind: kind, Name: name, CreatedAt: now}
	err = update(ctx, c.db, func(txn *badger.Txn) error {
		if err := setJSON(txn, chatKey(chat.ID), chat); err != nil {
			return err
		}
		for _, p := range participants {
			p.ChatID = chat.ID
			if p.JoinedAt.IsZero() {
				p.JoinedAt = now
			}
			if err := setJSON(txn, participantKey(chat.ID, p.UserID), p); err != nil {
				return err
			}
		}
		return nil
	})
	return chat, err
}

func (c *ChatRepository) AddParticipant(ctx context.Context, p domain.Participant) error {
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now().UTC()
	}
	return update(ctx, c.db, func(txn *badger.Txn) error {
		return setJSON(txn, participantKey(p.ChatID, p.UserID), p)
	})
}

func (c *ChatRepository) RemoveParticipant(ctx context.Context, chatID domain.ChatID, userID domain.UserID) error {
	return update(ctx, c.db, func(txn *badger.Txn) error {
		return txn.Delete(participantKey(chatID, userID))
	})
}

func (c *ChatRepository) IsParticipant(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error) {
	found := false
	err := view(ctx, c.db, func(txn *badger.Txn) error {
		_, err := txn.Get(participantKey(chatID, userID))
		switch {
		case err == nil:
			found = true
			return nil
		case errs.Is(err, badger.ErrKeyNotFound):
			return nil
		default:
			return err
		}
	})
	return found, err
}

// IsChatAdmin reports false for users that are not participants at all.
func (c *ChatRepository) IsChatAdmin(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error) {
	var p domain.Participant
	err := view(ctx, c.db, func(txn *badger.Txn) error {
		return getJSON(txn, participantKey(chatID, userID), &p)
	})
	if errs.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsAdmin, nil
}

func (c *ChatRepository) ParticipantIDs(ctx context.Context, chatID domain.ChatID) ([]domain.UserID, error) {
	var participants []domain.Participant
	err := view(ctx, c.db, func(txn *badger.Txn) error {
		var err error
		participants, err = scanJSON[domain.Participant](txn, participantChatPrefix(chatID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(participants, func(p domain.Participant, _ int) domain.UserID {
		return p.UserID
	}), nil
}

func (c *ChatRepository) Close() error {
	return c.seq.Release()
}
