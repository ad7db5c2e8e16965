package repositories

import (
	"chat-live/domain"
	"chat-live/errors"
	"context"
	errs "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	seq           *badger.Sequence
	limitMessages int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages int) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte(messageSequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq, limitMessages: limitMessages}, nil
}

// InsertMessage persists a message under "msg:{id}" and indexes it
// under "chatmsg:{chat_id}:{id}". Ids come from a Badger sequence so they
// are strictly increasing, which keeps the chat index in insertion order.
func (m *MessageRepository) InsertMessage(ctx context.Context, draft domain.NewMessage) (domain.MessageID, error) {
	next, err := m.seq.Next()
	if err != nil {
		return 0, err
	}
	id := domain.MessageID(next + 1)
	msg := draft.ToChatMessage(id)
	err = update(ctx, m.db, func(txn *badger.Txn) error {
		if draft.ReplyToID != nil {
			var parent domain.ChatMessage
			err := getJSON(txn, messageKey(*draft.ReplyToID), &parent)
			if errs.Is(err, badger.ErrKeyNotFound) || (err == nil && parent.ChatID != draft.ChatID) {
				return fmt.Errorf("reply target: %w", errors.ErrMessageNotFound)
			}
			if err != nil {
				return err
			}
		}
		if err := setJSON(txn, messageKey(id), msg); err != nil {
			return err
		}
		return txn.Set(chatMessageKey(msg.ChatID, id), nil)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (m *MessageRepository) Message(ctx context.Context, id domain.MessageID) (domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		return getJSON(txn, messageKey(id), &msg)
	})
	if errs.Is(err, badger.ErrKeyNotFound) {
		return domain.ChatMessage{}, fmt.Errorf("%w: %d", errors.ErrMessageNotFound, id)
	}
	return msg, err
}

// MessageWithSender reads a message back together with its sender profile,
// in a single read transaction.
func (m *MessageRepository) MessageWithSender(ctx context.Context, id domain.MessageID) (domain.ChatMessage, domain.SenderProfile, error) {
	var msg domain.ChatMessage
	var sender domain.SenderProfile
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		if err := getJSON(txn, messageKey(id), &msg); err != nil {
			if errs.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %d", errors.ErrMessageNotFound, id)
			}
			return err
		}
		if err := getJSON(txn, userKey(msg.SenderID), &sender); err != nil {
			if errs.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %d", errors.ErrUserNotFound, msg.SenderID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.ChatMessage{}, domain.SenderProfile{}, err
	}
	return msg, sender, nil
}

func (m *MessageRepository) ChatIDOf(ctx context.Context, id domain.MessageID) (domain.ChatID, error) {
	msg, err := m.Message(ctx, id)
	if err != nil {
		return 0, err
	}
	return msg.ChatID, nil
}

// History returns the messages of a chat, newest first, older than the
// cursor when one is given. The returned cursor points at the oldest
// message of the page and is nil once the chat is exhausted.
func (m *MessageRepository) History(ctx context.Context, chatID domain.ChatID, cursor *domain.MessageID) ([]domain.ChatMessage, *domain.MessageID, error) {
	var ids []domain.MessageID
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		prefix := chatMessageChatPrefix(chatID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Newest possible position, then walk backwards
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = chatMessageKey(chatID, *cursor)
		}
		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}
		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages > 0 && len(ids) == m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", m.limitMessages))
				break
			}
			raw := string(it.Item().Key()[len(prefix):])
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("corrupted chat index key %q: %w", it.Item().Key(), err)
			}
			ids = append(ids, domain.MessageID(parsed))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(ids))
	for _, id := range ids {
		msg, err := m.Message(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, msg)
	}
	if m.limitMessages == 0 || len(ids) < m.limitMessages {
		return messages, nil, nil
	}
	last := ids[len(ids)-1]
	return messages, &last, nil
}

func (m *MessageRepository) Close() error {
	return m.seq.Release()
}
