package repositories

import (
	errs "errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore gathers every Badger backed repository behind the single
// store the delivery core talks to.
type BadgerStore struct {
	*ChatRepository
	*MessageRepository
	*ReceiptRepository
	*TypingRepository
	*UserRepository
}

func NewBadgerStore(db *badger.DB, log *slog.Logger, limitMessages int) (*BadgerStore, error) {
	chats, err := NewChatRepository(db)
	if err != nil {
		return nil, err
	}
	messages, err := NewMessageRepository(db, log, limitMessages)
	if err != nil {
		_ = chats.Close()
		return nil, err
	}
	return &BadgerStore{
		ChatRepository:    chats,
		MessageRepository: messages,
		ReceiptRepository: NewReceiptRepository(db),
		TypingRepository:  NewTypingRepository(db),
		UserRepository:    NewUserRepository(db),
	}, nil
}

// Close releases the leased sequence ranges. The database itself is
// owned by the caller.
func (s *BadgerStore) Close() error {
	return errs.Join(s.ChatRepository.Close(), s.MessageRepository.Close())
}
