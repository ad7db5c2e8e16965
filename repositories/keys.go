package repositories

import (
	"chat-live/domain"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Keys are zero padded to 19 digits so that lexicographical order in
// Badger matches numerical order of the ids.
const (
	userPrefix        = "user:"
	chatPrefix        = "chat:"
	participantPrefix = "participant:"
	messagePrefix     = "msg:"
	chatMessagePrefix = "chatmsg:"
	readPrefix        = "read:"
	typingPrefix      = "typing:"

	messageSequenceKey = "seq:msg"
	chatSequenceKey    = "seq:chat"
	sequenceBandwidth  = 100
)

func userKey(id domain.UserID) []byte {
	return []byte(fmt.Sprintf("%s%019d", userPrefix, id))
}

func chatKey(id domain.ChatID) []byte {
	return []byte(fmt.Sprintf("%s%019d", chatPrefix, id))
}

func participantChatPrefix(chatID domain.ChatID) []byte {
	return []byte(fmt.Sprintf("%s%019d:", participantPrefix, chatID))
}

func participantKey(chatID domain.ChatID, userID domain.UserID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", participantPrefix, chatID, userID))
}

func messageKey(id domain.MessageID) []byte {
	return []byte(fmt.Sprintf("%s%019d", messagePrefix, id))
}

func chatMessageChatPrefix(chatID domain.ChatID) []byte {
	return []byte(fmt.Sprintf("%s%019d:", chatMessagePrefix, chatID))
}

func chatMessageKey(chatID domain.ChatID, id domain.MessageID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", chatMessagePrefix, chatID, id))
}

func readMessagePrefix(messageID domain.MessageID) []byte {
	return []byte(fmt.Sprintf("%s%019d:", readPrefix, messageID))
}

func readKey(messageID domain.MessageID, readerID domain.UserID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", readPrefix, messageID, readerID))
}

func typingChatPrefix(chatID domain.ChatID) []byte {
	return []byte(fmt.Sprintf("%s%019d:", typingPrefix, chatID))
}

func typingKey(chatID domain.ChatID, userID domain.UserID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", typingPrefix, chatID, userID))
}

func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}

func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.Update(fn)
}

func getJSON(txn *badger.Txn, key []byte, out any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, key []byte, in any) error {
	bytes, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, bytes)
}

// scanJSON decodes every value under prefix, in key order.
func scanJSON[T any](txn *badger.Txn, prefix []byte) ([]T, error) {
	var out []T
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var value T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}
