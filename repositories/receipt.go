package repositories

import (
	"chat-live/domain"
	"context"
	errs "errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type ReceiptRepository struct {
	db *badger.DB
}

func NewReceiptRepository(db *badger.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// UpsertReadReceipt keeps one receipt per (message, reader). Refreshing it
// moves read_at forward; an older timestamp never overwrites a newer one.
func (r *ReceiptRepository) UpsertReadReceipt(ctx context.Context, messageID domain.MessageID, readerID domain.UserID, at time.Time) (time.Time, error) {
	readAt := at.UTC()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		key := readKey(messageID, readerID)
		var existing domain.ReadReceipt
		err := getJSON(txn, key, &existing)
		switch {
		case err == nil:
			if existing.ReadAt.After(readAt) {
				readAt = existing.ReadAt
			}
		case !errs.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return setJSON(txn, key, domain.ReadReceipt{MessageID: messageID, ReaderID: readerID, ReadAt: readAt})
	})
	if err != nil {
		return time.Time{}, err
	}
	return readAt, nil
}

func (r *ReceiptRepository) ReadReceipts(ctx context.Context, messageID domain.MessageID) ([]domain.ReadReceipt, error) {
	var receipts []domain.ReadReceipt
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		receipts, err = scanJSON[domain.ReadReceipt](txn, readMessagePrefix(messageID))
		return err
	})
	return receipts, err
}
