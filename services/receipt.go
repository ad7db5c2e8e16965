package services

import (
	"chat-live/contract"
	"chat-live/domain"
	"context"
	"time"
)

// ReceiptManager records that a reader has seen a message. Recording twice
// keeps a single receipt and refreshes its timestamp.
type ReceiptManager struct {
	repo contract.ReceiptRepository
	now  func() time.Time
}

func NewReceiptManager(repo contract.ReceiptRepository) *ReceiptManager {
	return &ReceiptManager{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (m *ReceiptManager) Record(ctx context.Context, messageID domain.MessageID, readerID domain.UserID) (domain.ReadReceipt, error) {
	readAt, err := m.repo.UpsertReadReceipt(ctx, messageID, readerID, m.now())
	if err != nil {
		return domain.ReadReceipt{}, err
	}
	return domain.ReadReceipt{MessageID: messageID, ReaderID: readerID, ReadAt: readAt}, nil
}
