package postgres

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/errors"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var _ contract.ChatStore = (*Store)(nil)

// openTestStore needs a disposable database, e.g.
// POSTGRES_TEST_DSN="host=localhost user=chat password=chat dbname=chat_test sslmode=disable"
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	req := require.New(t)
	store, err := Open(dsn, slog.Default(), 1, time.Second)
	req.NoError(err)
	req.NoError(store.Migrate(context.Background()))
	t.Cleanup(func() {
		for _, table := range []string{"reads", "typing_indicators", "chat_messages", "chat_participants", "chats", "personal_data", "users"} {
			store.Base.Exec("DELETE FROM " + table)
		}
		_ = store.Close()
	})
	return store
}

func TestStore_Send_Flow(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := openTestStore(t)

	// Given a chat between 1 and 2
	req.NoError(store.Base.Create(&User{ID: 1, Email: "ada@school.test"}).Error)
	req.NoError(store.Base.Create(&PersonalData{UserID: 1, FullName: lo.ToPtr("Ada")}).Error)
	req.NoError(store.Base.Create(&Chat{ID: 7, Kind: string(domain.ChatDirect)}).Error)
	req.NoError(store.Base.Create(&[]ChatParticipant{{ChatID: 7, UserID: 1, IsAdmin: true}, {ChatID: 7, UserID: 2}}).Error)

	ok, err := store.IsParticipant(ctx, 7, 1)
	req.NoError(err)
	req.True(ok)
	ok, err = store.IsParticipant(ctx, 7, 3)
	req.NoError(err)
	req.False(ok)
	admin, err := store.IsChatAdmin(ctx, 7, 1)
	req.NoError(err)
	req.True(admin)
	ids, err := store.ParticipantIDs(ctx, 7)
	req.NoError(err)
	req.Equal([]domain.UserID{1, 2}, ids)

	// When 1 sends a message
	id, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 1, Kind: domain.KindText, Body: "hi", CreatedAt: time.Now().UTC()})
	req.NoError(err)

	// Then it is rehydrated with the sender name
	msg, sender, err := store.MessageWithSender(ctx, id)
	req.NoError(err)
	req.Equal("hi", msg.Body)
	req.Equal("Ada", sender.DisplayName())

	chatID, err := store.ChatIDOf(ctx, id)
	req.NoError(err)
	req.Equal(domain.ChatID(7), chatID)

	_, err = store.ChatIDOf(ctx, id+1000)
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestStore_Read_Receipt_Is_Monotonic(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := openTestStore(t)
	later := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	readAt, err := store.UpsertReadReceipt(ctx, 42, 2, later)
	req.NoError(err)
	req.True(later.Equal(readAt))

	readAt, err = store.UpsertReadReceipt(ctx, 42, 2, later.Add(-time.Hour))
	req.NoError(err)
	req.True(later.Equal(readAt))

	var count int64
	req.NoError(store.Base.Model(&Read{}).Where("message_id = ?", 42).Count(&count).Error)
	req.Equal(int64(1), count)
}

func TestStore_Typing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Now().UTC()

	req.NoError(store.UpsertTyping(ctx, domain.TypingIndicator{ChatID: 7, UserID: 1, StartedAt: now, ExpiresAt: now.Add(-time.Second)}))
	req.NoError(store.UpsertTyping(ctx, domain.TypingIndicator{ChatID: 7, UserID: 2, StartedAt: now, ExpiresAt: now.Add(time.Minute)}))

	removed, err := store.DeleteExpiredTyping(ctx, now)
	req.NoError(err)
	req.Equal(int64(1), removed)

	req.NoError(store.DeleteTyping(ctx, 7, 2))
	var count int64
	req.NoError(store.Base.Model(&TypingIndicator{}).Count(&count).Error)
	req.Zero(count)
}
