package repositories

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var _ contract.ChatStore = (*BadgerStore)(nil)

func newStore(t *testing.T, limitMessages int) *BadgerStore {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	store, err := NewBadgerStore(db, slog.Default(), limitMessages)
	req.NoError(err)
	t.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})
	return store
}

func TestChatRepository_Participants(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)

	// Given a direct chat between 1 and 2 where 1 is admin
	chat, err := store.CreateChat(ctx, domain.ChatDirect, nil,
		domain.Participant{UserID: 1, IsAdmin: true},
		domain.Participant{UserID: 2},
	)
	req.NoError(err)
	req.Equal(domain.ChatID(1), chat.ID)

	// Then
	ok, err := store.IsParticipant(ctx, chat.ID, 1)
	req.NoError(err)
	req.True(ok)
	ok, err = store.IsParticipant(ctx, chat.ID, 3)
	req.NoError(err)
	req.False(ok)

	admin, err := store.IsChatAdmin(ctx, chat.ID, 1)
	req.NoError(err)
	req.True(admin)
	admin, err = store.IsChatAdmin(ctx, chat.ID, 2)
	req.NoError(err)
	req.False(admin)
	admin, err = store.IsChatAdmin(ctx, chat.ID, 3)
	req.NoError(err)
	req.False(admin)

	ids, err := store.ParticipantIDs(ctx, chat.ID)
	req.NoError(err)
	req.Equal([]domain.UserID{1, 2}, ids)

	// When 2 leaves
	req.NoError(store.RemoveParticipant(ctx, chat.ID, 2))

	// Then
	ids, err = store.ParticipantIDs(ctx, chat.ID)
	req.NoError(err)
	req.Equal([]domain.UserID{1}, ids)
}

func TestChatRepository_Participants_Do_Not_Leak_Across_Chats(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)

	var chats []domain.Chat
	for i := 0; i < 11; i++ {
		chat, err := store.CreateChat(ctx, domain.ChatGroup, lo.ToPtr("group"), domain.Participant{UserID: domain.UserID(100 + i)})
		req.NoError(err)
		chats = append(chats, chat)
	}

	// Chat 1 must not match the "participant:...1" prefix of chat 10 or 11
	ids, err := store.ParticipantIDs(ctx, chats[0].ID)
	req.NoError(err)
	req.Equal([]domain.UserID{100}, ids)
}

func TestMessageRepository_Insert_Then_Rehydrate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)
	at := time.Now().UTC().Truncate(time.Millisecond)

	// Given a sender profile
	profile := domain.SenderProfile{ID: 1, Email: "ada@school.test", FullName: lo.ToPtr("Ada Lovelace")}
	req.NoError(store.SaveProfile(ctx, profile))

	// When a message is inserted
	id, err := store.InsertMessage(ctx, domain.NewMessage{
		ChatID: 7, SenderID: 1, Kind: domain.KindText, Body: "hi", CreatedAt: at,
	})
	req.NoError(err)
	req.Equal(domain.MessageID(1), id)

	// Then it is read back with its sender
	msg, sender, err := store.MessageWithSender(ctx, id)
	req.NoError(err)
	req.Equal(id, msg.ID)
	req.Equal(domain.ChatID(7), msg.ChatID)
	req.Equal(domain.UserID(1), msg.SenderID)
	req.Equal("hi", msg.Body)
	req.True(at.Equal(msg.CreatedAt))
	req.Equal(profile, sender)

	chatID, err := store.ChatIDOf(ctx, id)
	req.NoError(err)
	req.Equal(domain.ChatID(7), chatID)
}

func TestMessageRepository_Ids_Are_Increasing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)

	var previous domain.MessageID
	for i := 0; i < 5; i++ {
		id, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 1, Kind: domain.KindText, Body: "x"})
		req.NoError(err)
		req.Greater(id, previous)
		previous = id
	}
}

func TestMessageRepository_Missing_Message_And_Sender(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)

	_, err := store.ChatIDOf(ctx, 404)
	req.ErrorIs(err, errors.ErrNotFound)

	// Given a message whose sender has no profile
	id, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 9, Kind: domain.KindText, Body: "hi"})
	req.NoError(err)

	// Then rehydration fails even though the message exists
	_, _, err = store.MessageWithSender(ctx, id)
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestMessageRepository_Reply_Must_Target_Same_Chat(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)

	parent, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 1, Kind: domain.KindText, Body: "q"})
	req.NoError(err)

	_, err = store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 2, Kind: domain.KindText, Body: "a", ReplyToID: &parent})
	req.NoError(err)

	_, err = store.InsertMessage(ctx, domain.NewMessage{ChatID: 8, SenderID: 2, Kind: domain.KindText, Body: "a", ReplyToID: &parent})
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func TestMessageRepository_History_Pages_Backwards(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 2)

	for _, body := range []string{"a", "b", "c"} {
		_, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 7, SenderID: 1, Kind: domain.KindText, Body: body})
		req.NoError(err)
	}
	_, err := store.InsertMessage(ctx, domain.NewMessage{ChatID: 8, SenderID: 1, Kind: domain.KindText, Body: "other"})
	req.NoError(err)

	page, cursor, err := store.History(ctx, 7, nil)
	req.NoError(err)
	req.Equal([]string{"c", "b"}, lo.Map(page, func(m domain.ChatMessage, _ int) string { return m.Body }))
	req.NotNil(cursor)

	page, cursor, err = store.History(ctx, 7, cursor)
	req.NoError(err)
	req.Equal([]string{"a"}, lo.Map(page, func(m domain.ChatMessage, _ int) string { return m.Body }))
	req.Nil(cursor)
}

func TestReceiptRepository_Upsert_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	// When the same reader marks the same message twice
	readAt, err := store.UpsertReadReceipt(ctx, 42, 2, first)
	req.NoError(err)
	req.Equal(first, readAt)
	readAt, err = store.UpsertReadReceipt(ctx, 42, 2, second)
	req.NoError(err)
	req.Equal(second, readAt)

	// Then a single receipt holds the later timestamp
	receipts, err := store.ReadReceipts(ctx, 42)
	req.NoError(err)
	req.Len(receipts, 1)
	req.Equal(second, receipts[0].ReadAt)
}

func TestReceiptRepository_ReadAt_Never_Moves_Backwards(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)
	later := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := store.UpsertReadReceipt(ctx, 42, 2, later)
	req.NoError(err)
	readAt, err := store.UpsertReadReceipt(ctx, 42, 2, later.Add(-time.Hour))
	req.NoError(err)
	req.Equal(later, readAt)
}

func TestTypingRepository_Upsert_Then_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)
	now := time.Now().UTC()
	indicator := domain.TypingIndicator{ChatID: 7, UserID: 1, StartedAt: now, ExpiresAt: now.Add(5 * time.Second)}

	req.NoError(store.UpsertTyping(ctx, indicator))
	stored, ok, err := store.Typing(ctx, 7, 1)
	req.NoError(err)
	req.True(ok)
	req.True(indicator.ExpiresAt.Equal(stored.ExpiresAt))

	active, err := store.ActiveTyping(ctx, 7)
	req.NoError(err)
	req.Len(active, 1)

	req.NoError(store.DeleteTyping(ctx, 7, 1))
	_, ok, err = store.Typing(ctx, 7, 1)
	req.NoError(err)
	req.False(ok)
}

func TestTypingRepository_Entry_Expires(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t, 0)
	now := time.Now().UTC()

	// Given an indicator that expires almost immediately
	req.NoError(store.UpsertTyping(ctx, domain.TypingIndicator{ChatID: 7, UserID: 1, StartedAt: now, ExpiresAt: now}))

	// Then Badger drops it once the minimal TTL elapsed
	req.Eventually(func() bool {
		_, ok, err := store.Typing(ctx, 7, 1)
		return err == nil && !ok
	}, 3*time.Second, 100*time.Millisecond)
}

func TestUserRepository_Profile_Not_Found(t *testing.T) {
	req := require.New(t)
	store := newStore(t, 0)

	_, err := store.Profile(context.Background(), 5)
	req.ErrorIs(err, errors.ErrUserNotFound)
	req.ErrorIs(err, errors.ErrNotFound)
}
