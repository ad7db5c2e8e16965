package runtime

import (
	"chat-live/domain"
	"chat-live/errors"
	"chat-live/mocks"
	"chat-live/moderation"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/repositories"
	"chat-live/services"
	"context"
	errs "errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const maxContentLength = 64

type harness struct {
	store    *repositories.BadgerStore
	registry *Registry
	pipeline *Pipeline
	monitor  *observability.MonitoringManager
	chatID   domain.ChatID
	alice    *fakeSink
	bob      *fakeSink
	carol    *fakeSink
}

// newHarness wires the delivery core on a temporary Badger store with a
// direct chat between alice (1) and bob (2). Carol (3) is connected but
// is not a participant.
func newHarness(t *testing.T) *harness {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	store, err := repositories.NewBadgerStore(db, log, 0)
	req.NoError(err)
	t.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})

	req.NoError(store.SaveProfile(ctx, domain.SenderProfile{ID: 1, Email: "alice@school.test", FullName: lo.ToPtr("Alice")}))
	req.NoError(store.SaveProfile(ctx, domain.SenderProfile{ID: 2, Email: "bob@school.test"}))
	req.NoError(store.SaveProfile(ctx, domain.SenderProfile{ID: 3, Email: "carol@school.test"}))
	chat, err := store.CreateChat(ctx, domain.ChatDirect, nil,
		domain.Participant{UserID: 1},
		domain.Participant{UserID: 2},
	)
	req.NoError(err)

	monitor := observability.NewMonitoringManager(log)
	registry := NewRegistry(log, store, monitor, 4, 64)
	pipeline := NewPipeline(log,
		protocol.NewDecoder(maxContentLength),
		services.NewGate(log, store),
		store,
		NewBroadcaster(log, store, registry),
		services.NewTypingManager(log, store, store, services.DefaultTypingTTL),
		services.NewReceiptManager(store),
		monitor,
	)

	h := &harness{
		store:    store,
		registry: registry,
		pipeline: pipeline,
		monitor:  monitor,
		chatID:   chat.ID,
		alice:    newFakeSink(1),
		bob:      newFakeSink(2),
		carol:    newFakeSink(3),
	}
	registry.Register(h.alice)
	registry.Register(h.bob)
	registry.Register(h.carol)
	return h
}

func (h *harness) send(t *testing.T, sink *fakeSink, frame string) error {
	t.Helper()
	return h.pipeline.Dispatch(context.Background(), sink, []byte(frame))
}

func TestPipeline_SendMessage_Reaches_Every_Participant(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// When alice sends a message in the direct chat
	err := h.send(t, h.alice, fmt.Sprintf(`{"type":"SendMessage","chat_id":%d,"message":"Hello Bob"}`, h.chatID))
	req.NoError(err)

	// Then both participants get the same persisted message, sender included
	toBob, ok := h.bob.next(t).(protocol.NewMessage)
	req.True(ok)
	toAlice, ok := h.alice.next(t).(protocol.NewMessage)
	req.True(ok)
	req.Equal(toBob, toAlice)
	req.Equal(h.chatID, toBob.ChatID)
	req.Equal("Hello Bob", toBob.Message.Body)
	req.Equal(domain.KindText, toBob.Message.Kind)
	req.Equal(domain.UserID(1), toBob.Message.SenderID)
	req.Equal("Alice", toBob.Sender.DisplayName())

	// And the outsider hears nothing
	h.carol.requireSilent(t)

	stored, _, err := h.store.History(context.Background(), h.chatID, nil)
	req.NoError(err)
	req.Len(stored, 1)
	req.Equal(toBob.Message.ID, stored[0].ID)
}

func TestPipeline_SendMessage_Is_Censored_Before_Persisting(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	moderator, err := moderation.NewModerator([]string{"idiot"}, '*', slog.Default())
	req.NoError(err)
	h.pipeline.WithFilter(moderator)

	// When alice sends a message containing a forbidden word
	err = h.send(t, h.alice, fmt.Sprintf(`{"type":"SendMessage","chat_id":%d,"message":"You 1d10t!"}`, h.chatID))
	req.NoError(err)

	// Then the masked body is what bob receives and what is stored
	toBob, ok := h.bob.next(t).(protocol.NewMessage)
	req.True(ok)
	req.Equal("You *****!", toBob.Message.Body)
	stored, _, err := h.store.History(context.Background(), h.chatID, nil)
	req.NoError(err)
	req.Equal("You *****!", stored[0].Body)
}

func TestPipeline_SendMessage_Outsider_Is_Refused(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// When carol writes into a chat they do not belong to
	err := h.send(t, h.carol, fmt.Sprintf(`{"type":"SendMessage","chat_id":%d,"message":"let me in"}`, h.chatID))

	// Then only carol is told, and nothing is stored
	var failure *PipelineError
	req.ErrorAs(err, &failure)
	req.Equal(StageAuthorizing, failure.Stage)
	req.ErrorIs(err, errors.ErrNotParticipant)
	req.Equal(protocol.Error(ReplyNotParticipant), h.carol.next(t))
	h.alice.requireSilent(t)
	h.bob.requireSilent(t)

	stored, _, err := h.store.History(context.Background(), h.chatID, nil)
	req.NoError(err)
	req.Empty(stored)
}

func TestPipeline_Rejects_Malformed_Frames(t *testing.T) {
	h := newHarness(t)
	long := lo.RandomString(maxContentLength+1, lo.LettersCharset)

	tests := []struct {
		name  string
		frame string
		reply string
	}{
		{name: "not json", frame: `hello`, reply: ReplyInvalidFormat},
		{name: "unknown type", frame: `{"type":"Shout","chat_id":1}`, reply: "Unknown message type: Shout"},
		{name: "missing type", frame: `{"chat_id":1,"message":"hi"}`, reply: ReplyInvalidFormat},
		{name: "empty type", frame: `{"type":"","chat_id":1}`, reply: ReplyInvalidFormat},
		{name: "missing chat", frame: `{"type":"SendMessage","message":"hi"}`, reply: ReplyInvalidFormat},
		{name: "empty body", frame: `{"type":"SendMessage","chat_id":1,"message":""}`, reply: ReplyInvalidFormat},
		{name: "too long", frame: fmt.Sprintf(`{"type":"SendMessage","chat_id":1,"message":%q}`, long), reply: ReplyInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := h.send(t, h.alice, tt.frame)
			req.ErrorIs(err, errors.ErrMalformedFrame)
			req.Equal(protocol.Error(tt.reply), h.alice.next(t))
			h.bob.requireSilent(t)
		})
	}
}

func TestPipeline_Typing_Start_Then_Stop(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// When alice starts then stops typing
	req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"TypingStart","chat_id":%d}`, h.chatID)))
	req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"TypingStop","chat_id":%d}`, h.chatID)))

	// Then bob sees both, in order, and alice sees neither
	req.Equal(protocol.UserTyping{ChatID: h.chatID, UserID: 1, UserName: "Alice"}, h.bob.next(t))
	req.Equal(protocol.UserStoppedTyping{ChatID: h.chatID, UserID: 1}, h.bob.next(t))
	h.alice.requireSilent(t)
	h.carol.requireSilent(t)

	_, active, err := h.store.Typing(context.Background(), h.chatID, 1)
	req.NoError(err)
	req.False(active)
}

func TestPipeline_Typing_Falls_Back_To_Email(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	req.NoError(h.send(t, h.bob, fmt.Sprintf(`{"type":"TypingStart","chat_id":%d}`, h.chatID)))

	req.Equal(protocol.UserTyping{ChatID: h.chatID, UserID: 2, UserName: "bob@school.test"}, h.alice.next(t))
}

func TestPipeline_MarkAsRead(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// Given a message from alice
	req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"SendMessage","chat_id":%d,"message":"ping"}`, h.chatID)))
	msg := h.bob.next(t).(protocol.NewMessage)
	_ = h.alice.next(t)

	// When bob reads it
	req.NoError(h.send(t, h.bob, fmt.Sprintf(`{"type":"MarkAsRead","message_id":%d}`, msg.Message.ID)))

	// Then alice is told, bob is not
	read, ok := h.alice.next(t).(protocol.MessageRead)
	req.True(ok)
	req.Equal(msg.Message.ID, read.MessageID)
	req.Equal(domain.UserID(2), read.ReaderID)
	h.bob.requireSilent(t)

	// And reading twice keeps a single receipt
	req.NoError(h.send(t, h.bob, fmt.Sprintf(`{"type":"MarkAsRead","message_id":%d}`, msg.Message.ID)))
	_ = h.alice.next(t)
	receipts, err := h.store.ReadReceipts(context.Background(), msg.Message.ID)
	req.NoError(err)
	req.Len(receipts, 1)

	// Carol cannot read a message of a chat they are not in
	err = h.send(t, h.carol, fmt.Sprintf(`{"type":"MarkAsRead","message_id":%d}`, msg.Message.ID))
	req.ErrorIs(err, errors.ErrNotParticipant)
	req.Equal(protocol.Error(ReplyNotParticipant), h.carol.next(t))
}

func TestPipeline_MarkAsRead_Unknown_Message(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	err := h.send(t, h.bob, `{"type":"MarkAsRead","message_id":999}`)

	req.ErrorIs(err, errors.ErrNotFound)
	req.Equal(protocol.Error(ReplyMessageNotFound), h.bob.next(t))
	h.alice.requireSilent(t)
}

func TestPipeline_Ping_Join_Leave(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	req.NoError(h.send(t, h.alice, `{"type":"Ping"}`))
	req.Equal(protocol.Pong{}, h.alice.next(t))

	req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"JoinChat","chat_id":%d}`, h.chatID)))
	req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"LeaveChat","chat_id":%d}`, h.chatID)))
	h.alice.requireSilent(t)
	h.bob.requireSilent(t)
}

func TestPipeline_Sequential_Messages_Keep_Order(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	for i := range 10 {
		req.NoError(h.send(t, h.alice, fmt.Sprintf(`{"type":"SendMessage","chat_id":%d,"message":"m%d"}`, h.chatID, i)))
	}

	var last domain.MessageID
	for i := range 10 {
		msg := h.bob.next(t).(protocol.NewMessage)
		req.Equal(fmt.Sprintf("m%d", i), msg.Message.Body)
		req.Greater(msg.Message.ID, last)
		last = msg.Message.ID
	}
}

func TestPipeline_PublishAttachment(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()
	alice := h.alice.Identity()

	// An image is classified from its first bytes
	id, err := h.pipeline.PublishAttachment(ctx, alice, h.chatID, FileUpload{
		Name: "board.png",
		Path: "/uploads/board.png",
		Size: 2048,
		Head: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
	})
	req.NoError(err)
	msg := h.bob.next(t).(protocol.NewMessage)
	req.Equal(id, msg.Message.ID)
	req.Equal(domain.KindImage, msg.Message.Kind)
	req.Equal("board.png", msg.Message.Body)
	req.Equal("board.png", lo.FromPtr(msg.Message.FileName))
	req.Equal(int64(2048), lo.FromPtr(msg.Message.FileSize))

	// Anything else is a file, the caption becomes the body
	_, err = h.pipeline.PublishAttachment(ctx, alice, h.chatID, FileUpload{
		Name:    "notes.txt",
		Path:    "/uploads/notes.txt",
		Head:    []byte("chapter one"),
		Caption: "for tomorrow",
	})
	req.NoError(err)
	msg = h.bob.next(t).(protocol.NewMessage)
	req.Equal(domain.KindFile, msg.Message.Kind)
	req.Equal("for tomorrow", msg.Message.Body)

	// Outsiders cannot upload
	_, err = h.pipeline.PublishAttachment(ctx, h.carol.Identity(), h.chatID, FileUpload{Name: "x.bin"})
	req.ErrorIs(err, errors.ErrNotParticipant)
	h.carol.requireSilent(t)
}

type mockedPipeline struct {
	pipeline    *Pipeline
	gate        *mocks.MockIAuthorizer
	messages    *mocks.MockMessageRepository
	broadcaster *mocks.MockIBroadcaster
	monitor     *observability.MonitoringManager
}

func newMockedPipeline(t *testing.T) mockedPipeline {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := slog.Default()
	m := mockedPipeline{
		gate:        mocks.NewMockIAuthorizer(ctrl),
		messages:    mocks.NewMockMessageRepository(ctrl),
		broadcaster: mocks.NewMockIBroadcaster(ctrl),
		monitor:     observability.NewMonitoringManager(log),
	}
	typing := services.NewTypingManager(log, mocks.NewMockTypingRepository(ctrl), mocks.NewMockProfileRepository(ctrl), 0)
	receipts := services.NewReceiptManager(mocks.NewMockReceiptRepository(ctrl))
	m.pipeline = NewPipeline(log, protocol.NewDecoder(0), m.gate, m.messages, m.broadcaster, typing, receipts, m.monitor)
	return m
}

func TestPipeline_Store_Failures(t *testing.T) {
	ctx := context.Background()
	frame := []byte(`{"type":"SendMessage","chat_id":7,"message":"hello"}`)

	t.Run("authorization lookup failure", func(t *testing.T) {
		req := require.New(t)
		m := newMockedPipeline(t)
		sink := newFakeSink(1)
		m.gate.EXPECT().Authorize(gomock.Any(), sink.Identity(), domain.ChatID(7)).
			Return(fmt.Errorf("%w: timeout", errors.ErrStoreFailure))

		err := m.pipeline.Dispatch(ctx, sink, frame)

		req.ErrorIs(err, errors.ErrStoreFailure)
		req.Equal(protocol.Error(ReplyAccessCheck), sink.next(t))
	})

	t.Run("insert failure", func(t *testing.T) {
		req := require.New(t)
		m := newMockedPipeline(t)
		sink := newFakeSink(1)
		m.gate.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.messages.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(domain.MessageID(0), errs.New("disk full"))

		err := m.pipeline.Dispatch(ctx, sink, frame)

		var failure *PipelineError
		req.ErrorAs(err, &failure)
		req.Equal(StagePersisting, failure.Stage)
		req.Equal(protocol.Error(ReplySendFailed), sink.next(t))
	})

	t.Run("rehydration failure is a silent delivery gap", func(t *testing.T) {
		req := require.New(t)
		m := newMockedPipeline(t)
		sink := newFakeSink(1)
		m.gate.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.messages.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(domain.MessageID(12), nil)
		m.messages.EXPECT().MessageWithSender(gomock.Any(), domain.MessageID(12)).
			Return(domain.ChatMessage{}, domain.SenderProfile{}, errs.New("read timeout"))

		err := m.pipeline.Dispatch(ctx, sink, frame)

		req.ErrorIs(err, errors.ErrDeliveryGap)
		sink.requireSilent(t)
		req.Equal(uint64(1), m.monitor.GetLatest().DeliveryGaps)
	})

	t.Run("broadcast failure is a silent delivery gap", func(t *testing.T) {
		req := require.New(t)
		m := newMockedPipeline(t)
		sink := newFakeSink(1)
		m.gate.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.messages.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(domain.MessageID(12), nil)
		m.messages.EXPECT().MessageWithSender(gomock.Any(), domain.MessageID(12)).
			Return(domain.ChatMessage{ID: 12, ChatID: 7, SenderID: 1, CreatedAt: time.Now()}, domain.SenderProfile{ID: 1}, nil)
		m.broadcaster.EXPECT().DeliverToChat(gomock.Any(), domain.ChatID(7), gomock.Any(), nil).
			Return(0, fmt.Errorf("%w: participants", errors.ErrStoreFailure))

		err := m.pipeline.Dispatch(ctx, sink, frame)

		var failure *PipelineError
		req.ErrorAs(err, &failure)
		req.Equal(StageBroadcasting, failure.Stage)
		req.ErrorIs(err, errors.ErrDeliveryGap)
		sink.requireSilent(t)
	})
}

func TestStage_String(t *testing.T) {
	req := require.New(t)
	req.Equal("Received", StageReceived.String())
	req.Equal("Rehydrating", StageRehydrating.String())
	req.Equal("Failed", StageFailed.String())
	req.Equal("Stage(42)", Stage(42).String())
}
