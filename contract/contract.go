//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-live/domain"
	"chat-live/protocol"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the write side of one live connection.
// Consume never blocks: a sink that cannot keep up closes itself.
type EventSink interface {
	ID() string
	Identity() domain.Identity
	Consume(ctx context.Context, evt protocol.Event) error
	Close(reason domain.CloseReason)
}

type IRegistry interface {
	Register(sink EventSink)
	Unregister(sink EventSink) bool
	SendTo(ctx context.Context, userID domain.UserID, evt protocol.Event) bool
	IsOnline(userID domain.UserID) bool
	OnlineCount() int
	OnlineParticipants(ctx context.Context, chatID domain.ChatID) ([]domain.UserID, error)
}

type IBroadcaster interface {
	DeliverToChat(ctx context.Context, chatID domain.ChatID, evt protocol.Event, exclude *domain.UserID) (int, error)
}

type IAuthorizer interface {
	Authorize(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error
	IsParticipant(ctx context.Context, identity domain.Identity, chatID domain.ChatID) bool
	IsChatAdmin(ctx context.Context, identity domain.Identity, chatID domain.ChatID) bool
}

type ParticipantRepository interface {
	IsParticipant(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error)
	IsChatAdmin(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error)
	ParticipantIDs(ctx context.Context, chatID domain.ChatID) ([]domain.UserID, error)
}

type MessageRepository interface {
	InsertMessage(ctx context.Context, msg domain.NewMessage) (domain.MessageID, error)
	MessageWithSender(ctx context.Context, id domain.MessageID) (domain.ChatMessage, domain.SenderProfile, error)
	ChatIDOf(ctx context.Context, id domain.MessageID) (domain.ChatID, error)
}

type ReceiptRepository interface {
	// UpsertReadReceipt returns the stored read_at, which never moves backwards.
	UpsertReadReceipt(ctx context.Context, messageID domain.MessageID, readerID domain.UserID, at time.Time) (time.Time, error)
}

type TypingRepository interface {
	UpsertTyping(ctx context.Context, indicator domain.TypingIndicator) error
	DeleteTyping(ctx context.Context, chatID domain.ChatID, userID domain.UserID) error
}

type ProfileRepository interface {
	Profile(ctx context.Context, userID domain.UserID) (domain.SenderProfile, error)
}

// ChatStore is everything the delivery core reads and writes.
type ChatStore interface {
	ParticipantRepository
	MessageRepository
	ReceiptRepository
	TypingRepository
	ProfileRepository
}
