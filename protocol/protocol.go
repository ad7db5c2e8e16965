// Package protocol defines the closed set of frames exchanged over a live
// chat connection. Every frame is a JSON object carrying a "type"
// discriminator.
package protocol

import (
	"chat-live/domain"
	"time"
)

const (
	TypeSendMessage = "SendMessage"
	TypeTypingStart = "TypingStart"
	TypeTypingStop  = "TypingStop"
	TypeMarkAsRead  = "MarkAsRead"
	TypeJoinChat    = "JoinChat"
	TypeLeaveChat   = "LeaveChat"
	TypePing        = "Ping"

	TypeNewMessage        = "NewMessage"
	TypeMessageRead       = "MessageRead"
	TypeUserTyping        = "UserTyping"
	TypeUserStoppedTyping = "UserStoppedTyping"
	TypeUserOnline        = "UserOnline"
	TypeUserOffline       = "UserOffline"
	TypeError             = "Error"
	TypePong              = "Pong"
)

// Action is a client to server frame.
type Action interface {
	ActionType() string
}

// ChatScoped is implemented by actions targeting a single chat.
type ChatScoped interface {
	Action
	Chat() domain.ChatID
}

type SendMessage struct {
	ChatID    domain.ChatID     `json:"chat_id" validate:"required,gt=0"`
	Body      string            `json:"message" validate:"required"`
	ReplyToID *domain.MessageID `json:"reply_to_id,omitempty" validate:"omitempty,gt=0"`
}

type TypingStart struct {
	ChatID domain.ChatID `json:"chat_id" validate:"required,gt=0"`
}

type TypingStop struct {
	ChatID domain.ChatID `json:"chat_id" validate:"required,gt=0"`
}

type MarkAsRead struct {
	MessageID domain.MessageID `json:"message_id" validate:"required,gt=0"`
}

type JoinChat struct {
	ChatID domain.ChatID `json:"chat_id" validate:"required,gt=0"`
}

type LeaveChat struct {
	ChatID domain.ChatID `json:"chat_id" validate:"required,gt=0"`
}

type Ping struct{}

func (SendMessage) ActionType() string { return TypeSendMessage }
func (TypingStart) ActionType() string { return TypeTypingStart }
func (TypingStop) ActionType() string  { return TypeTypingStop }
func (MarkAsRead) ActionType() string  { return TypeMarkAsRead }
func (JoinChat) ActionType() string    { return TypeJoinChat }
func (LeaveChat) ActionType() string   { return TypeLeaveChat }
func (Ping) ActionType() string        { return TypePing }

func (a SendMessage) Chat() domain.ChatID { return a.ChatID }
func (a TypingStart) Chat() domain.ChatID { return a.ChatID }
func (a TypingStop) Chat() domain.ChatID  { return a.ChatID }
func (a JoinChat) Chat() domain.ChatID    { return a.ChatID }
func (a LeaveChat) Chat() domain.ChatID   { return a.ChatID }

// Event is a server to client frame.
type Event interface {
	EventType() string
}

type NewMessage struct {
	ChatID  domain.ChatID        `json:"chat_id"`
	Message domain.ChatMessage   `json:"message"`
	Sender  domain.SenderProfile `json:"sender"`
}

type MessageRead struct {
	MessageID domain.MessageID `json:"message_id"`
	ReaderID  domain.UserID    `json:"reader_id"`
	ReadAt    time.Time        `json:"read_at"`
}

type UserTyping struct {
	ChatID   domain.ChatID `json:"chat_id"`
	UserID   domain.UserID `json:"user_id"`
	UserName string        `json:"user_name"`
}

type UserStoppedTyping struct {
	ChatID domain.ChatID `json:"chat_id"`
	UserID domain.UserID `json:"user_id"`
}

type UserOnline struct {
	UserID domain.UserID `json:"user_id"`
}

type UserOffline struct {
	UserID domain.UserID `json:"user_id"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

type Pong struct{}

func (NewMessage) EventType() string        { return TypeNewMessage }
func (MessageRead) EventType() string       { return TypeMessageRead }
func (UserTyping) EventType() string        { return TypeUserTyping }
func (UserStoppedTyping) EventType() string { return TypeUserStoppedTyping }
func (UserOnline) EventType() string        { return TypeUserOnline }
func (UserOffline) EventType() string       { return TypeUserOffline }
func (ErrorEvent) EventType() string        { return TypeError }
func (Pong) EventType() string              { return TypePong }

func Error(message string) ErrorEvent {
	return ErrorEvent{Message: message}
}
