// Package domain contains core concepts of the chat system.
// This file defines persisted chat messages and the ephemeral
// signals attached to them.
// Messages are immutable once persisted.
package domain

import (
	"fmt"
	"strings"
	"time"
)

type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindFile  MessageKind = "file"
)

type FileMeta struct {
	Path string
	Name string
	Size int64
}

// ChatMessage is the persisted form of a message, as sent to clients.
type ChatMessage struct {
	ID        MessageID   `json:"id"`
	ChatID    ChatID      `json:"chat_id"`
	SenderID  UserID      `json:"sender_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Kind      MessageKind `json:"type_message"`
	Body      string      `json:"message"`
	FilePath  *string     `json:"file_path"`
	FileName  *string     `json:"file_name"`
	FileSize  *int64      `json:"file_size"`
	IsDeleted bool        `json:"is_deleted"`
	ReplyToID *MessageID  `json:"reply_to_id"`
}

// NewMessage is what the pipeline asks the store to insert.
// The store assigns the id.
type NewMessage struct {
	ChatID    ChatID
	SenderID  UserID
	Kind      MessageKind
	Body      string
	File      *FileMeta
	ReplyToID *MessageID
	CreatedAt time.Time
}

// ToChatMessage builds the persisted shape once the store generated an id.
func (n NewMessage) ToChatMessage(id MessageID) ChatMessage {
	msg := ChatMessage{
		ID:        id,
		ChatID:    n.ChatID,
		SenderID:  n.SenderID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.CreatedAt,
		Kind:      n.Kind,
		Body:      n.Body,
		ReplyToID: n.ReplyToID,
	}
	if n.File != nil {
		path, name, size := n.File.Path, n.File.Name, n.File.Size
		msg.FilePath, msg.FileName, msg.FileSize = &path, &name, &size
	}
	return msg
}

// SenderProfile is the public part of a user attached to outbound messages.
type SenderProfile struct {
	ID       UserID  `json:"id"`
	Email    string  `json:"email"`
	Photo    *string `json:"photo"`
	CourseID *int64  `json:"course_id"`
	FullName *string `json:"full_name"`
}

// DisplayName prefers the full name, then the email.
func (p SenderProfile) DisplayName() string {
	if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		return *p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	return FallbackDisplayName(p.ID)
}

func FallbackDisplayName(id UserID) string {
	return fmt.Sprintf("User %d", id)
}

type ReadReceipt struct {
	MessageID MessageID `json:"message_id"`
	ReaderID  UserID    `json:"reader_id"`
	ReadAt    time.Time `json:"read_at"`
}

// TypingIndicator is advisory: once ExpiresAt is reached it must be
// treated as stopped even if nobody deleted it.
type TypingIndicator struct {
	ChatID    ChatID    `json:"chat_id"`
	UserID    UserID    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t TypingIndicator) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
