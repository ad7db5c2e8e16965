// Package domain contains core concepts of the chat system.
// This file defines identities, chats and participant entities.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"fmt"
	"time"
)

type UserID int64
type ChatID int64
type MessageID int64

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTeacher   Role = "teacher"
	RoleStudent   Role = "student"
	RolePreceptor Role = "preceptor"
	RoleFather    Role = "father"
)

var roles = map[Role]struct{}{
	RoleAdmin:     {},
	RoleTeacher:   {},
	RoleStudent:   {},
	RolePreceptor: {},
	RoleFather:    {},
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Identity is produced once per connection by the authentication layer.
// It never changes for the lifetime of that connection.
type Identity struct {
	UserID UserID
	Role   Role
}

type ChatKind string

const (
	ChatDirect ChatKind = "direct"
	ChatGroup  ChatKind = "group"
)

type Chat struct {
	ID        ChatID    `json:"id"`
	Kind      ChatKind  `json:"kind"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Participant relates a chat to a user.
// IsAdmin is only consulted by administrative actions.
type Participant struct {
	ChatID   ChatID    `json:"chat_id"`
	UserID   UserID    `json:"user_id"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`
}

// CloseReason tells a connection why it is being shut down.
type CloseReason int

const (
	CloseNormal CloseReason = iota
	CloseSuperseded
	CloseBackpressure
	CloseShutdown
)

func (r CloseReason) String() string {
	switch r {
	case CloseSuperseded:
		return "session superseded"
	case CloseBackpressure:
		return "send queue full"
	case CloseShutdown:
		return "server shutting down"
	default:
		return "session closed"
	}
}
