package postgres

import (
	"chat-live/domain"
	"time"
)

// Table layout shared with the REST service, which owns the writes to
// chats, participants, users and personal data.

type Chat struct {
	ID        int64 `gorm:"primaryKey"`
	Kind      string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatParticipant struct {
	ChatID   int64 `gorm:"primaryKey"`
	UserID   int64 `gorm:"primaryKey;index"`
	IsAdmin  bool  `gorm:"not null;default:false"`
	JoinedAt time.Time
}

type ChatMessage struct {
	ID          int64 `gorm:"primaryKey"`
	ChatID      int64 `gorm:"index;not null"`
	SenderID    int64 `gorm:"not null"`
	TypeMessage string
	Message     string
	FilePath    *string
	FileName    *string
	FileSize    *int64
	IsDeleted   bool `gorm:"not null;default:false"`
	ReplyToID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Read struct {
	MessageID int64 `gorm:"primaryKey"`
	ReaderID  int64 `gorm:"primaryKey"`
	ReadAt    time.Time
}

type TypingIndicator struct {
	ChatID    int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
	StartedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

type User struct {
	ID       int64 `gorm:"primaryKey"`
	Email    string
	Photo    *string
	CourseID *int64
}

type PersonalData struct {
	UserID   int64 `gorm:"primaryKey"`
	FullName *string
}

func (PersonalData) TableName() string { return "personal_data" }

// messageWithSender is the row shape of the rehydration join.
type messageWithSender struct {
	ChatMessage
	SenderUserID   int64
	SenderEmail    string
	SenderPhoto    *string
	SenderCourseID *int64
	SenderFullName *string
}

func toChatMessage(row ChatMessage) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:        domain.MessageID(row.ID),
		ChatID:    domain.ChatID(row.ChatID),
		SenderID:  domain.UserID(row.SenderID),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
		Kind:      domain.MessageKind(row.TypeMessage),
		Body:      row.Message,
		FilePath:  row.FilePath,
		FileName:  row.FileName,
		FileSize:  row.FileSize,
		IsDeleted: row.IsDeleted,
	}
	if row.ReplyToID != nil {
		id := domain.MessageID(*row.ReplyToID)
		msg.ReplyToID = &id
	}
	return msg
}

func fromNewMessage(draft domain.NewMessage) ChatMessage {
	row := ChatMessage{
		ChatID:      int64(draft.ChatID),
		SenderID:    int64(draft.SenderID),
		TypeMessage: string(draft.Kind),
		Message:     draft.Body,
		CreatedAt:   draft.CreatedAt,
		UpdatedAt:   draft.CreatedAt,
	}
	if draft.File != nil {
		path, name, size := draft.File.Path, draft.File.Name, draft.File.Size
		row.FilePath, row.FileName, row.FileSize = &path, &name, &size
	}
	if draft.ReplyToID != nil {
		id := int64(*draft.ReplyToID)
		row.ReplyToID = &id
	}
	return row
}
