package services

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/errors"
	"context"
	"fmt"
	"log/slog"
)

// Gate answers "may this identity act on this chat" from the store.
// It fails closed: a lookup error is never read as a yes.
type Gate struct {
	log          *slog.Logger
	participants contract.ParticipantRepository
}

func NewGate(log *slog.Logger, participants contract.ParticipantRepository) *Gate {
	return &Gate{log: log, participants: participants}
}

// Authorize returns nil for participants, errors.ErrNotParticipant for
// everybody else and errors.ErrStoreFailure when the store could not answer.
func (g *Gate) Authorize(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error {
	ok, err := g.participants.IsParticipant(ctx, chatID, identity.UserID)
	if err != nil {
		g.log.Error("Participant lookup failed", "chat_id", chatID, "user_id", identity.UserID, "error", err)
		return fmt.Errorf("%w: %v", errors.ErrStoreFailure, err)
	}
	if !ok {
		g.log.Warn("Not a participant", "chat_id", chatID, "user_id", identity.UserID)
		return errors.ErrNotParticipant
	}
	return nil
}

func (g *Gate) IsParticipant(ctx context.Context, identity domain.Identity, chatID domain.ChatID) bool {
	return g.Authorize(ctx, identity, chatID) == nil
}

func (g *Gate) IsChatAdmin(ctx context.Context, identity domain.Identity, chatID domain.ChatID) bool {
	ok, err := g.participants.IsChatAdmin(ctx, chatID, identity.UserID)
	if err != nil {
		g.log.Error("Admin lookup failed", "chat_id", chatID, "user_id", identity.UserID, "error", err)
		return false
	}
	return ok
}
