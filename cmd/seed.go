package main

import (
	"chat-live/domain"
	"chat-live/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

const demoChatID = domain.ChatID(7)

// seedDemo stores users 1..3 and makes 1 and 2 the participants of chat 7.
// Running it twice overwrites the same keys.
func seedDemo(ctx context.Context, log *slog.Logger, store *repositories.BadgerStore) error {
	profiles := []domain.SenderProfile{
		{ID: 1, Email: "alice@chat.local", FullName: lo.ToPtr("Alice Martin")},
		{ID: 2, Email: "bob@chat.local", FullName: lo.ToPtr("Bob Durand")},
		{ID: 3, Email: "carol@chat.local"},
	}
	for _, p := range profiles {
		if err := store.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("seed profile %d: %w", p.ID, err)
		}
	}
	for _, userID := range []domain.UserID{1, 2} {
		if err := store.AddParticipant(ctx, domain.Participant{ChatID: demoChatID, UserID: userID}); err != nil {
			return fmt.Errorf("seed participant %d: %w", userID, err)
		}
	}
	log.Info("Demo data seeded", "users", len(profiles), "chat_id", demoChatID)
	return nil
}
