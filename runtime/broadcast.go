package runtime

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/errors"
	"chat-live/protocol"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// Broadcaster delivers chat scoped events to the connected participants.
// The participant set is read from the store on every call.
type Broadcaster struct {
	log          *slog.Logger
	participants contract.ParticipantRepository
	registry     contract.IRegistry
}

func NewBroadcaster(log *slog.Logger, participants contract.ParticipantRepository, registry contract.IRegistry) *Broadcaster {
	return &Broadcaster{log: log, participants: participants, registry: registry}
}

// DeliverToChat queues evt for every participant of chatID except exclude,
// and returns how many connections accepted it. Offline or saturated
// recipients are skipped without affecting the others.
func (b *Broadcaster) DeliverToChat(ctx context.Context, chatID domain.ChatID, evt protocol.Event, exclude *domain.UserID) (int, error) {
	ids, err := b.participants.ParticipantIDs(ctx, chatID)
	if err != nil {
		return 0, fmt.Errorf("%w: participants of chat %d: %v", errors.ErrStoreFailure, chatID, err)
	}
	recipients := lo.Reject(ids, func(id domain.UserID, _ int) bool {
		return exclude != nil && id == *exclude
	})
	delivered := 0
	for _, id := range recipients {
		if b.registry.SendTo(ctx, id, evt) {
			delivered++
		}
	}
	b.log.Debug("Chat event delivered", "chat_id", chatID, "type", evt.EventType(),
		"participants", len(recipients), "delivered", delivered)
	return delivered, nil
}
