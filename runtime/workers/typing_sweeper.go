package workers

import (
	"chat-live/contract"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/services"
	"context"
	"log/slog"
	"time"
)

// TypingSweeper announces UserStoppedTyping for indicators that expired
// without an explicit TypingStop, e.g. when the typist disconnected.
type TypingSweeper struct {
	log         *slog.Logger
	typing      *services.TypingManager
	broadcaster contract.IBroadcaster
	monitor     *observability.MonitoringManager
	interval    time.Duration
}

func NewTypingSweeper(
	log *slog.Logger,
	typing *services.TypingManager,
	broadcaster contract.IBroadcaster,
	monitor *observability.MonitoringManager,
	interval time.Duration,
) *TypingSweeper {
	return &TypingSweeper{
		log:         log,
		typing:      typing,
		broadcaster: broadcaster,
		monitor:     monitor,
		interval:    interval,
	}
}

func (w *TypingSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping typing sweep")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *TypingSweeper) sweep(ctx context.Context) {
	expired := w.typing.Sweep(ctx)
	if len(expired) == 0 {
		return
	}
	w.monitor.IncrTypingExpired(len(expired))
	for _, indicator := range expired {
		typist := indicator.UserID
		if w.typing.IsTyping(indicator.ChatID, typist) {
			// Typing started again since the sweep
			continue
		}
		evt := protocol.UserStoppedTyping{ChatID: indicator.ChatID, UserID: typist}
		if _, err := w.broadcaster.DeliverToChat(ctx, indicator.ChatID, evt, &typist); err != nil {
			w.log.Warn("Typing expiry not broadcast", "chat_id", indicator.ChatID, "user_id", typist, "error", err)
		}
	}
	w.log.Debug("Typing indicators expired", "count", len(expired))
}
