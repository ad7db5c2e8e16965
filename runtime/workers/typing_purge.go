package workers

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredTypingPurger is implemented by stores that keep typing rows
// without a native TTL.
type ExpiredTypingPurger interface {
	DeleteExpiredTyping(ctx context.Context, now time.Time) (int64, error)
}

// TypingPurgeWorker deletes typing rows whose expiry passed. Badger and
// Redis expire them on their own, only the SQL store needs it.
type TypingPurgeWorker struct {
	log      *slog.Logger
	store    ExpiredTypingPurger
	interval time.Duration
	now      func() time.Time
}

func NewTypingPurgeWorker(log *slog.Logger, store ExpiredTypingPurger, interval time.Duration) *TypingPurgeWorker {
	return &TypingPurgeWorker{
		log:      log,
		store:    store,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (w *TypingPurgeWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping typing purge")
			return nil
		case <-ticker.C:
			deleted, err := w.store.DeleteExpiredTyping(ctx, w.now())
			if err != nil {
				// Transient, the next tick retries
				w.log.Warn("Typing purge failed", "error", err)
				continue
			}
			if deleted > 0 {
				w.log.Debug("Expired typing rows purged", "count", deleted)
			}
		}
	}
}
