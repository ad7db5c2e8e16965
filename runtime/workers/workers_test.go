package workers

import (
	"chat-live/domain"
	"chat-live/mocks"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/services"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTypingSweeper_Announces_Expired_Indicators(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := slog.Default()
	repo := mocks.NewMockTypingRepository(ctrl)
	broadcaster := mocks.NewMockIBroadcaster(ctrl)
	monitor := observability.NewMonitoringManager(log)
	typing := services.NewTypingManager(log, repo, mocks.NewMockProfileRepository(ctrl), 20*time.Millisecond)

	// Given user 1 typing in chat 7 and never stopping
	repo.EXPECT().UpsertTyping(gomock.Any(), gomock.Any()).Return(nil)
	_, err := typing.Start(context.Background(), domain.Identity{UserID: 1}, 7)
	req.NoError(err)

	// Then the others are told once the indicator expired
	repo.EXPECT().DeleteTyping(gomock.Any(), domain.ChatID(7), domain.UserID(1)).Return(nil)
	announced := make(chan struct{})
	broadcaster.EXPECT().
		DeliverToChat(gomock.Any(), domain.ChatID(7), protocol.UserStoppedTyping{ChatID: 7, UserID: 1}, lo.ToPtr(domain.UserID(1))).
		DoAndReturn(func(context.Context, domain.ChatID, protocol.Event, *domain.UserID) (int, error) {
			close(announced)
			return 1, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- NewTypingSweeper(log, typing, broadcaster, monitor, 10*time.Millisecond).Run(ctx) }()

	select {
	case <-announced:
	case <-time.After(time.Second):
		req.FailNow("expiry was not announced")
	}
	cancel()
	req.NoError(<-done)
	req.Equal(0, typing.Active())
	req.Equal(uint64(1), monitor.GetLatest().TypingExpired)
}

func TestHealthMonitoringWorker_Samples_Own_Process(t *testing.T) {
	req := require.New(t)
	monitor := observability.NewMonitoringManager(slog.Default())
	worker := NewHealthMonitoringWorker(slog.Default(), monitor, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	req.Eventually(func() bool {
		return monitor.GetLatest().Process.SampledAt != ""
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	req.NoError(<-done)
	req.NotZero(monitor.GetLatest().Process.RSSMb)
}

type purgerFunc func(ctx context.Context, now time.Time) (int64, error)

func (f purgerFunc) DeleteExpiredTyping(ctx context.Context, now time.Time) (int64, error) {
	return f(ctx, now)
}

func TestTypingPurgeWorker_Purges_Until_Cancelled(t *testing.T) {
	req := require.New(t)
	calls := make(chan time.Time, 16)
	store := purgerFunc(func(_ context.Context, now time.Time) (int64, error) {
		select {
		case calls <- now:
		default:
		}
		return 1, nil
	})

	// Given a purge worker ticking every 10ms
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewTypingPurgeWorker(slog.Default(), store, 10*time.Millisecond).Run(ctx) }()

	// Then expired rows are purged with the current time
	select {
	case now := <-calls:
		req.WithinDuration(time.Now().UTC(), now, time.Second)
	case <-time.After(time.Second):
		req.FailNow("purge never ran")
	}

	// When the context is cancelled the worker returns cleanly
	cancel()
	req.NoError(<-done)
}

func TestChannelCapacityWorker_Samples_Queues(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	monitor := observability.NewMonitoringManager(log)

	// Given a queue holding 3 items out of 10, and a value that is no channel
	queue := make(chan int, 10)
	queue <- 1
	queue <- 2
	queue <- 3
	worker := NewChannelCapacityWorker(log, []NamedChannel{
		{Name: "presence", Channel: queue},
		{Name: "broken", Channel: 42},
	}, monitor, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Then the fill is published, the invalid entry is skipped
	req.Eventually(func() bool {
		_, ok := monitor.GetLatest().Queues["presence"]
		return ok
	}, time.Second, 5*time.Millisecond)
	queues := monitor.GetLatest().Queues
	req.Equal(observability.QueueStats{Length: 3, Capacity: 10}, queues["presence"])
	req.NotContains(queues, "broken")

	cancel()
	req.NoError(<-done)
}
