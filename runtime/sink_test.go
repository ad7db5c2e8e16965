package runtime

import (
	"chat-live/domain"
	"chat-live/errors"
	"chat-live/protocol"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeSink stands for a live connection: events land in a buffered
// channel, a full channel behaves like a saturated socket.
type fakeSink struct {
	id       string
	identity domain.Identity
	events   chan protocol.Event

	mu     sync.Mutex
	closed []domain.CloseReason
}

func newFakeSink(userID domain.UserID) *fakeSink {
	return newFakeSinkWithBuffer(userID, 64)
}

func newFakeSinkWithBuffer(userID domain.UserID, size int) *fakeSink {
	return &fakeSink{
		id:       uuid.NewString(),
		identity: domain.Identity{UserID: userID, Role: domain.RoleStudent},
		events:   make(chan protocol.Event, size),
	}
}

func (s *fakeSink) ID() string { return s.id }

func (s *fakeSink) Identity() domain.Identity { return s.identity }

func (s *fakeSink) Consume(_ context.Context, evt protocol.Event) error {
	select {
	case s.events <- evt:
		return nil
	default:
		return errors.ErrSessionBackpressure
	}
}

func (s *fakeSink) Close(reason domain.CloseReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, reason)
}

func (s *fakeSink) closeReasons() []domain.CloseReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CloseReason(nil), s.closed...)
}

func (s *fakeSink) next(t *testing.T) protocol.Event {
	t.Helper()
	select {
	case evt := <-s.events:
		return evt
	case <-time.After(time.Second):
		require.FailNow(t, "no event received", "user %d", s.identity.UserID)
		return nil
	}
}

func (s *fakeSink) requireSilent(t *testing.T) {
	t.Helper()
	select {
	case evt := <-s.events:
		require.FailNow(t, "unexpected event", "user %d got %#v", s.identity.UserID, evt)
	case <-time.After(50 * time.Millisecond):
	}
}
