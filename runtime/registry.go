package runtime

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/observability"
	"chat-live/protocol"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	DefaultShards         = 32
	DefaultPresenceBuffer = 1024
	DefaultPresenceWait   = 5 * time.Second
)

type shard struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]contract.EventSink // map user -> live sink
}

type presenceEvent struct {
	origin domain.UserID
	event  protocol.Event
}

// Registry maps every online user to its single live connection.
// Sessions are spread over shards so that unrelated users never contend
// on the same lock. Presence announcements are queued and fanned out by
// Run, so Register and Unregister never wait on other connections.
type Registry struct {
	log          *slog.Logger
	shards       []*shard
	participants contract.ParticipantRepository
	monitor      *observability.MonitoringManager
	presence     chan presenceEvent
	presenceWait time.Duration
}

func NewRegistry(log *slog.Logger, participants contract.ParticipantRepository,
	monitor *observability.MonitoringManager, shards, presenceBuffer int) *Registry {
	if shards <= 0 {
		shards = DefaultShards
	}
	if presenceBuffer <= 0 {
		presenceBuffer = DefaultPresenceBuffer
	}
	r := &Registry{
		log:          log,
		shards:       make([]*shard, shards),
		participants: participants,
		monitor:      monitor,
		presence:     make(chan presenceEvent, presenceBuffer),
		presenceWait: DefaultPresenceWait,
	}
	for i := range r.shards {
		r.shards[i] = &shard{sessions: make(map[domain.UserID]contract.EventSink)}
	}
	return r
}

func (r *Registry) shardFor(userID domain.UserID) *shard {
	return r.shards[uint64(userID)%uint64(len(r.shards))]
}

// Register stores the sink of its identity. A previous sink of the same
// identity is superseded and closed; it will not produce UserOffline when
// it unregisters later.
func (r *Registry) Register(sink contract.EventSink) {
	userID := sink.Identity().UserID
	s := r.shardFor(userID)

	s.mu.Lock()
	previous, existed := s.sessions[userID]
	s.sessions[userID] = sink
	s.mu.Unlock()

	if existed && previous.ID() != sink.ID() {
		r.log.Info("Session superseded", "user_id", userID, "old_session_id", previous.ID(), "session_id", sink.ID())
		previous.Close(domain.CloseSuperseded)
	}
	r.log.Debug("Session registered", "user_id", userID, "session_id", sink.ID())
	r.announce(userID, protocol.UserOnline{UserID: userID})
}

// Unregister removes the sink only if it is still the registered one for
// its identity, and reports whether it did.
func (r *Registry) Unregister(sink contract.EventSink) bool {
	userID := sink.Identity().UserID
	s := r.shardFor(userID)

	s.mu.Lock()
	current, ok := s.sessions[userID]
	if !ok || current.ID() != sink.ID() {
		s.mu.Unlock()
		r.log.Debug("Stale session ignored", "user_id", userID, "session_id", sink.ID())
		return false
	}
	delete(s.sessions, userID)
	s.mu.Unlock()

	r.log.Debug("Session unregistered", "user_id", userID, "session_id", sink.ID())
	r.announce(userID, protocol.UserOffline{UserID: userID})
	return true
}

// SendTo queues the event on the user's connection. An offline user or a
// saturated connection is a silent drop, reported as false.
func (r *Registry) SendTo(ctx context.Context, userID domain.UserID, evt protocol.Event) bool {
	sink, ok := r.lookup(userID)
	if !ok {
		return false
	}
	return r.deliver(ctx, sink, evt)
}

func (r *Registry) deliver(ctx context.Context, sink contract.EventSink, evt protocol.Event) bool {
	if err := sink.Consume(ctx, evt); err != nil {
		r.log.Debug("Event dropped", "user_id", sink.Identity().UserID, "session_id", sink.ID(),
			"type", evt.EventType(), "error", err)
		r.monitor.IncrDropped()
		return false
	}
	r.monitor.IncrDelivered(1)
	return true
}

func (r *Registry) lookup(userID domain.UserID) (contract.EventSink, bool) {
	s := r.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	sink, ok := s.sessions[userID]
	return sink, ok
}

func (r *Registry) IsOnline(userID domain.UserID) bool {
	_, ok := r.lookup(userID)
	return ok
}

func (r *Registry) OnlineCount() int {
	count := 0
	for _, s := range r.shards {
		s.mu.RLock()
		count += len(s.sessions)
		s.mu.RUnlock()
	}
	return count
}

// Snapshot returns the ids of every connected user, sorted.
func (r *Registry) Snapshot() []domain.UserID {
	ids := lo.Map(r.snapshot(), func(sink contract.EventSink, _ int) domain.UserID {
		return sink.Identity().UserID
	})
	slices.Sort(ids)
	return ids
}

// OnlineParticipants intersects the participants of a chat with the
// connected users.
func (r *Registry) OnlineParticipants(ctx context.Context, chatID domain.ChatID) ([]domain.UserID, error) {
	ids, err := r.participants.ParticipantIDs(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return lo.Filter(ids, func(id domain.UserID, _ int) bool {
		return r.IsOnline(id)
	}), nil
}

// CloseAll closes every live connection, used on shutdown.
func (r *Registry) CloseAll(reason domain.CloseReason) {
	for _, sink := range r.snapshot() {
		sink.Close(reason)
	}
}

func (r *Registry) snapshot() []contract.EventSink {
	var sinks []contract.EventSink
	for _, s := range r.shards {
		s.mu.RLock()
		for _, sink := range s.sessions {
			sinks = append(sinks, sink)
		}
		s.mu.RUnlock()
	}
	return sinks
}

// PresenceQueue exposes the announcement queue for capacity sampling.
func (r *Registry) PresenceQueue() any { return r.presence }

// announce queues a presence event. A full queue makes the caller wait
// for the dispatcher, up to presenceWait, so that arrivals and departures
// are not lost under a burst of connections.
func (r *Registry) announce(origin domain.UserID, evt protocol.Event) {
	p := presenceEvent{origin: origin, event: evt}
	select {
	case r.presence <- p:
		return
	default:
	}
	r.log.Warn("Presence queue full, waiting for dispatch", "user_id", origin, "type", evt.EventType())
	timer := time.NewTimer(r.presenceWait)
	defer timer.Stop()
	select {
	case r.presence <- p:
	case <-timer.C:
		r.log.Error("Presence announcement lost", "user_id", origin, "type", evt.EventType(), "waited", r.presenceWait)
		r.monitor.IncrDropped()
	}
}

// Run fans presence announcements out to every connection but the one
// they are about. A single dispatcher keeps UserOnline and UserOffline of
// the same user in order.
func (r *Registry) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Context done, stopping presence dispatch")
			return nil
		case p := <-r.presence:
			for _, sink := range r.snapshot() {
				if sink.Identity().UserID == p.origin {
					continue
				}
				r.deliver(ctx, sink, p.event)
			}
		}
	}
}
