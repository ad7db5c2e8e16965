package services

import (
	"chat-live/contract"
	"chat-live/domain"
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultTypingTTL = 5 * time.Second

type typingKey struct {
	chatID domain.ChatID
	userID domain.UserID
}

// TypingManager records typing indicators in the store and remembers
// their expiry so that a sweeper can announce the ones nobody stopped.
type TypingManager struct {
	log      *slog.Logger
	repo     contract.TypingRepository
	profiles contract.ProfileRepository
	ttl      time.Duration
	now      func() time.Time

	// mu is held across store writes so that the store and active agree
	mu     sync.Mutex
	active map[typingKey]domain.TypingIndicator
}

func NewTypingManager(log *slog.Logger, repo contract.TypingRepository,
	profiles contract.ProfileRepository, ttl time.Duration) *TypingManager {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &TypingManager{
		log:      log,
		repo:     repo,
		profiles: profiles,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		active:   make(map[typingKey]domain.TypingIndicator),
	}
}

// Start creates or refreshes the indicator of identity in chatID.
func (m *TypingManager) Start(ctx context.Context, identity domain.Identity, chatID domain.ChatID) (domain.TypingIndicator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	indicator := domain.TypingIndicator{
		ChatID:    chatID,
		UserID:    identity.UserID,
		StartedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.UpsertTyping(ctx, indicator); err != nil {
		return domain.TypingIndicator{}, err
	}
	m.active[typingKey{chatID, identity.UserID}] = indicator
	return indicator, nil
}

func (m *TypingManager) Stop(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, typingKey{chatID, identity.UserID})
	return m.repo.DeleteTyping(ctx, chatID, identity.UserID)
}

// IsTyping reports whether an indicator of userID in chatID is live.
func (m *TypingManager) IsTyping(chatID domain.ChatID, userID domain.UserID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	indicator, ok := m.active[typingKey{chatID, userID}]
	return ok && !indicator.Expired(m.now())
}

// DisplayName never fails: an unknown user is shown as "User {id}".
func (m *TypingManager) DisplayName(ctx context.Context, userID domain.UserID) string {
	profile, err := m.profiles.Profile(ctx, userID)
	if err != nil {
		m.log.Debug("No profile for typing user", "user_id", userID, "error", err)
		return domain.FallbackDisplayName(userID)
	}
	return profile.DisplayName()
}

// Sweep forgets and deletes every indicator whose expiry elapsed, and
// returns them. A failed delete is logged, the store TTL catches up.
// A Start racing the sweep waits for it and then stores a fresh row.
func (m *TypingManager) Sweep(ctx context.Context) []domain.TypingIndicator {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var expired []domain.TypingIndicator
	for key, indicator := range m.active {
		if !indicator.Expired(now) {
			continue
		}
		if err := m.repo.DeleteTyping(ctx, indicator.ChatID, indicator.UserID); err != nil {
			m.log.Warn("Cannot delete expired typing indicator",
				"chat_id", indicator.ChatID, "user_id", indicator.UserID, "error", err)
		}
		delete(m.active, key)
		expired = append(expired, indicator)
	}
	return expired
}

func (m *TypingManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
