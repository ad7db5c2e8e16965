package repositories

import (
	"chat-live/domain"
	"chat-live/errors"
	"context"
	errs "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// UserRepository holds the public profiles attached to outbound messages.
// Accounts themselves are owned by the authentication service.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (u *UserRepository) SaveProfile(ctx context.Context, profile domain.SenderProfile) error {
	return update(ctx, u.db, func(txn *badger.Txn) error {
		return setJSON(txn, userKey(profile.ID), profile)
	})
}

// Profile returns errors.ErrUserNotFound when the user was never saved.
func (u *UserRepository) Profile(ctx context.Context, userID domain.UserID) (domain.SenderProfile, error) {
	var profile domain.SenderProfile
	err := view(ctx, u.db, func(txn *badger.Txn) error {
		return getJSON(txn, userKey(userID), &profile)
	})
	if errs.Is(err, badger.ErrKeyNotFound) {
		return domain.SenderProfile{}, fmt.Errorf("%w: %d", errors.ErrUserNotFound, userID)
	}
	return profile, err
}
