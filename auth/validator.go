package auth

import (
	"chat-live/domain"
	"chat-live/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type identityClaims struct {
	UserID int64  `validate:"required,gt=0"`
	Role   string `validate:"required,oneof=admin teacher student preceptor father"`
}

func toIdentity(claims *CustomClaims) (domain.Identity, error) {
	if err := validate.Struct(identityClaims{UserID: claims.UserID, Role: claims.Role}); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w: %v", errors.ErrInvalidToken, errors.ErrUnknownRole, err)
	}
	return domain.Identity{UserID: domain.UserID(claims.UserID), Role: role}, nil
}
