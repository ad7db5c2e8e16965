package auth

import (
	"chat-live/domain"
	"chat-live/errors"
	"context"
	errs "errors"
	"log/slog"
	"net/http"
	"strings"
)

const (
	CookieName = "jwt"
	QueryParam = "token"

	MessageAuthRequired = "Authentication required"
	MessageInvalidToken = "Invalid authentication token"
)

type contextKey string

const IdentityKey contextKey = "identity"

// Authenticator resolves the Identity of an HTTP request before any
// websocket upgrade happens.
type Authenticator struct {
	log    *slog.Logger
	tokens *TokenManager
}

func NewAuthenticator(log *slog.Logger, tokens *TokenManager) *Authenticator {
	return &Authenticator{log: log, tokens: tokens}
}

// Authenticate looks for a token in the "jwt" cookie, then in the
// Authorization header, then in the "token" query parameter.
// It returns errors.ErrMissingCredential or errors.ErrInvalidToken.
func (a *Authenticator) Authenticate(r *http.Request) (domain.Identity, error) {
	token := credential(r)
	if token == "" {
		return domain.Identity{}, errors.ErrMissingCredential
	}
	return a.tokens.Identity(token)
}

func credential(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return r.URL.Query().Get(QueryParam)
}

// Middleware rejects unauthenticated requests with 401 and stores the
// Identity in the request context otherwise.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.Authenticate(r)
		if err != nil {
			a.Reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), IdentityKey, identity)))
	})
}

// Reject answers 401 with the message matching err.
func (a *Authenticator) Reject(w http.ResponseWriter, r *http.Request, err error) {
	message := MessageInvalidToken
	if errs.Is(err, errors.ErrMissingCredential) {
		message = MessageAuthRequired
	}
	a.log.Warn("Unauthenticated request", "path", r.URL.Path, "remote", r.RemoteAddr, "error", err)
	http.Error(w, message, http.StatusUnauthorized)
}

func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}
