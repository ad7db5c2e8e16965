package auth

import (
	"chat-live/domain"
	"chat-live/errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "a_test_secret_long_enough_for_hs256"

var teacher = domain.Identity{UserID: 12, Role: domain.RoleTeacher}

func TestTokenManager_RoundTrip(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenManager(secret, "chat-live", time.Hour)

	token, err := tokens.GenerateToken(teacher)
	req.NoError(err)

	identity, err := tokens.Identity(token)
	req.NoError(err)
	req.Equal(teacher, identity)
}

func TestTokenManager_Rejects(t *testing.T) {
	tokens := NewTokenManager(secret, "chat-live", time.Hour)
	sign := func(claims CustomClaims, key string, method jwt.SigningMethod) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return token
	}
	valid := jwt.RegisteredClaims{
		Issuer:    "chat-live",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := jwt.RegisteredClaims{
		Issuer:    "chat-live",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	foreign := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: sign(CustomClaims{UserID: 1, Role: "student", RegisteredClaims: valid}, "other", jwt.SigningMethodHS256)},
		{name: "expired", token: sign(CustomClaims{UserID: 1, Role: "student", RegisteredClaims: expired}, secret, jwt.SigningMethodHS256)},
		{name: "wrong issuer", token: sign(CustomClaims{UserID: 1, Role: "student", RegisteredClaims: foreign}, secret, jwt.SigningMethodHS256)},
		{name: "other algorithm", token: sign(CustomClaims{UserID: 1, Role: "student", RegisteredClaims: valid}, secret, jwt.SigningMethodHS512)},
		{name: "no user", token: sign(CustomClaims{Role: "student", RegisteredClaims: valid}, secret, jwt.SigningMethodHS256)},
		{name: "unknown role", token: sign(CustomClaims{UserID: 1, Role: "janitor", RegisteredClaims: valid}, secret, jwt.SigningMethodHS256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Identity(tt.token)
			require.ErrorIs(t, err, errors.ErrInvalidToken)
		})
	}
}

func TestAuthenticator_Credential_Sources(t *testing.T) {
	tokens := NewTokenManager(secret, "chat-live", time.Hour)
	authenticator := NewAuthenticator(slog.Default(), tokens)
	token, err := tokens.GenerateToken(teacher)
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodGet, "/api/v1/ws/chat/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: token})

		identity, err := authenticator.Authenticate(r)
		req.NoError(err)
		req.Equal(teacher, identity)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodGet, "/api/v1/ws/chat/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		identity, err := authenticator.Authenticate(r)
		req.NoError(err)
		req.Equal(teacher, identity)
	})

	t.Run("query parameter", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodGet, "/api/v1/ws/chat/?token="+token, nil)

		identity, err := authenticator.Authenticate(r)
		req.NoError(err)
		req.Equal(teacher, identity)
	})

	t.Run("nothing", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodGet, "/api/v1/ws/chat/", nil)

		_, err := authenticator.Authenticate(r)
		req.ErrorIs(err, errors.ErrMissingCredential)
	})
}

func TestAuthenticator_Middleware(t *testing.T) {
	tokens := NewTokenManager(secret, "chat-live", time.Hour)
	authenticator := NewAuthenticator(slog.Default(), tokens)
	var seen domain.Identity
	handler := authenticator.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("should answer 401 without credential", func(t *testing.T) {
		req := require.New(t)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		req.Equal(http.StatusUnauthorized, rec.Code)
		req.Contains(rec.Body.String(), MessageAuthRequired)
	})

	t.Run("should answer 401 with a bad token", func(t *testing.T) {
		req := require.New(t)
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
		handler.ServeHTTP(rec, r)

		req.Equal(http.StatusUnauthorized, rec.Code)
		req.Contains(rec.Body.String(), MessageInvalidToken)
	})

	t.Run("should inject the identity", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.GenerateToken(teacher)
		req.NoError(err)
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rec, r)

		req.Equal(http.StatusNoContent, rec.Code)
		req.Equal(teacher, seen)
	})
}
