package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/miphreal/drf-tweaks/internal/api/shared"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/redact"
	"github.com/miphreal/drf-tweaks/internal/render"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware provides bearer token authentication for routes.
type AuthMiddleware struct {
	authenticator Authenticator
	responder     *render.Responder
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authenticator Authenticator, responder *render.Responder) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		responder:     responder,
	}
}

// Authenticate requires a valid bearer token and adds the user to the request
// context. Failures are rendered as NotAuthenticated or AuthenticationFailed.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			m.responder.Error(w, r, err)
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.responder.Error(w, r, err, render.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// Identify attaches the user when the request carries a valid bearer token
// and lets every other request through anonymously.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("ignoring unusable bearer token",
				slog.String("error", redact.Error(err)))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// A missing header yields an empty token.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", domain.NewAuthenticationFailed("Invalid authorization header.")
	}
	return strings.TrimSpace(token), nil
}
