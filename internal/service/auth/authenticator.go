package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/store"
)

// dummyHash is a bcrypt hash of a random string at the default cost.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Session is the outcome of a successful login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Authenticator checks credentials against the user store and issues tokens.
type Authenticator struct {
	users     store.UserStore
	passwords PasswordVerifier
	tokens    JWTService
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(users store.UserStore, passwords PasswordVerifier, tokens JWTService, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger.With("component", "authenticator"),
	}
}

// Login verifies username and password. Unknown users and wrong passwords
// both fail with AuthenticationFailed; an inactive account with the right
// password fails with UserIsNotActive.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Unknown users still pay for one hash comparison.
			_ = a.passwords.Compare(dummyHash, password)
			a.logger.Debug("login for unknown user")
			return nil, domain.NewAuthenticationFailed(InvalidCredentialsMessage)
		}
		return nil, fmt.Errorf("load user for login: %w", err)
	}

	if err := a.passwords.Compare(user.HashedPassword, password); err != nil {
		a.logger.Debug("login with wrong password", "user_id", user.ID)
		return nil, domain.NewAuthenticationFailed(InvalidCredentialsMessage)
	}

	if !user.IsActive {
		return nil, domain.NewUserIsNotActive("")
	}

	token, err := a.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("read issued token: %w", err)
	}

	a.logger.Info("user logged in", "user_id", user.ID)
	return &Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to its user. A missing token fails
// with NotAuthenticated; a bad token or unknown user with
// AuthenticationFailed.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.NewNotAuthenticated("").Wrap(ErrMissingToken)
	}

	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		detail := "Invalid token."
		if errors.Is(err, ErrExpiredToken) {
			detail = "Token has expired."
		}
		return nil, domain.NewAuthenticationFailed(detail).Wrap(err)
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewAuthenticationFailed("User not found.").Wrap(err)
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.NewUserIsNotActive("")
	}
	return user, nil
}
