package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/miphreal/drf-tweaks/internal/domain"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=32"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	IsAuthenticated bool      `json:"is_authenticated"`
	// EmailConfirmed is reported from version 1.1 on.
	EmailConfirmed *bool `json:"email_confirmed,omitempty"`
}

// AnonymousResponse is returned by GET /login without a usable token.
type AnonymousResponse struct {
	IsAuthenticated bool `json:"is_authenticated"`
}

// LoginResponse is the user plus the issued bearer token.
type LoginResponse struct {
	UserResponse
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}

// TestResponse is the body of GET /test.
type TestResponse struct {
	APIVersion            string `json:"api_version"`
	CamelizedDataProperty string `json:"camelized_data_property"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		IsAuthenticated: true,
	}
}
