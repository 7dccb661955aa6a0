package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeLoginSucceeded = "login.succeeded"
	TypeLoginFailed    = "login.failed"
	TypeLogout         = "logout"
)

// AuthEvent records one authentication outcome.
type AuthEvent struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	// UserID is uuid.Nil when the user could not be resolved.
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	// Reason is the failure status name, empty on success.
	Reason    string    `json:"reason,omitempty"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthEvent creates an AuthEvent stamped with a fresh ID and the current
// time.
func NewAuthEvent(eventType string, userID uuid.UUID, username string) *AuthEvent {
	return &AuthEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler consumes events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *AuthEvent) error
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *AuthEvent) error
}
