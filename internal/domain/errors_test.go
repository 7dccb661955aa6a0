package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusAndDefaults(t *testing.T) {
	tests := []struct {
		err    *Error
		name   string
		status int
		detail string
	}{
		{NewNotAuthenticated(""), "NotAuthenticated", http.StatusUnauthorized, "Authentication credentials were not provided."},
		{NewAuthenticationFailed("bad"), "AuthenticationFailed", http.StatusUnauthorized, "bad"},
		{NewPermissionDenied(""), "PermissionDenied", http.StatusForbidden, "You do not have permission to perform this action."},
		{NewUserIsNotActive(""), "UserIsNotActive", http.StatusForbidden, "User is not active."},
		{NewEmailIsNotConfirmed(""), "EmailIsNotConfirmed", http.StatusForbidden, "The email was not confirmed."},
		{NewEmailConfirmationHasExpired(""), "EmailConfirmationHasExpired", http.StatusBadRequest, "The email confirmation token has expired."},
		{NewNotFound(""), "NotFound", http.StatusNotFound, "Not found."},
		{NewObjectDoesNotExist("gone"), "ObjectDoesNotExist", http.StatusNotFound, "gone"},
		{NewMethodNotAllowed("PUT"), "MethodNotAllowed", http.StatusMethodNotAllowed, `Method "PUT" not allowed.`},
		{NewParseError(""), "ParseError", http.StatusBadRequest, "Malformed request."},
		{NewConflictState(""), "ConflictState", http.StatusConflict, "Conflict state."},
		{NewAlreadyRegistered(""), "AlreadyRegistered", http.StatusConflict, "Already registered."},
		{NewAlreadyLoggedIn(""), "AlreadyLoggedIn", http.StatusConflict, "Already logged in."},
		{NewApiDeprecated("old"), "ApiDeprecated", http.StatusGone, "old"},
		{NewTemporarilyUnavailable(""), "TemporarilyUnavailable", http.StatusServiceUnavailable, "Service is temporarily unavailable, please try later."},
		{NewClientUpgradeRequired(""), "ClientUpgradeRequired", http.StatusTeapot, UpgradeMessage},
		{NewApiError(""), "ApiError", http.StatusInternalServerError, "A server error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.err.Name)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.detail, tt.err.Detail)
		})
	}
}

func TestAuthErrorsCarryChallenge(t *testing.T) {
	assert.Equal(t, BearerChallenge, NewNotAuthenticated("").AuthHeader)
	assert.Equal(t, BearerChallenge, NewAuthenticationFailed("").AuthHeader)
	assert.Empty(t, NewPermissionDenied("").AuthHeader)
}

func TestThrottled(t *testing.T) {
	e := NewThrottled(30)
	assert.Equal(t, http.StatusTooManyRequests, e.Status)
	assert.Equal(t, 30, e.Wait)
	assert.Equal(t, "Request was throttled. Expected available in 30 seconds.", e.Detail)
	assert.Equal(t, "Request was throttled.", NewThrottled(0).Detail)
}

func TestErrorsIsMatchesByName(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFound("user 7"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrPermissionDenied))

	de, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "user 7", de.Detail)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := NewTemporarilyUnavailable("").Wrap(cause)

	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, e, ErrTemporarilyUnavailable)
	assert.Contains(t, e.Error(), "connection refused")
}
