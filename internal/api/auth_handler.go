package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/miphreal/drf-tweaks/internal/api/shared"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/events"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/redact"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/service/auth"
	"github.com/miphreal/drf-tweaks/internal/validation"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// legacyProfileRemovedOn is the day /me stops serving the pre-1.1 profile.
const legacyProfileRemovedOn = "2027-06-30"

// LoginService checks credentials and opens a session.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// AuthHandler handles the login and logout endpoints.
type AuthHandler struct {
	logins    LoginService
	validator *validation.Validator
	responder *render.Responder
	audit     events.EventEmitter
}

// NewAuthHandler creates a new AuthHandler with the given dependencies. A
// nil audit emitter disables the audit trail.
func NewAuthHandler(
	logins LoginService,
	validator *validation.Validator,
	responder *render.Responder,
	audit events.EventEmitter,
) *AuthHandler {
	return &AuthHandler{
		logins:    logins,
		validator: validator,
		responder: responder,
		audit:     audit,
	}
}

// Status handles GET /login. It reports the user identified by the bearer
// token, or an anonymous marker.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		h.responder.Respond(w, r, AnonymousResponse{IsAuthenticated: false})
		return
	}
	h.responder.Respond(w, r, newUserResponse(user))
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.Bind(r, &req, h.validator); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	session, err := h.logins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		event := events.NewAuthEvent(events.TypeLoginFailed, uuid.Nil, req.Username)
		event.Reason = "InternalError"
		if de, ok := domain.AsError(err); ok {
			event.Reason = de.Name
		}
		h.emit(r, event)
		h.responder.Error(w, r, err, render.WithElevatedLogLevel())
		return
	}
	h.emit(r, events.NewAuthEvent(events.TypeLoginSucceeded, session.User.ID, session.User.Username))

	h.responder.Respond(w, r, LoginResponse{
		UserResponse:   newUserResponse(session.User),
		Token:          session.Token,
		TokenExpiresAt: session.ExpiresAt,
	})
}

// Me handles GET /me, which requires authentication.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, r, domain.NewNotAuthenticated(""))
		return
	}
	resp := newUserResponse(user)
	if versioning.Check(versioning.FromContext(r.Context()), ">= 1.1") {
		confirmed := user.EmailConfirmed
		resp.EmailConfirmed = &confirmed
	} else {
		log := logger.FromContext(r.Context())
		if err := versioning.FinallyDeprecatedOn(r.Context(), log, legacyProfileRemovedOn,
			"profile without email_confirmed is deprecated", time.Now()); err != nil {
			log.ErrorContext(r.Context(), "invalid deprecation day", slog.String("error", err.Error()))
		}
	}
	h.responder.Respond(w, r, resp)
}

// Logout handles /logout. Tokens are stateless, so there is nothing to
// revoke; the client drops its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := shared.UserFromContext(r.Context()); ok {
		h.emit(r, events.NewAuthEvent(events.TypeLogout, user.ID, user.Username))
	}
	h.responder.Respond(w, r, nil)
}

// emit publishes an audit event. Failures are logged and never fail the
// request.
func (h *AuthHandler) emit(r *http.Request, event *events.AuthEvent) {
	if h.audit == nil {
		return
	}
	event.RemoteIP = r.RemoteAddr
	if err := h.audit.EmitEvent(r.Context(), event); err != nil {
		logger.FromContext(r.Context()).Warn("failed to record auth event",
			"event_type", event.Type,
			"error", redact.Error(err))
	}
}
