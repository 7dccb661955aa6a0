package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a classified failure raised by handlers and services. Name is the
// symbolic exception name resolved against the code registry when the error
// is rendered; Status is the HTTP status of the response.
type Error struct {
	Name   string
	Status int
	Detail string

	// AuthHeader is sent as WWW-Authenticate when set.
	AuthHeader string
	// Wait is sent as X-Throttle-Wait-Seconds when positive.
	Wait int

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Name, so sentinels below work with
// errors.Is regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Name == e.Name
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// AsError unwraps err into a domain error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// BearerChallenge is the WWW-Authenticate value sent with 401 responses.
const BearerChallenge = `Bearer realm="api"`

// Sentinels for errors.Is checks.
var (
	ErrNotAuthenticated            = &Error{Name: "NotAuthenticated"}
	ErrAuthenticationFailed        = &Error{Name: "AuthenticationFailed"}
	ErrPermissionDenied            = &Error{Name: "PermissionDenied"}
	ErrUserIsNotActive             = &Error{Name: "UserIsNotActive"}
	ErrEmailIsNotConfirmed         = &Error{Name: "EmailIsNotConfirmed"}
	ErrNotFound                    = &Error{Name: "NotFound"}
	ErrObjectDoesNotExist          = &Error{Name: "ObjectDoesNotExist"}
	ErrMethodNotAllowed            = &Error{Name: "MethodNotAllowed"}
	ErrNotAcceptable               = &Error{Name: "NotAcceptable"}
	ErrParseError                  = &Error{Name: "ParseError"}
	ErrConflictState               = &Error{Name: "ConflictState"}
	ErrAlreadyRegistered           = &Error{Name: "AlreadyRegistered"}
	ErrAlreadyLoggedIn             = &Error{Name: "AlreadyLoggedIn"}
	ErrApiDeprecated               = &Error{Name: "ApiDeprecated"}
	ErrThrottled                   = &Error{Name: "Throttled"}
	ErrTemporarilyUnavailable      = &Error{Name: "TemporarilyUnavailable"}
	ErrClientUpgradeRequired       = &Error{Name: "ClientUpgradeRequired"}
	ErrEmailConfirmationHasExpired = &Error{Name: "EmailConfirmationHasExpired"}
	ErrApiError                    = &Error{Name: "ApiError"}
)

// UpgradeMessage is shown to clients below the supported version.
const UpgradeMessage = "Your version of application is out of date and will not be supported anymore. Please upgrade."

func newError(name string, status int, detail, fallback string) *Error {
	if detail == "" {
		detail = fallback
	}
	return &Error{Name: name, Status: status, Detail: detail}
}

// NewNotAuthenticated is raised when a request carries no credentials.
func NewNotAuthenticated(detail string) *Error {
	e := newError("NotAuthenticated", http.StatusUnauthorized, detail, "Authentication credentials were not provided.")
	e.AuthHeader = BearerChallenge
	return e
}

// NewAuthenticationFailed is raised for rejected credentials.
func NewAuthenticationFailed(detail string) *Error {
	e := newError("AuthenticationFailed", http.StatusUnauthorized, detail, "Incorrect authentication credentials.")
	e.AuthHeader = BearerChallenge
	return e
}

func NewPermissionDenied(detail string) *Error {
	return newError("PermissionDenied", http.StatusForbidden, detail, "You do not have permission to perform this action.")
}

func NewUserIsNotActive(detail string) *Error {
	return newError("UserIsNotActive", http.StatusForbidden, detail, "User is not active.")
}

func NewEmailIsNotConfirmed(detail string) *Error {
	return newError("EmailIsNotConfirmed", http.StatusForbidden, detail, "The email was not confirmed.")
}

func NewEmailConfirmationHasExpired(detail string) *Error {
	return newError("EmailConfirmationHasExpired", http.StatusBadRequest, detail, "The email confirmation token has expired.")
}

func NewNotFound(detail string) *Error {
	return newError("NotFound", http.StatusNotFound, detail, "Not found.")
}

// NewObjectDoesNotExist is raised by stores for missing records.
func NewObjectDoesNotExist(detail string) *Error {
	return newError("ObjectDoesNotExist", http.StatusNotFound, detail, "Not found.")
}

func NewMethodNotAllowed(method string) *Error {
	return newError("MethodNotAllowed", http.StatusMethodNotAllowed, "", fmt.Sprintf("Method %q not allowed.", method))
}

func NewNotAcceptable(detail string) *Error {
	return newError("NotAcceptable", http.StatusNotAcceptable, detail, "Could not satisfy the request Accept header.")
}

// NewParseError is raised for request bodies that cannot be decoded.
func NewParseError(detail string) *Error {
	return newError("ParseError", http.StatusBadRequest, detail, "Malformed request.")
}

func NewConflictState(detail string) *Error {
	return newError("ConflictState", http.StatusConflict, detail, "Conflict state.")
}

func NewAlreadyRegistered(detail string) *Error {
	return newError("AlreadyRegistered", http.StatusConflict, detail, "Already registered.")
}

func NewAlreadyLoggedIn(detail string) *Error {
	return newError("AlreadyLoggedIn", http.StatusConflict, detail, "Already logged in.")
}

func NewApiDeprecated(detail string) *Error {
	return newError("ApiDeprecated", http.StatusGone, detail, "This version of the API is deprecated.")
}

// NewThrottled is raised by rate limiting. wait is in seconds.
func NewThrottled(wait int) *Error {
	detail := "Request was throttled."
	if wait > 0 {
		detail = fmt.Sprintf("Request was throttled. Expected available in %d seconds.", wait)
	}
	e := newError("Throttled", http.StatusTooManyRequests, detail, "")
	e.Wait = wait
	return e
}

func NewTemporarilyUnavailable(detail string) *Error {
	return newError("TemporarilyUnavailable", http.StatusServiceUnavailable, detail, "Service is temporarily unavailable, please try later.")
}

func NewClientUpgradeRequired(detail string) *Error {
	return newError("ClientUpgradeRequired", http.StatusTeapot, detail, UpgradeMessage)
}

// NewApiError is the generic classified failure.
func NewApiError(detail string) *Error {
	return newError("ApiError", http.StatusInternalServerError, detail, "A server error occurred.")
}
