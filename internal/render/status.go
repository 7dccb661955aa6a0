package render

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/pagination"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// Header names set alongside error responses.
const (
	HeaderAuthenticate = "WWW-Authenticate"
	HeaderThrottleWait = "X-Throttle-Wait-Seconds"
	HeaderWarning      = "Warning"
)

// StatusOf returns the HTTP status for payload. Non-error payloads get
// fallback.
func StatusOf(payload any, fallback int) int {
	err, ok := payload.(error)
	if !ok {
		return fallback
	}

	var pe *pagination.ParamError
	if errors.As(err, &pe) {
		return http.StatusBadRequest
	}
	if _, ok := validation.AsError(err); ok {
		return http.StatusBadRequest
	}
	if de, ok := domain.AsError(err); ok && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}

// setErrorHeaders adds the authentication challenge and throttle wait headers
// of a domain error.
func setErrorHeaders(h http.Header, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		return
	}
	if de.AuthHeader != "" {
		h.Set(HeaderAuthenticate, de.AuthHeader)
	}
	if de.Wait > 0 {
		h.Set(HeaderThrottleWait, strconv.Itoa(de.Wait))
	}
}
