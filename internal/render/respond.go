package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/redact"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// Media types the responder can produce. The vendor type carries the same
// envelope and is chosen only when the client asks for it.
const (
	MediaTypeJSON   = "application/json"
	MediaTypeVendor = "application/vnd.drf+json"
)

// ResponseOption customizes a single response.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	status          int
	extra           Extra
	elevateLogLevel bool
}

// WithStatus sets the HTTP status of a success response. Error payloads
// always use their classified status.
func WithStatus(status int) ResponseOption {
	return func(o *responseOptions) { o.status = status }
}

// WithMeta attaches "meta" to the envelope.
func WithMeta(meta any) ResponseOption {
	return func(o *responseOptions) { o.extra.Meta = meta }
}

// WithStatusText overrides "status".
func WithStatusText(text string) ResponseOption {
	return func(o *responseOptions) { o.extra.StatusText = text }
}

// WithMessage overrides "msg".
func WithMessage(msg string) ResponseOption {
	return func(o *responseOptions) { o.extra.Message = msg }
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(o *responseOptions) { o.elevateLogLevel = true }
}

// Responder writes envelopes to HTTP responses.
type Responder struct {
	renderer *Renderer
	versions *versioning.Resolver
}

// NewResponder creates a Responder. versions may be nil, in which case no
// pending deprecation warning is ever sent.
func NewResponder(renderer *Renderer, versions *versioning.Resolver) *Responder {
	return &Responder{renderer: renderer, versions: versions}
}

// Respond renders payload and writes it with the negotiated content type.
//
// Log level strategy for error payloads:
// - 5xx errors: Always logged at ERROR level
// - 429 Too Many Requests: Logged at WARN level (operational concern)
// - Other 4xx errors: DEBUG, or WARN with WithElevatedLogLevel
func (rs *Responder) Respond(w http.ResponseWriter, r *http.Request, payload any, opts ...ResponseOption) {
	o := responseOptions{status: http.StatusOK}
	for _, opt := range opts {
		opt(&o)
	}

	// The warning is attached before the body is transformed so it survives
	// error responses too.
	if rs.versions != nil {
		if warning, ok := rs.versions.PendingWarning(versioning.FromContext(r.Context())); ok {
			w.Header().Set(HeaderWarning, warning)
		}
	}

	status := StatusOf(payload, o.status)
	if err, ok := payload.(error); ok {
		setErrorHeaders(w.Header(), err)
		logErrorResponse(r, status, err, o.elevateLogLevel)
	}

	body, err := rs.renderer.Transform(r.Context(), payload, o.extra)
	if err != nil {
		// Only success data can fail to encode; report it as an internal error.
		status = http.StatusInternalServerError
		body, _ = rs.renderer.Transform(r.Context(), err, Extra{})
	}

	writeJSON(w, r, status, body)
}

// Error is Respond for error payloads.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error, opts ...ResponseOption) {
	rs.Respond(w, r, err, opts...)
}

func logErrorResponse(r *http.Request, status int, err error, elevate bool) {
	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)),
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		logLevel = slog.LevelWarn
	} else if elevate && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	log := logger.FromContext(r.Context())
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)
}

// ContentType picks the response media type from the Accept header.
func ContentType(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == MediaTypeVendor {
			return MediaTypeVendor
		}
	}
	return MediaTypeJSON
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", ContentType(r))
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
