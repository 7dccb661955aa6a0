package render

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/redact"
)

// Recoverer turns a handler panic into an InternalError envelope.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func (rs *Responder) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := logger.FromContext(r.Context())
			log.ErrorContext(r.Context(), "handler panicked",
				slog.String("panic", redact.String(fmt.Sprint(rec))),
				slog.String("stack", redact.String(string(debug.Stack()))))

			rs.Error(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// NotFound renders the NotFound envelope for unmatched routes.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Error(w, r, domain.NewNotFound(""))
}

// MethodNotAllowed renders the MethodNotAllowed envelope.
func (rs *Responder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rs.Error(w, r, domain.NewMethodNotAllowed(r.Method))
}
