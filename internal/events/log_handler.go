package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogHandler writes every event to a logger. Failed logins are logged at
// warn level, everything else at info.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "auth_audit")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *AuthEvent) error {
	level := slog.LevelInfo
	if event.Type == TypeLoginFailed {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("username", event.Username),
	}
	if event.UserID != uuid.Nil {
		attrs = append(attrs, slog.String("user_id", event.UserID.String()))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if event.RemoteIP != "" {
		attrs = append(attrs, slog.String("remote_ip", event.RemoteIP))
	}
	h.logger.LogAttrs(ctx, level, "auth event", attrs...)
	return nil
}
