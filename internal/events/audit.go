package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// AuditLogHandler writes every task event to the log at INFO level.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler returns a handler that logs through logger, or the
// request logger carried in the event's context when there is one.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogHandler{logger: logger.With(slog.String("component", "audit"))}
}

var _ EventHandler = (*AuditLogHandler)(nil)

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("task_id", event.TaskID.String()),
		slog.String("owner_id", event.OwnerID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.Type == TaskStatusChanged {
		var change StatusChange
		if err := event.UnmarshalPayload(&change); err == nil {
			attrs = append(attrs,
				slog.String("from", string(change.From)),
				slog.String("to", string(change.To)))
		}
	}

	log.Info("task event", attrs...)
	return nil
}
