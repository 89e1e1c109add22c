package service

import (
	"context"
	"log/slog"

	"pharmafinder/pkg/platform/audit"
	"pharmafinder/pkg/requestcontext"
)

// auditEmitter writes an audit log line and forwards the event to the
// publisher. Publishing failures are logged and never change the outcome of
// the operation that produced the event.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func (e *auditEmitter) emit(ctx context.Context, action audit.AuditEvent, event audit.Event) {
	event.Action = string(action)
	event.Category = action.Category()
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Platform == "" {
		event.Platform = requestcontext.Platform(ctx)
	}

	if e.logger != nil {
		e.logger.InfoContext(ctx, event.Action,
			"event", event.Action,
			"log_type", "audit",
			"category", string(event.Category),
			"actor_id", event.ActorID,
			"subject", event.Subject,
			"request_id", event.RequestID,
		)
	}
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "audit publish failed", "event", event.Action, "error", err)
	}
}
