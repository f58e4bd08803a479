package ports

import (
	"context"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder processes a single audit event synchronously.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Implementations
// must never block request handling; dropped or failed events are logged, not
// surfaced to callers.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
