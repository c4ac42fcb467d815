package ports

import (
	"context"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// AuditRepository persists authentication-decision events.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous recording. The HTTP path never
// blocks on the audit store; events flow through a sink into workers.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}
