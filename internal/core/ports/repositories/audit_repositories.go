package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// AuditWriter is the append-only write contract for audit events.
// Events are never mutated or deleted; storage mechanics beyond this contract
// live outside the core.
type AuditWriter interface {
	// SaveAuditEvent appends one audit event.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
