package services

import "github.com/finanzap/finanzap_backend/internal/core/domain"

// AuditEmitter is the fire-and-forget audit side channel. LogEvent never
// blocks the caller and never returns an error; emission failures are
// reported through the emitter's own logging path.
type AuditEmitter interface {
	// LogEvent appends one audit event asynchronously. Before and after are
	// JSON-serialized snapshots; either may be nil.
	LogEvent(tenantID, entityType, entityID string, action domain.AuditAction, before, after any, actorID string)

	// Close drains buffered events and stops the emitter.
	Close()
}
