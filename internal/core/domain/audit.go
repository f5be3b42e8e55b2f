package domain

import (
	"encoding/json"
	"time"
)

// AuditAction is the kind of mutation an audit event records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditEvent is an append-only record of a mutation with opaque before/after
// snapshots. Events are never mutated or deleted.
type AuditEvent struct {
	AuditID    string          `json:"auditID"` // Primary Key (e.g., UUID)
	TenantID   string          `json:"tenantID"`
	EntityType string          `json:"entityType"` // e.g. "posting", "membership"
	EntityID   string          `json:"entityID"`
	Action     AuditAction     `json:"action"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	ActorID    string          `json:"actorID"`
	OccurredAt time.Time       `json:"occurredAt"`
}
