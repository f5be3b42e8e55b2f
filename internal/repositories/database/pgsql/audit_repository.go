package pgsql

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new append-only repository for audit events.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditWriter {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditWriter = (*PgxAuditRepository)(nil)

// SaveAuditEvent appends one audit event. Events are insert-only; there is no
// update or delete path.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (audit_id, tenant_id, entity_type, entity_id, action, before, after, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.AuditID,
		event.TenantID,
		event.EntityType,
		event.EntityID,
		event.Action,
		event.Before,
		event.After,
		event.ActorID,
		event.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit event "+event.AuditID, err)
	}
	return nil
}
