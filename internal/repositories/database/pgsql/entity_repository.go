package pgsql

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_ENTITY_SELECT_QUERY = `
	SELECT entity_id, tenant_id, tax_id, name, entity_type,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM entities
`

type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for counterparty data.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

func (r *PgxEntityRepository) getEntities(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.Entity, error) {
	query := FULL_ENTITY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entities", err)
	}
	defer rows.Close()

	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Entity])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan entities", err)
	}
	return entities, nil
}

// FindEntityByID retrieves a specific entity within a tenant.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.Entity, error) {
	entities, err := r.getEntities(ctx, ` WHERE tenant_id = $1 AND entity_id = $2;`, tenantID, entityID)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, apperrors.NewNotFoundError("entity " + entityID + " not found")
	}
	return &entities[0], nil
}

// FindEntityByTaxID retrieves the entity holding the given tax ID within a tenant.
func (r *PgxEntityRepository) FindEntityByTaxID(ctx context.Context, tenantID, taxID string) (*domain.Entity, error) {
	entities, err := r.getEntities(ctx, ` WHERE tenant_id = $1 AND tax_id = $2;`, tenantID, taxID)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, apperrors.NewNotFoundError("entity with tax id " + taxID + " not found")
	}
	return &entities[0], nil
}

// FindEntityByName retrieves an entity by exact name match. When several
// entities share the name the oldest one wins, keeping resolution stable.
func (r *PgxEntityRepository) FindEntityByName(ctx context.Context, tenantID, name string) (*domain.Entity, error) {
	entities, err := r.getEntities(ctx, ` WHERE tenant_id = $1 AND name = $2 ORDER BY created_at LIMIT 1;`, tenantID, name)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, apperrors.NewNotFoundError("entity with name " + name + " not found")
	}
	return &entities[0], nil
}

// ListEntitiesByTenant retrieves all entities of a tenant.
func (r *PgxEntityRepository) ListEntitiesByTenant(ctx context.Context, tenantID string) ([]domain.Entity, error) {
	return r.getEntities(ctx, ` WHERE tenant_id = $1 ORDER BY name;`, tenantID)
}

// SaveEntity persists a new entity. A partial unique index on
// (tenant_id, tax_id) guards non-empty tax IDs; a violation surfaces as
// ErrDuplicate so the caller can re-read the surviving record.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	query := `
		INSERT INTO entities (entity_id, tenant_id, tax_id, name, entity_type,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		entity.EntityID,
		entity.TenantID,
		entity.TaxID,
		entity.Name,
		entity.EntityType,
		entity.CreatedAt,
		entity.CreatedBy,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entity with tax id "+entity.TaxID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save entity "+entity.EntityID, err)
	}
	return nil
}
