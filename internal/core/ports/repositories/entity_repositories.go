package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// EntityReader defines read operations for counterparty data
type EntityReader interface {
	// FindEntityByID retrieves a specific entity within a tenant.
	FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.Entity, error)

	// FindEntityByTaxID retrieves the entity holding the given tax ID within a tenant.
	FindEntityByTaxID(ctx context.Context, tenantID, taxID string) (*domain.Entity, error)

	// FindEntityByName retrieves an entity by exact (case-sensitive) name match.
	FindEntityByName(ctx context.Context, tenantID, name string) (*domain.Entity, error)

	// ListEntitiesByTenant retrieves all entities of a tenant.
	ListEntitiesByTenant(ctx context.Context, tenantID string) ([]domain.Entity, error)
}

// EntityWriter defines write operations for counterparty data
type EntityWriter interface {
	// SaveEntity persists a new entity. When the entity carries a tax ID that
	// another entity in the tenant already holds, it returns ErrDuplicate and
	// writes nothing, so callers can re-read the surviving record.
	SaveEntity(ctx context.Context, entity domain.Entity) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
