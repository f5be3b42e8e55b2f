package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// EntityResolverSvc finds-or-creates counterparty records.
type EntityResolverSvc interface {
	// Resolve returns the tenant's entity for the given counterparty,
	// creating one when neither the tax ID nor the exact name matches an
	// existing record. Resolution by tax ID is idempotent under concurrent
	// callers; resolution by name alone may produce occasional duplicates.
	Resolve(ctx context.Context, tenantID, name, taxID string, entityType domain.EntityType, actorUserID string) (*domain.Entity, error)
}

// EntityReaderSvc defines read operations for counterparty data
type EntityReaderSvc interface {
	// FindEntityByID retrieves a specific entity within a tenant.
	FindEntityByID(ctx context.Context, tenantID, entityID string, requestingUserID string) (*domain.Entity, error)

	// ListEntities retrieves all entities of a tenant.
	ListEntities(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Entity, error)
}

// EntitySvcFacade combines all entity-related service interfaces
type EntitySvcFacade interface {
	EntityResolverSvc
	EntityReaderSvc
}
