package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

const taxIDLength = 11

// EntityService handles find-or-create resolution of counterparties.
type EntityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
	audit      portssvc.AuditEmitter
}

// NewEntityService creates a new EntityService.
func NewEntityService(er portsrepo.EntityRepositoryFacade, authorizer portssvc.TenantAuthorizerSvc, audit portssvc.AuditEmitter) portssvc.EntitySvcFacade {
	return &EntityService{
		BaseService: BaseService{TenantAuthorizer: authorizer},
		entityRepo:  er,
		audit:       audit,
	}
}

var _ portssvc.EntitySvcFacade = (*EntityService)(nil)

// Resolve returns the tenant's entity for a counterparty, creating it when no
// match exists. The tax ID is the primary resolution key; the exact name is a
// fallback. Concurrent creates with the same tax ID collapse onto a single
// record: the losing writer rereads the surviving row instead of failing.
func (s *EntityService) Resolve(ctx context.Context, tenantID, name, taxID string, entityType domain.EntityType, actorUserID string) (*domain.Entity, error) {
	logger := s.GetLogger(ctx)

	name = strings.TrimSpace(name)
	taxID = strings.TrimSpace(taxID)
	if name == "" && taxID == "" {
		return nil, apperrors.NewValidationError("entity resolution requires a name or a tax ID")
	}
	if taxID != "" {
		if err := validateTaxID(taxID); err != nil {
			return nil, err
		}
	}
	if entityType == "" {
		entityType = domain.EntityOther
	}

	if taxID != "" {
		entity, err := s.entityRepo.FindEntityByTaxID(ctx, tenantID, taxID)
		if err == nil {
			return entity, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up entity by tax ID", slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("failed to resolve entity by tax ID: %w", err)
		}
	}
	// A tax-id miss still falls back to the exact name, so a counterparty
	// recorded before its tax ID was known resolves to the existing record.
	// The matched record is returned as-is; the tax ID is not back-filled.
	if name != "" {
		entity, err := s.entityRepo.FindEntityByName(ctx, tenantID, name)
		if err == nil {
			return entity, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up entity by name", slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("failed to resolve entity by name: %w", err)
		}
	}

	now := time.Now()
	entity := domain.Entity{
		EntityID:   uuid.NewString(),
		TenantID:   tenantID,
		TaxID:      taxID,
		Name:       name,
		EntityType: entityType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && taxID != "" {
			// A concurrent caller created the same tax ID first; use theirs.
			logger.Debug("Entity create lost a race on tax ID, rereading",
				slog.String("tenant_id", tenantID))
			return s.entityRepo.FindEntityByTaxID(ctx, tenantID, taxID)
		}
		s.LogError(ctx, err, "Failed to save entity", slog.String("tenant_id", tenantID), slog.String("entity_name", name))
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	s.audit.LogEvent(tenantID, "entity", entity.EntityID, domain.AuditCreate, nil, entity, actorUserID)

	logger.Info("Entity created",
		slog.String("tenant_id", tenantID),
		slog.String("entity_id", entity.EntityID),
		slog.String("entity_type", string(entityType)))
	return &entity, nil
}

// FindEntityByID retrieves an entity after confirming the requester belongs to the tenant.
func (s *EntityService) FindEntityByID(ctx context.Context, tenantID, entityID string, requestingUserID string) (*domain.Entity, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.entityRepo.FindEntityByID(ctx, tenantID, entityID)
}

// ListEntities retrieves all entities of a tenant.
func (s *EntityService) ListEntities(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Entity, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	entities, err := s.entityRepo.ListEntitiesByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list entities of tenant %s: %w", tenantID, err)
	}
	if entities == nil {
		return []domain.Entity{}, nil
	}
	return entities, nil
}

// validateTaxID enforces the 11-digit tax identifier format.
func validateTaxID(taxID string) error {
	if len(taxID) != taxIDLength {
		return apperrors.NewValidationError(fmt.Sprintf("tax ID must be %d digits", taxIDLength))
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("tax ID must contain only digits")
		}
	}
	return nil
}
