package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
)

// CategoryService manages the tenant taxonomy.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	audit        portssvc.AuditEmitter
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(cr portsrepo.CategoryRepositoryFacade, authorizer portssvc.TenantAuthorizerSvc, audit portssvc.AuditEmitter) portssvc.CategorySvcFacade {
	return &CategoryService{
		BaseService:  BaseService{TenantAuthorizer: authorizer},
		categoryRepo: cr,
		audit:        audit,
	}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// ListTaxonomy retrieves the tenant's ordered categories and subcategories.
func (s *CategoryService) ListTaxonomy(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Category, []domain.Subcategory, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	categories, err := s.categoryRepo.ListCategoriesByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("tenant_id", tenantID))
		return nil, nil, fmt.Errorf("failed to list categories of tenant %s: %w", tenantID, err)
	}

	subcategories, err := s.categoryRepo.ListSubcategoriesByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subcategories", slog.String("tenant_id", tenantID))
		return nil, nil, fmt.Errorf("failed to list subcategories of tenant %s: %w", tenantID, err)
	}

	return categories, subcategories, nil
}

// CreateCategory adds a category to the tenant taxonomy. Requires ADMIN.
func (s *CategoryService) CreateCategory(ctx context.Context, tenantID string, req dto.CreateCategoryRequest, actorUserID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("tenant_id", tenantID), slog.String("category_name", req.Name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.audit.LogEvent(tenantID, "category", category.CategoryID, domain.AuditCreate, nil, category, actorUserID)

	s.LogInfo(ctx, "Category created",
		slog.String("tenant_id", tenantID),
		slog.String("category_id", category.CategoryID))
	return &category, nil
}

// CreateSubcategory adds a subcategory under an existing category. Requires ADMIN.
func (s *CategoryService) CreateSubcategory(ctx context.Context, tenantID, categoryID string, req dto.CreateSubcategoryRequest, actorUserID string) (*domain.Subcategory, error) {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found in tenant", apperrors.ErrValidation, categoryID)
		}
		return nil, fmt.Errorf("failed to validate parent category: %w", err)
	}

	now := time.Now()
	subcategory := domain.Subcategory{
		SubcategoryID: uuid.NewString(),
		CategoryID:    categoryID,
		TenantID:      tenantID,
		Name:          req.Name,
		DisplayOrder:  req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.categoryRepo.SaveSubcategory(ctx, subcategory); err != nil {
		s.LogError(ctx, err, "Failed to save subcategory", slog.String("tenant_id", tenantID), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}

	s.audit.LogEvent(tenantID, "subcategory", subcategory.SubcategoryID, domain.AuditCreate, nil, subcategory, actorUserID)

	return &subcategory, nil
}

// DeleteCategory removes a category. Categories still referenced by
// subcategories cannot be removed.
func (s *CategoryService) DeleteCategory(ctx context.Context, tenantID, categoryID string, actorUserID string) error {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, categoryID)
	if err != nil {
		return err
	}

	count, err := s.categoryRepo.CountSubcategoriesByCategory(ctx, tenantID, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count subcategories", slog.String("tenant_id", tenantID), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("category %s still has %d subcategories", categoryID, count))
	}

	if err := s.categoryRepo.DeleteCategory(ctx, tenantID, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("tenant_id", tenantID), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}

	s.audit.LogEvent(tenantID, "category", categoryID, domain.AuditDelete, category, nil, actorUserID)

	s.LogInfo(ctx, "Category deleted",
		slog.String("tenant_id", tenantID),
		slog.String("category_id", categoryID))
	return nil
}
