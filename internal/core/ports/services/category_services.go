package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
)

// CategorySvcFacade manages the tenant taxonomy.
type CategorySvcFacade interface {
	// ListTaxonomy retrieves the tenant's ordered categories with their
	// subcategories.
	ListTaxonomy(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Category, []domain.Subcategory, error)

	// CreateCategory adds a category to the tenant taxonomy.
	CreateCategory(ctx context.Context, tenantID string, req dto.CreateCategoryRequest, actorUserID string) (*domain.Category, error)

	// CreateSubcategory adds a subcategory under an existing category.
	CreateSubcategory(ctx context.Context, tenantID, categoryID string, req dto.CreateSubcategoryRequest, actorUserID string) (*domain.Subcategory, error)

	// DeleteCategory removes a category; it fails with ErrConflict while
	// subcategories still reference it.
	DeleteCategory(ctx context.Context, tenantID, categoryID string, actorUserID string) error
}
