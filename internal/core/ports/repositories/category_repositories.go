package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// CategoryReader defines read operations for the tenant taxonomy
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category within a tenant.
	FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error)

	// ListCategoriesByTenant retrieves the ordered category list of a tenant.
	ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error)

	// ListSubcategoriesByTenant retrieves all subcategories of a tenant.
	ListSubcategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Subcategory, error)

	// CountSubcategoriesByCategory counts subcategories referencing a category.
	CountSubcategoriesByCategory(ctx context.Context, tenantID, categoryID string) (int, error)
}

// CategoryWriter defines write operations for the tenant taxonomy
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveSubcategory persists a new subcategory.
	SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error

	// DeleteCategory removes a category. Callers must ensure no subcategories
	// reference it first.
	DeleteCategory(ctx context.Context, tenantID, categoryID string) error
}

// CategoryRepositoryFacade combines all taxonomy-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
