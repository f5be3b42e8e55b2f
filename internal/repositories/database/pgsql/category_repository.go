package pgsql

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_CATEGORY_SELECT_QUERY = `
	SELECT category_id, tenant_id, name, color, display_order,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM categories
`

var FULL_SUBCATEGORY_SELECT_QUERY = `
	SELECT subcategory_id, category_id, tenant_id, name, display_order,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM subcategories
`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for taxonomy data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.Category, error) {
	query := FULL_CATEGORY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Category])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan categories", err)
	}
	return categories, nil
}

// FindCategoryByID retrieves a specific category within a tenant.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error) {
	categories, err := r.getCategories(ctx, ` WHERE tenant_id = $1 AND category_id = $2;`, tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return &categories[0], nil
}

// ListCategoriesByTenant retrieves the ordered category list of a tenant.
func (r *PgxCategoryRepository) ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error) {
	return r.getCategories(ctx, ` WHERE tenant_id = $1 ORDER BY display_order, name;`, tenantID)
}

// ListSubcategoriesByTenant retrieves all subcategories of a tenant.
func (r *PgxCategoryRepository) ListSubcategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Subcategory, error) {
	rows, err := r.Pool.Query(ctx, FULL_SUBCATEGORY_SELECT_QUERY+` WHERE tenant_id = $1 ORDER BY display_order, name;`, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query subcategories for tenant "+tenantID, err)
	}
	defer rows.Close()

	subcategories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Subcategory])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan subcategories", err)
	}
	return subcategories, nil
}

// CountSubcategoriesByCategory counts subcategories referencing a category.
func (r *PgxCategoryRepository) CountSubcategoriesByCategory(ctx context.Context, tenantID, categoryID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subcategories WHERE tenant_id = $1 AND category_id = $2;`,
		tenantID, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count subcategories for category "+categoryID, err)
	}
	return count, nil
}

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, tenant_id, name, color, display_order,
		                        created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.TenantID,
		category.Name,
		category.Color,
		category.DisplayOrder,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "category name already in use", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save category "+category.CategoryID, err)
	}
	return nil
}

// SaveSubcategory persists a new subcategory.
func (r *PgxCategoryRepository) SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	query := `
		INSERT INTO subcategories (subcategory_id, category_id, tenant_id, name, display_order,
		                           created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		subcategory.SubcategoryID,
		subcategory.CategoryID,
		subcategory.TenantID,
		subcategory.Name,
		subcategory.DisplayOrder,
		subcategory.CreatedAt,
		subcategory.CreatedBy,
		subcategory.LastUpdatedAt,
		subcategory.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "subcategory name already in use", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save subcategory "+subcategory.SubcategoryID, err)
	}
	return nil
}

// DeleteCategory removes a category. The service layer rejects the delete
// while subcategories still reference it.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, tenantID, categoryID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM categories WHERE tenant_id = $1 AND category_id = $2;`,
		tenantID, categoryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete category "+categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return nil
}
