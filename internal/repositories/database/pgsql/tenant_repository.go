package pgsql

import (
	"context"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_TENANT_SELECT_QUERY = `
	SELECT tenant_id, tenant_type, name, base_currency_code, owner_user_id, plan, status,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM tenants
`

var FULL_MEMBERSHIP_SELECT_QUERY = `
	SELECT tenant_id, user_id, role, status, display_name, email, joined_at
	FROM memberships
`

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant and membership data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryWithTx {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TenantRepositoryWithTx = (*PgxTenantRepository)(nil)

func (r *PgxTenantRepository) getTenants(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.Tenant, error) {
	query := FULL_TENANT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants", err)
	}
	defer rows.Close()

	tenants, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Tenant])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan tenants", err)
	}
	return tenants, nil
}

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenants, err := r.getTenants(ctx, ` WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, apperrors.NewNotFoundError("tenant " + tenantID + " not found")
	}
	return &tenants[0], nil
}

// ListTenantsByUserID retrieves all tenants a user holds a non-revoked membership in.
func (r *PgxTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	query := `
		SELECT t.tenant_id, t.tenant_type, t.name, t.base_currency_code, t.owner_user_id, t.plan, t.status,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM tenants t
		JOIN memberships m ON m.tenant_id = t.tenant_id
		WHERE m.user_id = $1 AND m.status != 'REVOKED'
		ORDER BY t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants for user "+userID, err)
	}
	defer rows.Close()

	tenants, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Tenant])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan tenants", err)
	}
	return tenants, nil
}

// SaveTenantWithOwner persists the tenant, its owner membership and the owner's
// default-tenant link in a single transaction.
func (r *PgxTenantRepository) SaveTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.Membership) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tenantQuery := `
		INSERT INTO tenants (tenant_id, tenant_type, name, base_currency_code, owner_user_id, plan, status,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, tenantQuery,
		tenant.TenantID,
		tenant.TenantType,
		tenant.Name,
		tenant.BaseCurrencyCode,
		tenant.OwnerUserID,
		tenant.Plan,
		tenant.Status,
		tenant.CreatedAt,
		tenant.CreatedBy,
		tenant.LastUpdatedAt,
		tenant.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tenant "+tenant.TenantID, err)
	}

	membershipQuery := `
		INSERT INTO memberships (tenant_id, user_id, role, status, display_name, email, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		owner.TenantID,
		owner.UserID,
		owner.Role,
		owner.Status,
		owner.DisplayName,
		owner.Email,
		owner.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert owner membership for tenant "+tenant.TenantID, err)
	}

	// First provisioned tenant becomes the user's default.
	_, err = tx.Exec(ctx,
		`UPDATE users SET default_tenant_id = $1, last_updated_at = $2, last_updated_by = $3
		 WHERE user_id = $4 AND default_tenant_id IS NULL;`,
		tenant.TenantID, tenant.CreatedAt, tenant.CreatedBy, tenant.OwnerUserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link default tenant for user "+tenant.OwnerUserID, err)
	}

	return r.Commit(ctx, tx)
}

// ActivateTenant persists the license and default taxonomy and flips the tenant
// to ACTIVE in a single transaction. Safe to retry: a license or taxonomy left
// behind by a previous partial attempt is kept as-is.
func (r *PgxTenantRepository) ActivateTenant(ctx context.Context, tenantID string, license domain.License, categories []domain.Category, subcategories []domain.Subcategory, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	licenseQuery := `
		INSERT INTO licenses (license_id, tenant_id, plan, status, start_date, end_date, max_users,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id) DO NOTHING;
	`
	_, err = tx.Exec(ctx, licenseQuery,
		license.LicenseID,
		license.TenantID,
		license.Plan,
		license.Status,
		license.StartDate,
		license.EndDate,
		license.MaxUsers,
		license.CreatedAt,
		license.CreatedBy,
		license.LastUpdatedAt,
		license.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert license for tenant "+tenantID, err)
	}

	// A retry regenerates taxonomy IDs, so presence of any category means a
	// previous attempt already seeded the taxonomy and it must not be doubled.
	var existingCategories int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE tenant_id = $1;`, tenantID).Scan(&existingCategories); err != nil {
		return apperrors.NewAppError(500, "failed to count categories for tenant "+tenantID, err)
	}
	if existingCategories == 0 {
		batch := &pgx.Batch{}
		categoryQuery := `
			INSERT INTO categories (category_id, tenant_id, name, color, display_order,
			                        created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		for _, c := range categories {
			batch.Queue(categoryQuery,
				c.CategoryID, c.TenantID, c.Name, c.Color, c.DisplayOrder,
				c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
			)
		}
		subcategoryQuery := `
			INSERT INTO subcategories (subcategory_id, category_id, tenant_id, name, display_order,
			                           created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		for _, s := range subcategories {
			batch.Queue(subcategoryQuery,
				s.SubcategoryID, s.CategoryID, s.TenantID, s.Name, s.DisplayOrder,
				s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to seed taxonomy for tenant "+tenantID, err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE tenants SET status = 'ACTIVE', last_updated_at = $1, last_updated_by = $2
		 WHERE tenant_id = $3;`,
		updatedAt, updatedBy, tenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to activate tenant "+tenantID, err)
	}

	return r.Commit(ctx, tx)
}

// FindMembership retrieves a user's membership in a tenant.
func (r *PgxTenantRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	rows, err := r.Pool.Query(ctx, FULL_MEMBERSHIP_SELECT_QUERY+` WHERE tenant_id = $1 AND user_id = $2;`, tenantID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query membership", err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan membership", err)
	}
	if len(memberships) == 0 {
		return nil, apperrors.NewNotFoundError("membership not found")
	}
	return &memberships[0], nil
}

// ListMemberships retrieves all memberships of a tenant.
func (r *PgxTenantRepository) ListMemberships(ctx context.Context, tenantID string) ([]domain.Membership, error) {
	rows, err := r.Pool.Query(ctx, FULL_MEMBERSHIP_SELECT_QUERY+` WHERE tenant_id = $1 ORDER BY joined_at;`, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships for tenant "+tenantID, err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan memberships", err)
	}
	return memberships, nil
}

// CountSeats counts memberships currently holding a seat.
func (r *PgxTenantRepository) CountSeats(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM memberships WHERE tenant_id = $1 AND status IN ('ACTIVE', 'INVITED');`,
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count seats for tenant "+tenantID, err)
	}
	return count, nil
}

// SaveMembership persists a membership. Re-inviting a previously revoked user
// reuses the existing row.
func (r *PgxTenantRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (tenant_id, user_id, role, status, display_name, email, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, user_id) DO UPDATE SET
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			joined_at = EXCLUDED.joined_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.TenantID,
		membership.UserID,
		membership.Role,
		membership.Status,
		membership.DisplayName,
		membership.Email,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save membership", err)
	}
	return nil
}
