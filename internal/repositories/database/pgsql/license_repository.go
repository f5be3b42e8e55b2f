package pgsql

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_LICENSE_SELECT_QUERY = `
	SELECT license_id, tenant_id, plan, status, start_date, end_date, max_users,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM licenses
`

type PgxLicenseRepository struct {
	BaseRepository
}

// newPgxLicenseRepository creates a new repository for license data.
func newPgxLicenseRepository(pool *pgxpool.Pool) portsrepo.LicenseRepositoryFacade {
	return &PgxLicenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LicenseRepositoryFacade = (*PgxLicenseRepository)(nil)

// FindLicenseByTenantID retrieves the license of a tenant.
func (r *PgxLicenseRepository) FindLicenseByTenantID(ctx context.Context, tenantID string) (*domain.License, error) {
	rows, err := r.Pool.Query(ctx, FULL_LICENSE_SELECT_QUERY+` WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query license for tenant "+tenantID, err)
	}
	defer rows.Close()

	licenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.License])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan license", err)
	}
	if len(licenses) == 0 {
		return nil, apperrors.NewNotFoundError("license for tenant " + tenantID + " not found")
	}
	return &licenses[0], nil
}

// SaveLicense persists a new license.
func (r *PgxLicenseRepository) SaveLicense(ctx context.Context, license domain.License) error {
	query := `
		INSERT INTO licenses (license_id, tenant_id, plan, status, start_date, end_date, max_users,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
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
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "tenant already holds a license", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save license "+license.LicenseID, err)
	}
	return nil
}
