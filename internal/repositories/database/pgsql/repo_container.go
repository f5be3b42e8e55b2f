package pgsql

import (
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	tenantRepo := newPgxTenantRepository(dbPool)
	licenseRepo := newPgxLicenseRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	entityRepo := newPgxEntityRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	fxRateRepo := newPgxFxRateRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		TenantRepo:   tenantRepo,
		LicenseRepo:  licenseRepo,
		CategoryRepo: categoryRepo,
		EntityRepo:   entityRepo,
		PostingRepo:  postingRepo,
		BudgetRepo:   budgetRepo,
		FxRateRepo:   fxRateRepo,
		AuditRepo:    auditRepo,
	}
}
