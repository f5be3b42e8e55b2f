package services

import (
	"log/slog"

	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, quotes portssvc.RateQuoteProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit emitter first: nearly every service emits through it.
	audit := NewAuditService(repos.AuditRepo, cfg.AuditBufferSize, logger)
	container.Audit = audit

	// Tenant service next since other services depend on its authorizer.
	container.Tenant = NewTenantService(
		repos.TenantRepo,
		repos.LicenseRepo,
		repos.CategoryRepo,
		repos.UserRepo,
		audit,
	)
	authorizer := container.Tenant.(portssvc.TenantAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Entity = NewEntityService(repos.EntityRepo, authorizer, audit)
	container.FxRate = NewFxRateService(repos.FxRateRepo, quotes, authorizer, audit)
	container.Category = NewCategoryService(repos.CategoryRepo, authorizer, audit)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.PostingRepo, repos.CategoryRepo, authorizer, audit)
	container.Posting = NewPostingService(
		repos.PostingRepo,
		repos.TenantRepo,
		repos.CategoryRepo,
		container.Entity,
		container.FxRate,
		authorizer,
		audit,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TenantSvcFacade  = (*TenantService)(nil)
	_ portssvc.PostingSvcFacade = (*PostingService)(nil)
)
