package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	TenantRepo   TenantRepositoryWithTx
	LicenseRepo  LicenseRepositoryFacade
	CategoryRepo CategoryRepositoryFacade
	EntityRepo   EntityRepositoryFacade
	PostingRepo  PostingRepositoryWithTx
	BudgetRepo   BudgetRepositoryFacade
	FxRateRepo   FxRateRepositoryFacade
	AuditRepo    AuditWriter
}
