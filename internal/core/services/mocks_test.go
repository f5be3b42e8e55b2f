package services_test

import (
	"context"
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service suites in this package.

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SaveTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.Membership) error {
	args := m.Called(ctx, tenant, owner)
	return args.Error(0)
}

func (m *MockTenantRepository) ActivateTenant(ctx context.Context, tenantID string, license domain.License, categories []domain.Category, subcategories []domain.Subcategory, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, license, categories, subcategories, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTenantRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockTenantRepository) ListMemberships(ctx context.Context, tenantID string) ([]domain.Membership, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockTenantRepository) CountSeats(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockTenantRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockTenantRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTenantRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTenantRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.TenantRepositoryWithTx = (*MockTenantRepository)(nil)

// --- Mock LicenseRepository ---
type MockLicenseRepository struct {
	mock.Mock
}

func (m *MockLicenseRepository) FindLicenseByTenantID(ctx context.Context, tenantID string) (*domain.License, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.License), args.Error(1)
}

func (m *MockLicenseRepository) SaveLicense(ctx context.Context, license domain.License) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

var _ portsrepo.LicenseRepositoryFacade = (*MockLicenseRepository)(nil)

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListSubcategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Subcategory, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subcategory), args.Error(1)
}

func (m *MockCategoryRepository) CountSubcategoriesByCategory(ctx context.Context, tenantID, categoryID string) (int, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, tenantID, categoryID string) error {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Error(0)
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, tenantID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByTaxID(ctx context.Context, tenantID, taxID string) (*domain.Entity, error) {
	args := m.Called(ctx, tenantID, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByName(ctx context.Context, tenantID, name string) (*domain.Entity, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListEntitiesByTenant(ctx context.Context, tenantID string) ([]domain.Entity, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

var _ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)

// --- Mock PostingRepository ---
type MockPostingRepository struct {
	mock.Mock
}

func (m *MockPostingRepository) FindPostingByID(ctx context.Context, tenantID, postingID string) (*domain.Posting, error) {
	args := m.Called(ctx, tenantID, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByTenant(ctx context.Context, tenantID string, filter portsrepo.ListPostingsFilter, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var postings []domain.Posting
	if args.Get(0) != nil {
		postings = args.Get(0).([]domain.Posting)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return postings, token, args.Error(2)
}

func (m *MockPostingRepository) SumBaseAmounts(ctx context.Context, tenantID, categoryID string, kind domain.PostingKind, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, categoryID, kind, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPostingRepository) SavePostings(ctx context.Context, postings []domain.Posting) error {
	args := m.Called(ctx, postings)
	return args.Error(0)
}

func (m *MockPostingRepository) MarkPostingDeleted(ctx context.Context, tenantID, postingID, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, tenantID, postingID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockPostingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPostingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPostingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.PostingRepositoryWithTx = (*MockPostingRepository)(nil)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudget(ctx context.Context, tenantID, categoryID string, year, month int) (*domain.Budget, error) {
	args := m.Called(ctx, tenantID, categoryID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByMonth(ctx context.Context, tenantID string, year, month int) ([]domain.Budget, error) {
	args := m.Called(ctx, tenantID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

// --- Mock FxRateRepository ---
type MockFxRateRepository struct {
	mock.Mock
}

func (m *MockFxRateRepository) FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.FxRate, error) {
	args := m.Called(ctx, tenantID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

func (m *MockFxRateRepository) ListRatesByTenant(ctx context.Context, tenantID string) ([]domain.FxRate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FxRate), args.Error(1)
}

func (m *MockFxRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

var _ portsrepo.FxRateRepositoryFacade = (*MockFxRateRepository)(nil)

// --- Mock AuditWriter ---
type MockAuditWriter struct {
	mock.Mock
}

func (m *MockAuditWriter) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var _ portsrepo.AuditWriter = (*MockAuditWriter)(nil)

// --- Mock AuditEmitter ---
type MockAuditEmitter struct {
	mock.Mock
}

func (m *MockAuditEmitter) LogEvent(tenantID, entityType, entityID string, action domain.AuditAction, before, after any, actorID string) {
	m.Called(tenantID, entityType, entityID, action, before, after, actorID)
}

func (m *MockAuditEmitter) Close() {
	m.Called()
}

// --- Mock TenantAuthorizer ---
type MockTenantAuthorizer struct {
	mock.Mock
}

func (m *MockTenantAuthorizer) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.MembershipRole) error {
	args := m.Called(ctx, userID, tenantID, requiredRole)
	return args.Error(0)
}

// --- Mock EntityResolver ---
type MockEntityResolver struct {
	mock.Mock
}

func (m *MockEntityResolver) Resolve(ctx context.Context, tenantID, name, taxID string, entityType domain.EntityType, actorUserID string) (*domain.Entity, error) {
	args := m.Called(ctx, tenantID, name, taxID, entityType, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

// --- Mock CurrencyNormalizer ---
type MockCurrencyNormalizer struct {
	mock.Mock
}

func (m *MockCurrencyNormalizer) Normalize(ctx context.Context, tenantID string, amount decimal.Decimal, currencyCode, baseCurrencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, amount, currencyCode, baseCurrencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RateQuoteProvider ---
type MockRateQuoteProvider struct {
	mock.Mock
}

func (m *MockRateQuoteProvider) QuoteSellRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
