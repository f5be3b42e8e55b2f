package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/core/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockPostingRepo  *MockPostingRepository
	mockTenantRepo   *MockTenantRepository
	mockCategoryRepo *MockCategoryRepository
	mockResolver     *MockEntityResolver
	mockNormalizer   *MockCurrencyNormalizer
	mockAuthorizer   *MockTenantAuthorizer
	mockAudit        *MockAuditEmitter
	service          portssvc.PostingSvcFacade

	tenantID   string
	userID     string
	categoryID string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockResolver = new(MockEntityResolver)
	suite.mockNormalizer = new(MockCurrencyNormalizer)
	suite.mockAuthorizer = new(MockTenantAuthorizer)
	suite.mockAudit = new(MockAuditEmitter)
	suite.service = services.NewPostingService(
		suite.mockPostingRepo,
		suite.mockTenantRepo,
		suite.mockCategoryRepo,
		suite.mockResolver,
		suite.mockNormalizer,
		suite.mockAuthorizer,
		suite.mockAudit,
	)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.categoryID = uuid.NewString()
}

// expectHappyPathStubs wires the lookups every successful Record call makes.
func (suite *PostingServiceTestSuite) expectHappyPathStubs() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.tenantID, domain.RoleMember).Return(nil)
	suite.mockTenantRepo.On("FindTenantByID", mock.Anything, suite.tenantID).
		Return(&domain.Tenant{TenantID: suite.tenantID, BaseCurrencyCode: "ARS", Status: domain.TenantActive}, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.tenantID, suite.categoryID).
		Return(&domain.Category{CategoryID: suite.categoryID, TenantID: suite.tenantID}, nil)
}

// --- Record ---

func (suite *PostingServiceTestSuite) TestRecord_SinglePosting() {
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         date,
		Amount:       decimal.NewFromInt(5000),
		CurrencyCode: "ARS",
		CategoryID:   suite.categoryID,
		Notes:        "Supermercado",
	}

	suite.expectHappyPathStubs()
	suite.mockNormalizer.On("Normalize", ctx, suite.tenantID, req.Amount, "ARS", "ARS").
		Return(decimal.NewFromInt(5000), nil).Once()
	suite.mockPostingRepo.On("SavePostings", ctx, mock.MatchedBy(func(postings []domain.Posting) bool {
		return len(postings) == 1 &&
			postings[0].Installment == nil &&
			postings[0].Notes == "Supermercado" &&
			postings[0].Status == domain.PostingPosted
	})).Return(nil).Once()
	suite.mockAudit.On("LogEvent", suite.tenantID, "posting", mock.AnythingOfType("string"),
		domain.AuditCreate, nil, mock.Anything, suite.userID).Return().Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(postings, 1)
	suite.True(postings[0].Amount.Equal(decimal.NewFromInt(5000)))
	suite.Equal(date, postings[0].Date)
	suite.mockPostingRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRecord_ThreeInstallments() {
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         date,
		Amount:       decimal.NewFromInt(9000),
		CurrencyCode: "ARS",
		CategoryID:   suite.categoryID,
		Notes:        "Notebook",
		Installments: 3,
		CardKind:     "credit",
	}

	suite.expectHappyPathStubs()
	suite.mockNormalizer.On("Normalize", ctx, suite.tenantID, req.Amount, "ARS", "ARS").
		Return(decimal.NewFromInt(9000), nil).Once()

	var saved []domain.Posting
	suite.mockPostingRepo.On("SavePostings", ctx, mock.AnythingOfType("[]domain.Posting")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.Posting)
		}).Return(nil).Once()
	// One audit event per posting.
	suite.mockAudit.On("LogEvent", suite.tenantID, "posting", mock.AnythingOfType("string"),
		domain.AuditCreate, nil, mock.Anything, suite.userID).Return().Times(3)

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(postings, 3)
	suite.Require().Len(saved, 3)

	expectedDates := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for i, posting := range postings {
		suite.True(posting.Amount.Equal(decimal.NewFromInt(3000)), "installment %d amount = %s", i+1, posting.Amount)
		suite.True(posting.BaseAmount.Equal(decimal.NewFromInt(3000)))
		suite.Equal(expectedDates[i], posting.Date)
		suite.Require().NotNil(posting.Installment)
		suite.Equal(3, posting.Installment.Count)
		suite.Equal(i+1, posting.Installment.Index)
		suite.Equal("credit", posting.Installment.CardKind)
	}
	suite.Equal("Notebook (Cuota 1/3)", postings[0].Notes)
	suite.Equal("Notebook (Cuota 2/3)", postings[1].Notes)
	suite.Equal("Notebook (Cuota 3/3)", postings[2].Notes)

	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRecord_NormalizationFailureAborts() {
	ctx := context.Background()
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         time.Now(),
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "EUR",
		CategoryID:   suite.categoryID,
	}

	suite.expectHappyPathStubs()
	suite.mockNormalizer.On("Normalize", ctx, suite.tenantID, req.Amount, "EUR", "ARS").
		Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(postings)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SavePostings")
	suite.mockAudit.AssertNotCalled(suite.T(), "LogEvent")
}

func (suite *PostingServiceTestSuite) TestRecord_ResolvesCounterparty() {
	ctx := context.Background()
	entityID := uuid.NewString()
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         time.Now(),
		Amount:       decimal.NewFromInt(2500),
		CurrencyCode: "ARS",
		CategoryID:   suite.categoryID,
		EntityName:   "Supermercados Norte",
		EntityTaxID:  "30712345678",
	}

	suite.expectHappyPathStubs()
	suite.mockResolver.On("Resolve", ctx, suite.tenantID, "Supermercados Norte", "30712345678", domain.EntityOther, suite.userID).
		Return(&domain.Entity{EntityID: entityID}, nil).Once()
	suite.mockNormalizer.On("Normalize", ctx, suite.tenantID, req.Amount, "ARS", "ARS").
		Return(decimal.NewFromInt(2500), nil).Once()
	suite.mockPostingRepo.On("SavePostings", ctx, mock.MatchedBy(func(postings []domain.Posting) bool {
		return len(postings) == 1 && postings[0].EntityID != nil && *postings[0].EntityID == entityID
	})).Return(nil).Once()
	suite.mockAudit.On("LogEvent", suite.tenantID, "posting", mock.AnythingOfType("string"),
		domain.AuditCreate, nil, mock.Anything, suite.userID).Return().Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(postings, 1)
	suite.Require().NotNil(postings[0].EntityID)
	suite.Equal(entityID, *postings[0].EntityID)
	suite.mockResolver.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRecord_PendingTenantRejected() {
	ctx := context.Background()
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         time.Now(),
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "ARS",
		CategoryID:   suite.categoryID,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).
		Return(&domain.Tenant{TenantID: suite.tenantID, Status: domain.TenantPending}, nil).Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(postings)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestRecord_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         time.Now(),
		Amount:       decimal.NewFromInt(-10),
		CurrencyCode: "ARS",
		CategoryID:   suite.categoryID,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(postings)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestRecord_UnknownCategory() {
	ctx := context.Background()
	req := dto.RecordPostingRequest{
		Kind:         "EXPENSE",
		Date:         time.Now(),
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "ARS",
		CategoryID:   uuid.NewString(),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).
		Return(&domain.Tenant{TenantID: suite.tenantID, BaseCurrencyCode: "ARS", Status: domain.TenantActive}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.tenantID, req.CategoryID).
		Return(nil, apperrors.ErrNotFound).Once()

	postings, err := suite.service.Record(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(postings)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- SoftDeletePosting ---

func (suite *PostingServiceTestSuite) TestSoftDeletePosting_Success() {
	ctx := context.Background()
	postingID := uuid.NewString()
	posting := &domain.Posting{PostingID: postingID, TenantID: suite.tenantID}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockPostingRepo.On("FindPostingByID", ctx, suite.tenantID, postingID).Return(posting, nil).Once()
	suite.mockPostingRepo.On("MarkPostingDeleted", ctx, suite.tenantID, postingID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockAudit.On("LogEvent", suite.tenantID, "posting", postingID,
		domain.AuditDelete, posting, nil, suite.userID).Return().Once()

	err := suite.service.SoftDeletePosting(ctx, suite.tenantID, postingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPostingRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSoftDeletePosting_AlreadyDeleted() {
	ctx := context.Background()
	postingID := uuid.NewString()
	posting := &domain.Posting{PostingID: postingID, TenantID: suite.tenantID, Deleted: true}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockPostingRepo.On("FindPostingByID", ctx, suite.tenantID, postingID).Return(posting, nil).Once()

	err := suite.service.SoftDeletePosting(ctx, suite.tenantID, postingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "MarkPostingDeleted")
}

// --- ListPostings ---

func (suite *PostingServiceTestSuite) TestListPostings_MonthFilter() {
	ctx := context.Background()
	params := dto.ListPostingsParams{Year: 2024, Month: 1}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockPostingRepo.On("ListPostingsByTenant", ctx, suite.tenantID,
		mock.MatchedBy(func(f portsrepo.ListPostingsFilter) bool {
			return f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				f.To.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		}), 50, (*string)(nil)).
		Return([]domain.Posting{{PostingID: uuid.NewString()}}, nil, nil).Once()

	resp, err := suite.service.ListPostings(ctx, suite.tenantID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Postings, 1)
	suite.Nil(resp.NextToken)
}

// --- Run Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
