package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/core/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo   *MockTenantRepository
	mockLicenseRepo  *MockLicenseRepository
	mockCategoryRepo *MockCategoryRepository
	mockUserRepo     *MockUserRepository
	mockAudit        *MockAuditEmitter
	service          portssvc.TenantSvcFacade
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockLicenseRepo = new(MockLicenseRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditEmitter)
	suite.mockAudit.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	suite.service = services.NewTenantService(
		suite.mockTenantRepo,
		suite.mockLicenseRepo,
		suite.mockCategoryRepo,
		suite.mockUserRepo,
		suite.mockAudit,
	)
}

// --- Provision ---

func (suite *TenantServiceTestSuite) TestProvision_Success_FamiliarPlan() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	req := dto.ProvisionTenantRequest{
		Name:             "Familia García",
		TenantType:       "FAMILY",
		BaseCurrencyCode: "ARS",
		Plan:             "familiar",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerUserID).
		Return(&domain.User{UserID: ownerUserID, Name: "Ana García", Email: "ana@example.com"}, nil).Once()

	suite.mockTenantRepo.On("SaveTenantWithOwner", ctx,
		mock.MatchedBy(func(t domain.Tenant) bool {
			return t.Status == domain.TenantPending &&
				t.OwnerUserID == ownerUserID &&
				t.Plan == domain.PlanFamiliar
		}),
		mock.MatchedBy(func(m domain.Membership) bool {
			return m.Role == domain.RoleOwner && m.Status == domain.MembershipActive
		}),
	).Return(nil).Once()

	suite.mockTenantRepo.On("ActivateTenant", ctx, mock.AnythingOfType("string"),
		mock.MatchedBy(func(l domain.License) bool {
			yearOut := l.StartDate.AddDate(1, 0, 0)
			return l.Plan == domain.PlanFamiliar &&
				l.MaxUsers == 4 &&
				l.Status == domain.LicenseActive &&
				l.EndDate.Equal(yearOut)
		}),
		mock.AnythingOfType("[]domain.Category"),
		mock.AnythingOfType("[]domain.Subcategory"),
		ownerUserID,
		mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	tenant, err := suite.service.Provision(ctx, req, ownerUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tenant)
	suite.Equal(domain.TenantActive, tenant.Status)
	suite.Equal(domain.PlanFamiliar, tenant.Plan)
	suite.NotEmpty(tenant.TenantID)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestProvision_DemoLicenseRunsFifteenDays() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	req := dto.ProvisionTenantRequest{
		Name:             "Prueba",
		TenantType:       "PERSONAL",
		BaseCurrencyCode: "ARS",
		Plan:             "demo",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerUserID).
		Return(&domain.User{UserID: ownerUserID, Name: "Test", Email: "t@example.com"}, nil).Once()
	suite.mockTenantRepo.On("SaveTenantWithOwner", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockTenantRepo.On("ActivateTenant", ctx, mock.AnythingOfType("string"),
		mock.MatchedBy(func(l domain.License) bool {
			return l.MaxUsers == 1 && l.EndDate.Equal(l.StartDate.AddDate(0, 0, 15))
		}),
		mock.Anything, mock.Anything, ownerUserID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	tenant, err := suite.service.Provision(ctx, req, ownerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.TenantActive, tenant.Status)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestProvision_SeedsDefaultTaxonomy() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	req := dto.ProvisionTenantRequest{
		Name:             "Hogar",
		TenantType:       "PERSONAL",
		BaseCurrencyCode: "ARS",
		Plan:             "personal",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerUserID).
		Return(&domain.User{UserID: ownerUserID, Name: "Test", Email: "t@example.com"}, nil).Once()
	suite.mockTenantRepo.On("SaveTenantWithOwner", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockTenantRepo.On("ActivateTenant", ctx, mock.AnythingOfType("string"),
		mock.AnythingOfType("domain.License"),
		mock.MatchedBy(func(categories []domain.Category) bool {
			return len(categories) > 0 && categories[0].DisplayOrder == 0
		}),
		mock.MatchedBy(func(subcategories []domain.Subcategory) bool {
			return len(subcategories) > 0
		}),
		ownerUserID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	_, err := suite.service.Provision(ctx, req, ownerUserID)

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestProvision_PhaseTwoFailure_ReturnsPartialProvision() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	req := dto.ProvisionTenantRequest{
		Name:             "Empresa SRL",
		TenantType:       "COMPANY",
		BaseCurrencyCode: "ARS",
		Plan:             "empresa",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerUserID).
		Return(&domain.User{UserID: ownerUserID, Name: "Test", Email: "t@example.com"}, nil).Once()
	suite.mockTenantRepo.On("SaveTenantWithOwner", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTenantRepo.On("ActivateTenant", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	tenant, err := suite.service.Provision(ctx, req, ownerUserID)

	suite.Require().Error(err)
	suite.Nil(tenant)
	suite.ErrorIs(err, apperrors.ErrPartialProvision)

	var partial *apperrors.PartialProvisionError
	suite.Require().True(errors.As(err, &partial))
	suite.NotEmpty(partial.TenantID, "the error must carry the tenant ID so provisioning can resume")
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestProvision_UnknownPlan() {
	ctx := context.Background()
	req := dto.ProvisionTenantRequest{Name: "X", TenantType: "PERSONAL", BaseCurrencyCode: "ARS", Plan: "platinum"}

	tenant, err := suite.service.Provision(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(tenant)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "SaveTenantWithOwner")
}

// --- CompleteProvisioning ---

func (suite *TenantServiceTestSuite) TestCompleteProvisioning_ResumesPendingTenant() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	tenantID := uuid.NewString()
	pending := &domain.Tenant{
		TenantID:    tenantID,
		OwnerUserID: ownerUserID,
		Plan:        domain.PlanFamiliar,
		Status:      domain.TenantPending,
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).Return(pending, nil).Once()
	suite.mockTenantRepo.On("ActivateTenant", ctx, tenantID, mock.Anything, mock.Anything, mock.Anything, ownerUserID, mock.Anything).
		Return(nil).Once()

	tenant, err := suite.service.CompleteProvisioning(ctx, tenantID, ownerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.TenantActive, tenant.Status)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCompleteProvisioning_NonOwnerForbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	pending := &domain.Tenant{
		TenantID:    tenantID,
		OwnerUserID: uuid.NewString(),
		Status:      domain.TenantPending,
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).Return(pending, nil).Once()

	tenant, err := suite.service.CompleteProvisioning(ctx, tenantID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(tenant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "ActivateTenant")
}

func (suite *TenantServiceTestSuite) TestCompleteProvisioning_AlreadyActiveIsNoOp() {
	ctx := context.Background()
	ownerUserID := uuid.NewString()
	tenantID := uuid.NewString()
	active := &domain.Tenant{
		TenantID:    tenantID,
		OwnerUserID: ownerUserID,
		Status:      domain.TenantActive,
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).Return(active, nil).Once()

	tenant, err := suite.service.CompleteProvisioning(ctx, tenantID, ownerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.TenantActive, tenant.Status)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "ActivateTenant")
}

// --- InviteUser ---

func (suite *TenantServiceTestSuite) TestInviteUser_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	invitingUserID := uuid.NewString()
	targetUserID := uuid.NewString()
	req := dto.InviteUserRequest{
		UserID:      targetUserID,
		Email:       "nuevo@example.com",
		DisplayName: "Nuevo Miembro",
		Role:        "MEMBER",
	}

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, invitingUserID).
		Return(&domain.Membership{Role: domain.RoleAdmin, Status: domain.MembershipActive}, nil).Once()
	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, targetUserID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLicenseRepo.On("FindLicenseByTenantID", ctx, tenantID).
		Return(&domain.License{TenantID: tenantID, MaxUsers: 4}, nil).Once()
	suite.mockTenantRepo.On("CountSeats", ctx, tenantID).Return(2, nil).Once()
	suite.mockTenantRepo.On("SaveMembership", ctx,
		mock.MatchedBy(func(m domain.Membership) bool {
			return m.UserID == targetUserID &&
				m.Role == domain.RoleMember &&
				m.Status == domain.MembershipInvited
		}),
	).Return(nil).Once()

	membership, err := suite.service.InviteUser(ctx, tenantID, req, invitingUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(membership)
	suite.Equal(domain.MembershipInvited, membership.Status)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestInviteUser_SeatLimitReached() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	invitingUserID := uuid.NewString()
	req := dto.InviteUserRequest{
		UserID:      uuid.NewString(),
		Email:       "otro@example.com",
		DisplayName: "Otro",
		Role:        "MEMBER",
	}

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, invitingUserID).
		Return(&domain.Membership{Role: domain.RoleOwner, Status: domain.MembershipActive}, nil).Once()
	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, req.UserID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLicenseRepo.On("FindLicenseByTenantID", ctx, tenantID).
		Return(&domain.License{TenantID: tenantID, MaxUsers: 4}, nil).Once()
	suite.mockTenantRepo.On("CountSeats", ctx, tenantID).Return(4, nil).Once()

	membership, err := suite.service.InviteUser(ctx, tenantID, req, invitingUserID)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "SaveMembership")
}

func (suite *TenantServiceTestSuite) TestInviteUser_AlreadyMember() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	invitingUserID := uuid.NewString()
	req := dto.InviteUserRequest{
		UserID:      uuid.NewString(),
		Email:       "ya@example.com",
		DisplayName: "Ya Miembro",
		Role:        "MEMBER",
	}

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, invitingUserID).
		Return(&domain.Membership{Role: domain.RoleAdmin, Status: domain.MembershipActive}, nil).Once()
	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, req.UserID).
		Return(&domain.Membership{UserID: req.UserID, Status: domain.MembershipActive}, nil).Once()

	membership, err := suite.service.InviteUser(ctx, tenantID, req, invitingUserID)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- AuthorizeUserAction ---

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_OwnerSatisfiesAdmin() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, userID).
		Return(&domain.Membership{Role: domain.RoleOwner, Status: domain.MembershipActive}, nil).Once()

	authorizer := suite.service.(portssvc.TenantAuthorizerSvc)
	err := authorizer.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleAdmin)

	suite.NoError(err)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_MemberLacksAdmin() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, userID).
		Return(&domain.Membership{Role: domain.RoleMember, Status: domain.MembershipActive}, nil).Once()

	authorizer := suite.service.(portssvc.TenantAuthorizerSvc)
	err := authorizer.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleAdmin)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_NotAMember() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	authorizer := suite.service.(portssvc.TenantAuthorizerSvc)
	err := authorizer.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_RevokedMembership() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTenantRepo.On("FindMembership", ctx, tenantID, userID).
		Return(&domain.Membership{Role: domain.RoleAdmin, Status: domain.MembershipRevoked}, nil).Once()

	authorizer := suite.service.(portssvc.TenantAuthorizerSvc)
	err := authorizer.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

// License term sanity, outside the suite since it needs no mocks.
func TestPlanTerms(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	if got := domain.PlanDemo.Term(start); !got.Equal(time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("demo term = %v, want 15 days out", got)
	}
	if got := domain.PlanEmpresa.Term(start); !got.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("empresa term = %v, want one year out", got)
	}
	if got := domain.PlanFamiliar.SeatLimit(); got != 4 {
		t.Errorf("familiar seats = %d, want 4", got)
	}
	if got := domain.PlanEmpresa.SeatLimit(); got != 10 {
		t.Errorf("empresa seats = %d, want 10", got)
	}
	if got := domain.PlanPersonal.SeatLimit(); got != 1 {
		t.Errorf("personal seats = %d, want 1", got)
	}
}
