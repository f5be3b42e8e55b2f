package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
)

// roleRank orders membership roles for authorization checks.
var roleRank = map[domain.MembershipRole]int{
	domain.RoleMember: 1,
	domain.RoleAdmin:  2,
	domain.RoleOwner:  3,
}

// TenantService handles business logic related to tenants, provisioning and
// memberships.
type TenantService struct {
	BaseService
	tenantRepo   portsrepo.TenantRepositoryWithTx
	licenseRepo  portsrepo.LicenseRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	audit        portssvc.AuditEmitter
}

// NewTenantService creates a new TenantService.
func NewTenantService(tr portsrepo.TenantRepositoryWithTx, lr portsrepo.LicenseRepositoryFacade, cr portsrepo.CategoryRepositoryFacade, ur portsrepo.UserRepositoryFacade, audit portssvc.AuditEmitter) portssvc.TenantSvcFacade {
	return &TenantService{
		tenantRepo:   tr,
		licenseRepo:  lr,
		categoryRepo: cr,
		userRepo:     ur,
		audit:        audit,
	}
}

var _ portssvc.TenantSvcFacade = (*TenantService)(nil)

// Provision bootstraps a new tenant for the owner in two phases. Phase one
// writes the tenant (PENDING), the owner membership and the user's default
// tenant link atomically. Phase two writes the license and default taxonomy
// and flips the tenant to ACTIVE, also atomically. A failure between the two
// phases leaves the tenant resumable and is reported as PartialProvisionError.
func (s *TenantService) Provision(ctx context.Context, req dto.ProvisionTenantRequest, ownerUserID string) (*domain.Tenant, error) {
	logger := s.GetLogger(ctx)

	plan := domain.PlanID(req.Plan)
	if !plan.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan %q", req.Plan))
	}

	owner, err := s.userRepo.FindUserByID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner user %s not found", apperrors.ErrValidation, ownerUserID)
		}
		s.LogError(ctx, err, "Failed to load owner user during provisioning", slog.String("user_id", ownerUserID))
		return nil, fmt.Errorf("failed to load owner user: %w", err)
	}

	now := time.Now()
	tenant := domain.Tenant{
		TenantID:         uuid.NewString(),
		TenantType:       domain.TenantType(req.TenantType),
		Name:             req.Name,
		BaseCurrencyCode: req.BaseCurrencyCode,
		OwnerUserID:      ownerUserID,
		Plan:             plan,
		Status:           domain.TenantPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}

	ownerMembership := domain.Membership{
		TenantID:    tenant.TenantID,
		UserID:      ownerUserID,
		Role:        domain.RoleOwner,
		Status:      domain.MembershipActive,
		DisplayName: owner.Name,
		Email:       owner.Email,
		JoinedAt:    now,
	}

	if err := s.tenantRepo.SaveTenantWithOwner(ctx, tenant, ownerMembership); err != nil {
		s.LogError(ctx, err, "Failed to save tenant with owner membership", slog.String("tenant_name", req.Name))
		return nil, fmt.Errorf("failed to provision tenant: %w", err)
	}

	if err := s.activate(ctx, &tenant, ownerUserID); err != nil {
		logger.Error("Tenant provisioning stopped after phase one",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("error", err.Error()))
		return nil, &apperrors.PartialProvisionError{TenantID: tenant.TenantID, Err: err}
	}

	s.audit.LogEvent(tenant.TenantID, "tenant", tenant.TenantID, domain.AuditCreate, nil, tenant, ownerUserID)

	logger.Info("Tenant provisioned successfully",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("plan", string(plan)),
		slog.String("owner_user_id", ownerUserID))
	return &tenant, nil
}

// CompleteProvisioning resumes a tenant left in PENDING by a partial
// provision. Only the tenant owner may resume. Calling it on an already
// active tenant is a no-op that returns the tenant.
func (s *TenantService) CompleteProvisioning(ctx context.Context, tenantID string, actorUserID string) (*domain.Tenant, error) {
	logger := s.GetLogger(ctx)

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.OwnerUserID != actorUserID {
		logger.Warn("Non-owner attempted to resume provisioning",
			slog.String("tenant_id", tenantID),
			slog.String("actor_user_id", actorUserID))
		return nil, apperrors.ErrForbidden
	}

	if tenant.Status == domain.TenantActive {
		return tenant, nil
	}
	if tenant.Status != domain.TenantPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("tenant %s is %s and cannot resume provisioning", tenantID, tenant.Status))
	}

	if err := s.activate(ctx, tenant, actorUserID); err != nil {
		logger.Error("Resumed provisioning failed again",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, &apperrors.PartialProvisionError{TenantID: tenantID, Err: err}
	}

	s.audit.LogEvent(tenantID, "tenant", tenantID, domain.AuditUpdate, nil, tenant, actorUserID)

	logger.Info("Tenant provisioning resumed to completion", slog.String("tenant_id", tenantID))
	return tenant, nil
}

// activate runs phase two of provisioning: license, default taxonomy and the
// PENDING -> ACTIVE flip, in one transaction inside the repository. The
// repository skips records that already exist so this is safe to retry.
func (s *TenantService) activate(ctx context.Context, tenant *domain.Tenant, actorUserID string) error {
	now := time.Now()

	license := domain.License{
		LicenseID: uuid.NewString(),
		TenantID:  tenant.TenantID,
		Plan:      tenant.Plan,
		Status:    domain.LicenseActive,
		StartDate: now,
		EndDate:   tenant.Plan.Term(now),
		MaxUsers:  tenant.Plan.SeatLimit(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	categories := make([]domain.Category, 0, len(defaultTaxonomy))
	subcategories := make([]domain.Subcategory, 0)
	for i, tmpl := range defaultTaxonomy {
		category := domain.Category{
			CategoryID:   uuid.NewString(),
			TenantID:     tenant.TenantID,
			Name:         tmpl.Name,
			Color:        tmpl.Color,
			DisplayOrder: i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
		categories = append(categories, category)
		for j, subName := range tmpl.Subcategories {
			subcategories = append(subcategories, domain.Subcategory{
				SubcategoryID: uuid.NewString(),
				CategoryID:    category.CategoryID,
				TenantID:      tenant.TenantID,
				Name:          subName,
				DisplayOrder:  j,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actorUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: actorUserID,
				},
			})
		}
	}

	if err := s.tenantRepo.ActivateTenant(ctx, tenant.TenantID, license, categories, subcategories, actorUserID, now); err != nil {
		return fmt.Errorf("failed to activate tenant %s: %w", tenant.TenantID, err)
	}

	tenant.Status = domain.TenantActive
	tenant.LastUpdatedAt = now
	tenant.LastUpdatedBy = actorUserID
	return nil
}

// InviteUser invites a user into a tenant. The license seat limit is enforced
// here, at invite time; shrinking a plan never revokes existing members.
func (s *TenantService) InviteUser(ctx context.Context, tenantID string, req dto.InviteUserRequest, invitingUserID string) (*domain.Membership, error) {
	logger := s.GetLogger(ctx)

	if err := s.AuthorizeUserAction(ctx, invitingUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	role := domain.MembershipRole(req.Role)
	if role == domain.RoleOwner {
		return nil, apperrors.NewValidationError("the owner role cannot be granted through invitations")
	}

	existing, err := s.tenantRepo.FindMembership(ctx, tenantID, req.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing membership", slog.String("tenant_id", tenantID), slog.String("target_user_id", req.UserID))
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil && existing.Status != domain.MembershipRevoked {
		return nil, fmt.Errorf("%w: user %s already belongs to tenant %s", apperrors.ErrDuplicate, req.UserID, tenantID)
	}

	license, err := s.licenseRepo.FindLicenseByTenantID(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tenant license for seat check", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load tenant license: %w", err)
	}

	seats, err := s.tenantRepo.CountSeats(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count tenant seats", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to count tenant seats: %w", err)
	}
	if seats >= license.MaxUsers {
		logger.Warn("Invite rejected: seat limit reached",
			slog.String("tenant_id", tenantID),
			slog.Int("seats", seats),
			slog.Int("max_users", license.MaxUsers))
		return nil, apperrors.NewConflictError(fmt.Sprintf("tenant %s has reached its seat limit of %d", tenantID, license.MaxUsers))
	}

	membership := domain.Membership{
		TenantID:    tenantID,
		UserID:      req.UserID,
		Role:        role,
		Status:      domain.MembershipInvited,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		JoinedAt:    time.Now(),
	}

	if err := s.tenantRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to save membership", slog.String("tenant_id", tenantID), slog.String("target_user_id", req.UserID))
		return nil, fmt.Errorf("failed to invite user %s to tenant %s: %w", req.UserID, tenantID, err)
	}

	s.audit.LogEvent(tenantID, "membership", req.UserID, domain.AuditCreate, nil, membership, invitingUserID)

	logger.Info("User invited to tenant",
		slog.String("tenant_id", tenantID),
		slog.String("target_user_id", req.UserID),
		slog.String("role", string(role)),
		slog.String("invited_by", invitingUserID))
	return &membership, nil
}

// FindTenantByID retrieves a tenant after confirming the requester belongs to it.
func (s *TenantService) FindTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// ListUserTenants retrieves the list of tenants a given user belongs to.
func (s *TenantService) ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenantsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list tenants for user %s: %w", userID, err)
	}
	if tenants == nil {
		return []domain.Tenant{}, nil
	}
	return tenants, nil
}

// ListTenantMembers retrieves the memberships of a tenant.
func (s *TenantService) ListTenantMembers(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Membership, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	memberships, err := s.tenantRepo.ListMemberships(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenant memberships", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list memberships of tenant %s: %w", tenantID, err)
	}
	if memberships == nil {
		return []domain.Membership{}, nil
	}
	return memberships, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a tenant.
// Returns apperrors.ErrNotFound if the user holds no active membership, which
// also avoids revealing whether the tenant exists.
// Returns apperrors.ErrForbidden if the member lacks the required role.
func (s *TenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.MembershipRole) error {
	logger := s.GetLogger(ctx)

	membership, err := s.tenantRepo.FindMembership(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user is not a member of the tenant",
				slog.String("user_id", userID),
				slog.String("tenant_id", tenantID))
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to check tenant membership", slog.String("user_id", userID), slog.String("tenant_id", tenantID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Status == domain.MembershipRevoked {
		return apperrors.ErrNotFound
	}

	if roleRank[membership.Role] >= roleRank[requiredRole] {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role",
		slog.String("user_id", userID),
		slog.String("tenant_id", tenantID),
		slog.String("user_role", string(membership.Role)),
		slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
