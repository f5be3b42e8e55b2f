package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// FindTenantByID retrieves a specific tenant, authorizing the requester.
	FindTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error)

	// ListUserTenants retrieves all tenants the user belongs to.
	ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error)

	// ListTenantMembers retrieves all memberships of a tenant.
	ListTenantMembers(ctx context.Context, tenantID string, requestingUserID string) ([]domain.Membership, error)
}

// TenantProvisionerSvc defines the tenant bootstrap operations.
type TenantProvisionerSvc interface {
	// Provision bootstraps a new tenant for the owner: tenant record, owner
	// membership and user link first (one atomic unit), then license, default
	// taxonomy and activation (a second atomic unit). A failure between the
	// two units returns a PartialProvisionError carrying the tenant ID.
	Provision(ctx context.Context, req dto.ProvisionTenantRequest, ownerUserID string) (*domain.Tenant, error)

	// CompleteProvisioning resumes a tenant stuck in PENDING after a partial
	// provision, idempotently filling whatever phase-two records are missing.
	CompleteProvisioning(ctx context.Context, tenantID string, actorUserID string) (*domain.Tenant, error)
}

// TenantMembershipSvc defines membership management operations.
type TenantMembershipSvc interface {
	// InviteUser invites a user into a tenant, enforcing the license seat
	// limit at invite time. The owner role can never be granted here.
	InviteUser(ctx context.Context, tenantID string, req dto.InviteUserRequest, invitingUserID string) (*domain.Membership, error)
}

// TenantAuthorizerSvc defines operations for tenant authorization
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a tenant.
	AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.MembershipRole) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantProvisionerSvc
	TenantMembershipSvc
	TenantAuthorizerSvc
}
