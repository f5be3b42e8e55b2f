package repositories

import (
	"context"
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenantsByUserID retrieves all tenants a user holds a membership in.
	ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error)
}

// TenantProvisioningWriter defines the two multi-record provisioning writes.
// Each method is one atomic unit; the sequence between them is not atomic.
type TenantProvisioningWriter interface {
	// SaveTenantWithOwner persists the tenant (status PENDING), its owner
	// membership and the owner's default-tenant link in a single transaction.
	SaveTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.Membership) error

	// ActivateTenant persists the license and default taxonomy and flips the
	// tenant to ACTIVE in a single transaction. Records that already exist
	// (from a previous partial attempt) are left untouched.
	ActivateTenant(ctx context.Context, tenantID string, license domain.License, categories []domain.Category, subcategories []domain.Subcategory, updatedBy string, updatedAt time.Time) error
}

// MembershipManager defines operations for managing tenant memberships
type MembershipManager interface {
	// FindMembership retrieves a user's membership in a tenant.
	FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error)

	// ListMemberships retrieves all memberships of a tenant.
	ListMemberships(ctx context.Context, tenantID string) ([]domain.Membership, error)

	// CountSeats counts memberships holding a seat (ACTIVE or INVITED).
	CountSeats(ctx context.Context, tenantID string) (int, error)

	// SaveMembership persists a new membership.
	SaveMembership(ctx context.Context, membership domain.Membership) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantProvisioningWriter
	MembershipManager
}

// TenantRepositoryWithTx extends TenantRepositoryFacade with transaction capabilities
type TenantRepositoryWithTx interface {
	TenantRepositoryFacade
	TransactionManager
}
