package domain

import "time"

// TenantType classifies the billing/data scope a tenant represents.
type TenantType string

const (
	TenantPersonal TenantType = "PERSONAL"
	TenantFamily   TenantType = "FAMILY"
	TenantCompany  TenantType = "COMPANY"
)

// TenantStatus is the lifecycle state of a tenant.
// A tenant moves PENDING -> ACTIVE only once its license and owner membership
// exist; a tenant stuck at PENDING with an owner membership is a partially
// provisioned tenant awaiting CompleteProvisioning.
type TenantStatus string

const (
	TenantPending TenantStatus = "PENDING"
	TenantActive  TenantStatus = "ACTIVE"
	TenantExpired TenantStatus = "EXPIRED"
)

// Tenant represents an isolated billing/data scope containing its own
// categories, postings and budgets.
type Tenant struct {
	TenantID         string       `json:"tenantID"`   // Primary Key (e.g., UUID)
	TenantType       TenantType   `json:"tenantType"` // PERSONAL, FAMILY or COMPANY
	Name             string       `json:"name"`
	BaseCurrencyCode string       `json:"baseCurrencyCode"` // All postings normalize into this currency
	OwnerUserID      string       `json:"ownerUserID"`      // FK -> users.user_id
	Plan             PlanID       `json:"plan"`             // Plan chosen at signup; needed to resume provisioning
	Status           TenantStatus `json:"status"`
	AuditFields
}

// MembershipRole defines the possible roles a user can have within a tenant.
type MembershipRole string

const (
	RoleOwner  MembershipRole = "OWNER"
	RoleAdmin  MembershipRole = "ADMIN"
	RoleMember MembershipRole = "MEMBER"
)

// MembershipStatus is the state of a user's membership in a tenant.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "ACTIVE"
	MembershipInvited MembershipStatus = "INVITED"
	MembershipRevoked MembershipStatus = "REVOKED"
)

// Membership represents a user's role and status within a tenant.
// The composite key is (TenantID, UserID). Exactly one membership per tenant
// carries RoleOwner, created during provisioning and immutable afterwards.
type Membership struct {
	TenantID    string           `json:"tenantID"` // FK -> tenants.tenant_id
	UserID      string           `json:"userID"`   // FK -> users.user_id
	Role        MembershipRole   `json:"role"`
	Status      MembershipStatus `json:"status"`
	DisplayName string           `json:"displayName"` // Denormalized from the user record
	Email       string           `json:"email"`       // Denormalized from the user record
	JoinedAt    time.Time        `json:"joinedAt"`
}
