package dto

import (
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// ProvisionTenantRequest defines the payload for provisioning a new tenant.
type ProvisionTenantRequest struct {
	Name             string `json:"name" binding:"required"`
	TenantType       string `json:"tenantType" binding:"required,oneof=PERSONAL FAMILY COMPANY"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3"`
	Plan             string `json:"plan" binding:"required,oneof=demo personal familiar empresa"`
}

// InviteUserRequest defines the payload for inviting a user into a tenant.
// The owner role cannot be granted through invitations.
type InviteUserRequest struct {
	UserID      string `json:"userID" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	TenantID         string    `json:"tenantID"`
	TenantType       string    `json:"tenantType"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	OwnerUserID      string    `json:"ownerUserID"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MembershipResponse is the API representation of a membership.
type MembershipResponse struct {
	TenantID    string    `json:"tenantID"`
	UserID      string    `json:"userID"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ListTenantsResponse wraps the tenants a user belongs to.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// ToTenantResponse converts a domain Tenant to its API representation.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:         t.TenantID,
		TenantType:       string(t.TenantType),
		Name:             t.Name,
		BaseCurrencyCode: t.BaseCurrencyCode,
		OwnerUserID:      t.OwnerUserID,
		Plan:             string(t.Plan),
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
	}
}

// ToMembershipResponse converts a domain Membership to its API representation.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		TenantID:    m.TenantID,
		UserID:      m.UserID,
		Role:        string(m.Role),
		Status:      string(m.Status),
		DisplayName: m.DisplayName,
		Email:       m.Email,
		JoinedAt:    m.JoinedAt,
	}
}
