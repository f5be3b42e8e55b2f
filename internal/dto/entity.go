package dto

import "github.com/finanzap/finanzap_backend/internal/core/domain"

// ResolveEntityRequest defines the payload for resolving a counterparty.
type ResolveEntityRequest struct {
	Name       string `json:"name" binding:"required"`
	TaxID      string `json:"taxID"`
	EntityType string `json:"entityType" binding:"omitempty,oneof=COMPANY PERSON GOVERNMENT OTHER"`
}

// EntityResponse is the API representation of a counterparty.
type EntityResponse struct {
	EntityID   string `json:"entityID"`
	TenantID   string `json:"tenantID"`
	TaxID      string `json:"taxID,omitempty"`
	Name       string `json:"name"`
	EntityType string `json:"entityType"`
}

// ListEntitiesResponse wraps a tenant's counterparties.
type ListEntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}

// ToEntityResponse converts a domain Entity to its API representation.
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:   e.EntityID,
		TenantID:   e.TenantID,
		TaxID:      e.TaxID,
		Name:       e.Name,
		EntityType: string(e.EntityType),
	}
}

// ToEntityResponses converts a slice of domain Entities.
func ToEntityResponses(entities []domain.Entity) []EntityResponse {
	out := make([]EntityResponse, len(entities))
	for i := range entities {
		out[i] = ToEntityResponse(&entities[i])
	}
	return out
}
