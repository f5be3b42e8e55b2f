package domain

// EntityType classifies a counterparty.
type EntityType string

const (
	EntityCompany    EntityType = "COMPANY"
	EntityPerson     EntityType = "PERSON"
	EntityGovernment EntityType = "GOVERNMENT"
	EntityOther      EntityType = "OTHER"
)

// Entity is a counterparty (merchant, payer) associated with postings.
// Within a tenant there is at most one entity per non-empty tax ID; the name
// is a fallback resolution key, not a uniqueness constraint.
type Entity struct {
	EntityID   string     `json:"entityID"` // Primary Key (e.g., UUID)
	TenantID   string     `json:"tenantID"` // FK -> tenants.tenant_id
	TaxID      string     `json:"taxID"`    // 11-digit tax identifier; empty when unknown
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	AuditFields
}
