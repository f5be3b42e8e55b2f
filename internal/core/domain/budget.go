package domain

import "github.com/shopspring/decimal"

// Budget is a monthly allocation for one category in the tenant base currency.
// (TenantID, Year, Month, CategoryID) is unique per tenant.
type Budget struct {
	BudgetID   string          `json:"budgetID"` // Primary Key (e.g., UUID)
	TenantID   string          `json:"tenantID"` // FK -> tenants.tenant_id
	Year       int             `json:"year"`
	Month      int             `json:"month"` // 1-12
	CategoryID string          `json:"categoryID"`
	Allocated  decimal.Decimal `json:"allocated"`
	RolloverIn decimal.Decimal `json:"rolloverIn"` // Unspent amount carried from the prior period
	AuditFields
}

// BudgetSummary is the read-side aggregation of a budget against postings.
// Percentage is the raw spent/allocated ratio; display capping is a caller
// concern so alerting thresholds keep the true value.
type BudgetSummary struct {
	Allocated  decimal.Decimal `json:"allocated"`
	RolloverIn decimal.Decimal `json:"rolloverIn"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}
