package dto

import (
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertBudgetRequest defines the payload for creating or replacing a
// monthly budget allocation.
type UpsertBudgetRequest struct {
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	CategoryID string          `json:"categoryID" binding:"required"`
	Allocated  decimal.Decimal `json:"allocated" binding:"required"`
	RolloverIn decimal.Decimal `json:"rolloverIn"`
}

// BudgetResponse is the API representation of a budget.
type BudgetResponse struct {
	BudgetID   string          `json:"budgetID"`
	TenantID   string          `json:"tenantID"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	CategoryID string          `json:"categoryID"`
	Allocated  decimal.Decimal `json:"allocated"`
	RolloverIn decimal.Decimal `json:"rolloverIn"`
}

// BudgetSummaryResponse is the read-side aggregation of a budget.
type BudgetSummaryResponse struct {
	TenantID   string          `json:"tenantID"`
	CategoryID string          `json:"categoryID"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Allocated  decimal.Decimal `json:"allocated"`
	RolloverIn decimal.Decimal `json:"rolloverIn"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ToBudgetResponse converts a domain Budget to its API representation.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		TenantID:   b.TenantID,
		Year:       b.Year,
		Month:      b.Month,
		CategoryID: b.CategoryID,
		Allocated:  b.Allocated,
		RolloverIn: b.RolloverIn,
	}
}
