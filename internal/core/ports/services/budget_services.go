package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
)

// BudgetAggregatorSvc computes budget consumption from postings.
type BudgetAggregatorSvc interface {
	// ComputeSummary aggregates non-deleted expense postings of a category
	// against its monthly budget. Read-only; safe to recompute freely.
	ComputeSummary(ctx context.Context, tenantID, categoryID string, year, month int, requestingUserID string) (*dto.BudgetSummaryResponse, error)
}

// BudgetManagerSvc manages budget allocations.
type BudgetManagerSvc interface {
	// UpsertBudget creates or replaces the (tenant, year, month, category)
	// allocation.
	UpsertBudget(ctx context.Context, tenantID string, req dto.UpsertBudgetRequest, actorUserID string) (*domain.Budget, error)

	// ListBudgets retrieves all budgets of a tenant for a month.
	ListBudgets(ctx context.Context, tenantID string, year, month int, requestingUserID string) ([]domain.Budget, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetAggregatorSvc
	BudgetManagerSvc
}
