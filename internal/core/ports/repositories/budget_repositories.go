package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudget retrieves the budget for a (tenant, category, year, month).
	FindBudget(ctx context.Context, tenantID, categoryID string, year, month int) (*domain.Budget, error)

	// ListBudgetsByMonth retrieves all budgets of a tenant for a month.
	ListBudgetsByMonth(ctx context.Context, tenantID string, year, month int) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// UpsertBudget inserts or updates the budget identified by
	// (tenant, year, month, category).
	UpsertBudget(ctx context.Context, budget domain.Budget) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
