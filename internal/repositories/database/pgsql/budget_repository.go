package pgsql

import (
	"context"
	"strconv"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_BUDGET_SELECT_QUERY = `
	SELECT budget_id, tenant_id, year, month, category_id, allocated, rollover_in,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM budgets
`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) getBudgets(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.Budget, error) {
	query := FULL_BUDGET_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budgets", err)
	}
	defer rows.Close()

	budgets, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Budget])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan budgets", err)
	}
	return budgets, nil
}

// FindBudget retrieves the budget for a (tenant, category, year, month).
func (r *PgxBudgetRepository) FindBudget(ctx context.Context, tenantID, categoryID string, year, month int) (*domain.Budget, error) {
	budgets, err := r.getBudgets(ctx,
		` WHERE tenant_id = $1 AND category_id = $2 AND year = $3 AND month = $4;`,
		tenantID, categoryID, year, month,
	)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, apperrors.NewNotFoundError("budget for category " + categoryID + " in " + strconv.Itoa(year) + "-" + strconv.Itoa(month) + " not found")
	}
	return &budgets[0], nil
}

// ListBudgetsByMonth retrieves all budgets of a tenant for a month.
func (r *PgxBudgetRepository) ListBudgetsByMonth(ctx context.Context, tenantID string, year, month int) ([]domain.Budget, error) {
	return r.getBudgets(ctx,
		` WHERE tenant_id = $1 AND year = $2 AND month = $3 ORDER BY category_id;`,
		tenantID, year, month,
	)
}

// UpsertBudget inserts or updates the budget identified by
// (tenant, year, month, category).
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, tenant_id, year, month, category_id, allocated, rollover_in,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id, year, month, category_id) DO UPDATE SET
			allocated = EXCLUDED.allocated,
			rollover_in = EXCLUDED.rollover_in,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.TenantID,
		budget.Year,
		budget.Month,
		budget.CategoryID,
		budget.Allocated,
		budget.RolloverIn,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert budget "+budget.BudgetID, err)
	}
	return nil
}
