package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// BudgetService manages monthly allocations and computes their consumption
// from the posting ledger.
type BudgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	postingRepo  portsrepo.PostingReader
	categoryRepo portsrepo.CategoryReader
	audit        portssvc.AuditEmitter
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(br portsrepo.BudgetRepositoryFacade, pr portsrepo.PostingReader, cr portsrepo.CategoryReader, authorizer portssvc.TenantAuthorizerSvc, audit portssvc.AuditEmitter) portssvc.BudgetSvcFacade {
	return &BudgetService{
		BaseService:  BaseService{TenantAuthorizer: authorizer},
		budgetRepo:   br,
		postingRepo:  pr,
		categoryRepo: cr,
		audit:        audit,
	}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

// ComputeSummary aggregates non-deleted expense postings of a category for a
// month against its allocation. The summary is derived on every call, never
// stored, so it is always consistent with the ledger. Percentage is the raw
// spent-over-allocated ratio rounded to one decimal; values over 100 are
// returned as-is so alerting keeps the true number.
func (s *BudgetService) ComputeSummary(ctx context.Context, tenantID, categoryID string, year, month int, requestingUserID string) (*dto.BudgetSummaryResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12")
	}

	budget, err := s.budgetRepo.FindBudget(ctx, tenantID, categoryID, year, month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load budget", slog.String("tenant_id", tenantID), slog.String("category_id", categoryID))
			return nil, fmt.Errorf("failed to load budget: %w", err)
		}
		// No allocation yet: the summary still reports what was spent.
		budget = &domain.Budget{
			TenantID:   tenantID,
			Year:       year,
			Month:      month,
			CategoryID: categoryID,
			Allocated:  decimal.Zero,
			RolloverIn: decimal.Zero,
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	spent, err := s.postingRepo.SumBaseAmounts(ctx, tenantID, categoryID, domain.KindExpense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum postings for budget summary", slog.String("tenant_id", tenantID), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to aggregate postings: %w", err)
	}

	remaining := budget.Allocated.Add(budget.RolloverIn).Sub(spent)

	// Percentage measures consumption of the month's own allocation; rollover
	// extends remaining but never the denominator.
	percentage := decimal.Zero
	if budget.Allocated.IsPositive() {
		percentage = spent.Div(budget.Allocated).Mul(oneHundred).Round(1)
	}

	return &dto.BudgetSummaryResponse{
		TenantID:   tenantID,
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
		Allocated:  budget.Allocated,
		RolloverIn: budget.RolloverIn,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
	}, nil
}

// UpsertBudget creates or replaces the (tenant, year, month, category)
// allocation. Requires the ADMIN role.
func (s *BudgetService) UpsertBudget(ctx context.Context, tenantID string, req dto.UpsertBudgetRequest, actorUserID string) (*domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.Allocated.IsNegative() {
		return nil, apperrors.NewValidationError("allocated amount cannot be negative")
	}
	if req.RolloverIn.IsNegative() {
		return nil, apperrors.NewValidationError("rollover amount cannot be negative")
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found in tenant", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}

	var before *domain.Budget
	existing, err := s.budgetRepo.FindBudget(ctx, tenantID, req.CategoryID, req.Year, req.Month)
	if err == nil {
		before = existing
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing budget", slog.String("tenant_id", tenantID), slog.String("category_id", req.CategoryID))
		return nil, fmt.Errorf("failed to check existing budget: %w", err)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		TenantID:   tenantID,
		Year:       req.Year,
		Month:      req.Month,
		CategoryID: req.CategoryID,
		Allocated:  req.Allocated,
		RolloverIn: req.RolloverIn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if before != nil {
		budget.BudgetID = before.BudgetID
		budget.CreatedAt = before.CreatedAt
		budget.CreatedBy = before.CreatedBy
	}

	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to upsert budget", slog.String("tenant_id", tenantID), slog.String("category_id", req.CategoryID))
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	action := domain.AuditCreate
	if before != nil {
		action = domain.AuditUpdate
	}
	s.audit.LogEvent(tenantID, "budget", budget.BudgetID, action, before, budget, actorUserID)

	s.LogInfo(ctx, "Budget upserted",
		slog.String("tenant_id", tenantID),
		slog.String("category_id", req.CategoryID),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month))
	return &budget, nil
}

// ListBudgets retrieves all budgets of a tenant for a month.
func (s *BudgetService) ListBudgets(ctx context.Context, tenantID string, year, month int, requestingUserID string) ([]domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, tenantID, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list budgets of tenant %s: %w", tenantID, err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}
