package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FxRateService normalizes amounts into a tenant base currency and manages
// tenant-stored rates.
type FxRateService struct {
	BaseService
	fxRateRepo portsrepo.FxRateRepositoryFacade
	quotes     portssvc.RateQuoteProvider
	audit      portssvc.AuditEmitter
}

// NewFxRateService creates a new FxRateService. The quote provider may be nil
// when no external source is configured; normalization then relies on stored
// rates alone.
func NewFxRateService(fr portsrepo.FxRateRepositoryFacade, quotes portssvc.RateQuoteProvider, authorizer portssvc.TenantAuthorizerSvc, audit portssvc.AuditEmitter) portssvc.FxRateSvcFacade {
	return &FxRateService{
		BaseService: BaseService{TenantAuthorizer: authorizer},
		fxRateRepo:  fr,
		quotes:      quotes,
		audit:       audit,
	}
}

var _ portssvc.FxRateSvcFacade = (*FxRateService)(nil)

// Normalize converts amount from currencyCode into the tenant base currency.
// Base-currency amounts pass through unchanged without touching storage or
// the provider. Stored tenant rates win over the external provider; when
// neither yields a positive rate the operation fails with ErrRateUnavailable.
func (s *FxRateService) Normalize(ctx context.Context, tenantID string, amount decimal.Decimal, currencyCode, baseCurrencyCode string) (decimal.Decimal, error) {
	logger := s.GetLogger(ctx)

	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	baseCurrencyCode = strings.ToUpper(strings.TrimSpace(baseCurrencyCode))
	if currencyCode == "" || baseCurrencyCode == "" {
		return decimal.Zero, apperrors.NewValidationError("currency codes are required for normalization")
	}

	if currencyCode == baseCurrencyCode {
		return amount, nil
	}

	rate, err := s.lookupRate(ctx, tenantID, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}

	normalized := amount.Mul(rate)
	logger.Debug("Amount normalized",
		slog.String("tenant_id", tenantID),
		slog.String("currency", currencyCode),
		slog.String("base_currency", baseCurrencyCode),
		slog.String("rate", rate.String()))
	return normalized, nil
}

// lookupRate finds a usable sell rate: tenant-stored first, provider second.
func (s *FxRateService) lookupRate(ctx context.Context, tenantID, currencyCode string) (decimal.Decimal, error) {
	logger := s.GetLogger(ctx)

	stored, err := s.fxRateRepo.FindLatestRate(ctx, tenantID, currencyCode)
	if err == nil {
		if stored.SellRate.IsPositive() {
			return stored.SellRate, nil
		}
		logger.Warn("Stored rate is not positive, falling back to provider",
			slog.String("tenant_id", tenantID),
			slog.String("currency", currencyCode))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read stored rate", slog.String("tenant_id", tenantID), slog.String("currency", currencyCode))
		return decimal.Zero, fmt.Errorf("failed to read stored rate: %w", err)
	}

	if s.quotes == nil {
		return decimal.Zero, fmt.Errorf("%w: no stored rate for %s and no provider configured", apperrors.ErrRateUnavailable, currencyCode)
	}

	quoted, err := s.quotes.QuoteSellRate(ctx, currencyCode)
	if err != nil {
		logger.Error("Rate provider query failed",
			slog.String("currency", currencyCode),
			slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("%w: provider failed for %s: %v", apperrors.ErrRateUnavailable, currencyCode, err)
	}
	if !quoted.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: provider returned non-positive rate for %s", apperrors.ErrRateUnavailable, currencyCode)
	}
	return quoted, nil
}

// SaveRate stores a tenant exchange rate. Requires the ADMIN role.
func (s *FxRateService) SaveRate(ctx context.Context, tenantID string, req dto.SaveFxRateRequest, actorUserID string) (*domain.FxRate, error) {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !req.SellRate.IsPositive() {
		return nil, apperrors.NewValidationError("sell rate must be positive")
	}

	now := time.Now()
	rate := domain.FxRate{
		FxRateID:      uuid.NewString(),
		TenantID:      tenantID,
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		SellRate:      req.SellRate,
		DateEffective: req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.fxRateRepo.SaveFxRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save stored rate", slog.String("tenant_id", tenantID), slog.String("currency", rate.CurrencyCode))
		return nil, fmt.Errorf("failed to save rate for %s: %w", rate.CurrencyCode, err)
	}

	s.audit.LogEvent(tenantID, "fx_rate", rate.FxRateID, domain.AuditCreate, nil, rate, actorUserID)

	s.LogInfo(ctx, "Stored rate saved",
		slog.String("tenant_id", tenantID),
		slog.String("currency", rate.CurrencyCode),
		slog.String("sell_rate", rate.SellRate.String()))
	return &rate, nil
}

// ListRates retrieves the tenant's stored rates.
func (s *FxRateService) ListRates(ctx context.Context, tenantID string, requestingUserID string) ([]domain.FxRate, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	rates, err := s.fxRateRepo.ListRatesByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stored rates", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list rates of tenant %s: %w", tenantID, err)
	}
	if rates == nil {
		return []domain.FxRate{}, nil
	}
	return rates, nil
}
