package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// RateQuoteProvider is the external FX quote source. Implementations query a
// provider over HTTP and return the sell rate for one unit of the currency.
type RateQuoteProvider interface {
	QuoteSellRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// CurrencyNormalizerSvc converts entered amounts into a tenant base currency.
type CurrencyNormalizerSvc interface {
	// Normalize converts amount from currencyCode into baseCurrencyCode.
	// Amounts already in the base currency pass through unchanged without any
	// lookup. Tenant-stored rates take precedence over the external provider.
	// When no rate is obtainable it returns ErrRateUnavailable; the enclosing
	// operation must treat that as fatal.
	Normalize(ctx context.Context, tenantID string, amount decimal.Decimal, currencyCode, baseCurrencyCode string) (decimal.Decimal, error)
}

// FxRateManagerSvc manages tenant-stored rates.
type FxRateManagerSvc interface {
	// SaveRate stores a tenant rate.
	SaveRate(ctx context.Context, tenantID string, req dto.SaveFxRateRequest, actorUserID string) (*domain.FxRate, error)

	// ListRates retrieves the tenant's stored rates.
	ListRates(ctx context.Context, tenantID string, requestingUserID string) ([]domain.FxRate, error)
}

// FxRateSvcFacade combines normalization and stored-rate management
type FxRateSvcFacade interface {
	CurrencyNormalizerSvc
	FxRateManagerSvc
}
