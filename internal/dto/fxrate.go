package dto

import (
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveFxRateRequest defines the payload for storing a tenant exchange rate.
type SaveFxRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	SellRate      decimal.Decimal `json:"sellRate" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// FxRateResponse is the API representation of a stored rate.
type FxRateResponse struct {
	FxRateID      string          `json:"fxRateID"`
	TenantID      string          `json:"tenantID"`
	CurrencyCode  string          `json:"currencyCode"`
	SellRate      decimal.Decimal `json:"sellRate"`
	DateEffective time.Time       `json:"dateEffective"`
}

// ListFxRatesResponse wraps a tenant's stored rates.
type ListFxRatesResponse struct {
	Rates []FxRateResponse `json:"rates"`
}

// ToFxRateResponse converts a domain FxRate to its API representation.
func ToFxRateResponse(r *domain.FxRate) FxRateResponse {
	return FxRateResponse{
		FxRateID:      r.FxRateID,
		TenantID:      r.TenantID,
		CurrencyCode:  r.CurrencyCode,
		SellRate:      r.SellRate,
		DateEffective: r.DateEffective,
	}
}

// ToFxRateResponses converts a slice of domain FxRates.
func ToFxRateResponses(rates []domain.FxRate) []FxRateResponse {
	out := make([]FxRateResponse, len(rates))
	for i := range rates {
		out[i] = ToFxRateResponse(&rates[i])
	}
	return out
}
