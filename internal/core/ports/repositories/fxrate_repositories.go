package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// FxRateReader defines read operations for tenant-stored exchange rates
type FxRateReader interface {
	// FindLatestRate retrieves the most recently effective stored rate for a
	// currency within a tenant.
	FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.FxRate, error)

	// ListRatesByTenant retrieves all stored rates of a tenant.
	ListRatesByTenant(ctx context.Context, tenantID string) ([]domain.FxRate, error)
}

// FxRateWriter defines write operations for tenant-stored exchange rates
type FxRateWriter interface {
	// SaveFxRate persists a new stored rate.
	SaveFxRate(ctx context.Context, rate domain.FxRate) error
}

// FxRateRepositoryFacade combines all stored-rate repository interfaces
type FxRateRepositoryFacade interface {
	FxRateReader
	FxRateWriter
}
