package repositories

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// LicenseReader defines read operations for license data
type LicenseReader interface {
	// FindLicenseByTenantID retrieves the license of a tenant.
	FindLicenseByTenantID(ctx context.Context, tenantID string) (*domain.License, error)
}

// LicenseWriter defines write operations for license data
type LicenseWriter interface {
	// SaveLicense persists a new license.
	SaveLicense(ctx context.Context, license domain.License) error
}

// LicenseRepositoryFacade combines all license-related repository interfaces
type LicenseRepositoryFacade interface {
	LicenseReader
	LicenseWriter
}
