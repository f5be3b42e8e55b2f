package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is a tenant-stored sell rate from a foreign currency into the tenant
// base currency. Stored rates take precedence over the external provider.
type FxRate struct {
	FxRateID      string          `json:"fxRateID"`     // Primary Key (e.g., UUID)
	TenantID      string          `json:"tenantID"`     // FK -> tenants.tenant_id
	CurrencyCode  string          `json:"currencyCode"` // e.g. "USD"
	SellRate      decimal.Decimal `json:"sellRate"`     // Base currency units per one unit of CurrencyCode
	DateEffective time.Time       `json:"dateEffective"`
	AuditFields
}
