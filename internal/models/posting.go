package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is the database shape of a ledger posting. Installment metadata is
// flattened into nullable columns; the domain layer folds them back into a
// nested struct.
type Posting struct {
	PostingID        string          `json:"postingID"`
	TenantID         string          `json:"tenantID"`
	UserID           string          `json:"userID"`
	Kind             string          `json:"kind"`
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	BaseAmount       decimal.Decimal `json:"baseAmount"`
	CategoryID       string          `json:"categoryID"`
	SubcategoryID    *string         `json:"subcategoryID"`
	EntityID         *string         `json:"entityID"`
	PaymentMethod    string          `json:"paymentMethod"`
	Notes            string          `json:"notes"`
	Status           string          `json:"status"`
	Source           string          `json:"source"`
	Deleted          bool            `json:"deleted"`
	InstallmentCount *int            `json:"installmentCount"`
	InstallmentIndex *int            `json:"installmentIndex"`
	CardKind         *string         `json:"cardKind"`
	Fingerprint      *string         `json:"fingerprint"`
	AuditFields
}
