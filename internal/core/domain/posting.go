package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingKind indicates whether a posting is an expense or an income.
type PostingKind string

const (
	KindExpense PostingKind = "EXPENSE"
	KindIncome  PostingKind = "INCOME"
)

// PostingStatus is the state of a posting.
type PostingStatus string

const (
	PostingPosted PostingStatus = "POSTED"
)

// PostingSource records how a posting entered the system.
type PostingSource string

const (
	SourceManual  PostingSource = "manual"
	SourceReceipt PostingSource = "receipt"
)

// InstallmentInfo carries the metadata of one line within an installment
// group. Attached only when the entered transaction was split (count > 1).
type InstallmentInfo struct {
	Count    int    `json:"count"`    // Total installments in the group
	Index    int    `json:"index"`    // 1-based position of this posting
	CardKind string `json:"cardKind"` // Card used for the installment purchase
}

// Posting is a single recorded expense or income line item.
// Postings are soft-deleted, never hard-deleted, to preserve audit integrity.
type Posting struct {
	PostingID     string           `json:"postingID"` // Primary Key (e.g., UUID)
	TenantID      string           `json:"tenantID"`  // FK -> tenants.tenant_id
	UserID        string           `json:"userID"`    // User who entered the posting
	Kind          PostingKind      `json:"kind"`
	Date          time.Time        `json:"date"`         // Effective date of this line
	Amount        decimal.Decimal  `json:"amount"`       // As entered, in CurrencyCode
	CurrencyCode  string           `json:"currencyCode"` // Currency the amount was entered in
	BaseAmount    decimal.Decimal  `json:"baseAmount"`   // Normalized into the tenant base currency at entry time
	CategoryID    string           `json:"categoryID"`
	SubcategoryID string           `json:"subcategoryID"` // Optional, empty when not set
	EntityID      *string          `json:"entityID,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         string           `json:"notes"`
	Status        PostingStatus    `json:"status"`
	Source        PostingSource    `json:"source"`
	Deleted       bool             `json:"deleted"`
	Installment   *InstallmentInfo `json:"installment,omitempty"`
	Fingerprint   *string          `json:"fingerprint,omitempty"` // Receipt dedup key
	AuditFields
}
