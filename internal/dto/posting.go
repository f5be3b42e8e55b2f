package dto

import (
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPostingRequest defines the payload for recording one entered
// transaction, which may expand into several postings when paid in
// installments.
type RecordPostingRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	CategoryID    string          `json:"categoryID" binding:"required"`
	SubcategoryID string          `json:"subcategoryID"`
	EntityName    string          `json:"entityName"`
	EntityTaxID   string          `json:"entityTaxID"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Installments  int             `json:"installments" binding:"omitempty,min=1,max=60"`
	CardKind      string          `json:"cardKind"`
}

// InstallmentResponse is the API representation of installment metadata.
type InstallmentResponse struct {
	Count    int    `json:"count"`
	Index    int    `json:"index"`
	CardKind string `json:"cardKind,omitempty"`
}

// PostingResponse is the API representation of a posting.
type PostingResponse struct {
	PostingID     string               `json:"postingID"`
	TenantID      string               `json:"tenantID"`
	UserID        string               `json:"userID"`
	Kind          string               `json:"kind"`
	Date          time.Time            `json:"date"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyCode  string               `json:"currencyCode"`
	BaseAmount    decimal.Decimal      `json:"baseAmount"`
	CategoryID    string               `json:"categoryID"`
	SubcategoryID string               `json:"subcategoryID,omitempty"`
	EntityID      *string              `json:"entityID,omitempty"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Status        string               `json:"status"`
	Source        string               `json:"source"`
	Deleted       bool                 `json:"deleted"`
	Installment   *InstallmentResponse `json:"installment,omitempty"`
}

// RecordPostingResponse wraps the postings produced by one entry.
type RecordPostingResponse struct {
	Postings []PostingResponse `json:"postings"`
}

// ListPostingsParams holds parameters for listing postings.
type ListPostingsParams struct {
	Kind       string  `form:"kind" binding:"omitempty,oneof=EXPENSE INCOME"`
	CategoryID string  `form:"categoryID"`
	Year       int     `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month      int     `form:"month" binding:"omitempty,min=1,max=12"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// ListPostingsResponse is a paginated page of postings.
type ListPostingsResponse struct {
	Postings  []PostingResponse `json:"postings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPostingResponse converts a domain Posting to its API representation.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	resp := PostingResponse{
		PostingID:     p.PostingID,
		TenantID:      p.TenantID,
		UserID:        p.UserID,
		Kind:          string(p.Kind),
		Date:          p.Date,
		Amount:        p.Amount,
		CurrencyCode:  p.CurrencyCode,
		BaseAmount:    p.BaseAmount,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		EntityID:      p.EntityID,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		Status:        string(p.Status),
		Source:        string(p.Source),
		Deleted:       p.Deleted,
	}
	if p.Installment != nil {
		resp.Installment = &InstallmentResponse{
			Count:    p.Installment.Count,
			Index:    p.Installment.Index,
			CardKind: p.Installment.CardKind,
		}
	}
	return resp
}

// ToPostingResponses converts a slice of domain Postings.
func ToPostingResponses(postings []domain.Posting) []PostingResponse {
	out := make([]PostingResponse, len(postings))
	for i := range postings {
		out[i] = ToPostingResponse(&postings[i])
	}
	return out
}
