package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
)

// LedgerRecorderSvc records entered transactions as ledger postings.
type LedgerRecorderSvc interface {
	// Record turns one entered transaction into one or more postings
	// (installment expansion, currency normalization, counterparty
	// resolution) and persists them as a single atomic batch. One audit
	// event per posting is emitted after the batch commits.
	Record(ctx context.Context, tenantID string, req dto.RecordPostingRequest, userID string) ([]domain.Posting, error)

	// SoftDeletePosting marks a posting deleted. Postings are never removed.
	SoftDeletePosting(ctx context.Context, tenantID, postingID string, actorUserID string) error
}

// PostingReaderSvc defines read operations for posting data
type PostingReaderSvc interface {
	// FindPostingByID retrieves a specific posting within a tenant.
	FindPostingByID(ctx context.Context, tenantID, postingID string, requestingUserID string) (*domain.Posting, error)

	// ListPostings retrieves a paginated list of the tenant's postings.
	ListPostings(ctx context.Context, tenantID string, params dto.ListPostingsParams, requestingUserID string) (*dto.ListPostingsResponse, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	LedgerRecorderSvc
	PostingReaderSvc
}
