package repositories

import (
	"context"
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListPostingsFilter narrows posting list queries. Zero values mean "no filter".
type ListPostingsFilter struct {
	Kind           domain.PostingKind
	CategoryID     string
	From           time.Time
	To             time.Time // exclusive
	IncludeDeleted bool
}

// PostingReader defines read operations for posting data
type PostingReader interface {
	// FindPostingByID retrieves a specific posting within a tenant.
	FindPostingByID(ctx context.Context, tenantID, postingID string) (*domain.Posting, error)

	// ListPostingsByTenant retrieves a paginated list of postings using
	// token-based pagination. It returns the postings, a token for the next
	// page, and an error.
	ListPostingsByTenant(ctx context.Context, tenantID string, filter ListPostingsFilter, limit int, nextToken *string) ([]domain.Posting, *string, error)

	// SumBaseAmounts sums the normalized base amounts of non-deleted postings
	// of the given kind and category whose date falls in [from, to).
	SumBaseAmounts(ctx context.Context, tenantID, categoryID string, kind domain.PostingKind, from, to time.Time) (decimal.Decimal, error)
}

// PostingWriter defines write operations for posting data
type PostingWriter interface {
	// SavePostings persists all postings of one entered transaction as a
	// single atomic batch; either every posting exists afterwards or none do.
	SavePostings(ctx context.Context, postings []domain.Posting) error

	// MarkPostingDeleted soft-deletes a posting. Postings are never hard-deleted.
	MarkPostingDeleted(ctx context.Context, tenantID, postingID, deletedBy string, deletedAt time.Time) error
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}

// PostingRepositoryWithTx extends PostingRepositoryFacade with transaction capabilities
type PostingRepositoryWithTx interface {
	PostingRepositoryFacade
	TransactionManager
}
