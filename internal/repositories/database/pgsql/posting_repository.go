package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/finanzap/finanzap_backend/internal/models"
	"github.com/finanzap/finanzap_backend/internal/utils/mapping"
	"github.com/finanzap/finanzap_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var FULL_POSTING_SELECT_QUERY = `
	SELECT posting_id, tenant_id, user_id, kind, date, amount, currency_code, base_amount,
	       category_id, subcategory_id, entity_id, payment_method, notes, status, source, deleted,
	       installment_count, installment_index, card_kind, fingerprint,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM postings
`

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for posting data.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryWithTx {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PostingRepositoryWithTx = (*PgxPostingRepository)(nil)

func (r *PgxPostingRepository) getPostings(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.Posting, error) {
	query := FULL_POSTING_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings", err)
	}
	defer rows.Close()

	modelPostings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Posting])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan postings", err)
	}
	return mapping.ToDomainPostings(modelPostings), nil
}

// FindPostingByID retrieves a specific posting within a tenant.
func (r *PgxPostingRepository) FindPostingByID(ctx context.Context, tenantID, postingID string) (*domain.Posting, error) {
	postings, err := r.getPostings(ctx, ` WHERE tenant_id = $1 AND posting_id = $2;`, tenantID, postingID)
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, apperrors.NewNotFoundError("posting " + postingID + " not found")
	}
	return &postings[0], nil
}

// ListPostingsByTenant retrieves a paginated list of postings using
// token-based keyset pagination ordered by date DESC, created_at DESC.
func (r *PgxPostingRepository) ListPostingsByTenant(ctx context.Context, tenantID string, filter portsrepo.ListPostingsFilter, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	whereClause := ` WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if !filter.IncludeDeleted {
		whereClause += ` AND deleted = false`
	}
	if filter.Kind != "" {
		whereClause += fmt.Sprintf(` AND kind = $%d`, len(args)+1)
		args = append(args, filter.Kind)
	}
	if filter.CategoryID != "" {
		whereClause += fmt.Sprintf(` AND category_id = $%d`, len(args)+1)
		args = append(args, filter.CategoryID)
	}
	if !filter.From.IsZero() {
		whereClause += fmt.Sprintf(` AND date >= $%d`, len(args)+1)
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		whereClause += fmt.Sprintf(` AND date < $%d`, len(args)+1)
		args = append(args, filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		whereClause += fmt.Sprintf(` AND (date, created_at) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, lastDate, lastCreatedAt)
	}

	orderByClause := ` ORDER BY date DESC, created_at DESC`
	query := FULL_POSTING_SELECT_QUERY + whereClause + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query postings for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelPostings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Posting])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan postings", err)
	}

	var newNextToken *string
	if len(modelPostings) > limit {
		modelPostings = modelPostings[:limit]
		last := modelPostings[len(modelPostings)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainPostings(modelPostings), newNextToken, nil
}

// SumBaseAmounts sums the normalized base amounts of non-deleted postings of
// the given kind and category whose date falls in [from, to).
func (r *PgxPostingRepository) SumBaseAmounts(ctx context.Context, tenantID, categoryID string, kind domain.PostingKind, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(base_amount), 0)
		FROM postings
		WHERE tenant_id = $1 AND category_id = $2 AND kind = $3
		  AND deleted = false AND date >= $4 AND date < $5;
	`
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, categoryID, kind, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum base amounts for category "+categoryID, err)
	}
	return sum, nil
}

// SavePostings persists all postings of one entered transaction as a single
// atomic batch.
func (r *PgxPostingRepository) SavePostings(ctx context.Context, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO postings (
			posting_id, tenant_id, user_id, kind, date, amount, currency_code, base_amount,
			category_id, subcategory_id, entity_id, payment_method, notes, status, source, deleted,
			installment_count, installment_index, card_kind, fingerprint,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	for _, p := range postings {
		m := mapping.ToModelPosting(p)
		batch.Queue(insertQuery,
			m.PostingID, m.TenantID, m.UserID, m.Kind, m.Date, m.Amount, m.CurrencyCode, m.BaseAmount,
			m.CategoryID, m.SubcategoryID, m.EntityID, m.PaymentMethod, m.Notes, m.Status, m.Source, m.Deleted,
			m.InstallmentCount, m.InstallmentIndex, m.CardKind, m.Fingerprint,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "posting already recorded", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert posting batch", err)
	}

	return r.Commit(ctx, tx)
}

// MarkPostingDeleted soft-deletes a posting. Postings are never hard-deleted.
func (r *PgxPostingRepository) MarkPostingDeleted(ctx context.Context, tenantID, postingID, deletedBy string, deletedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE postings SET deleted = true, last_updated_at = $1, last_updated_by = $2
		 WHERE tenant_id = $3 AND posting_id = $4 AND deleted = false;`,
		deletedAt, deletedBy, tenantID, postingID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft-delete posting "+postingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("posting " + postingID + " not found or already deleted")
	}
	return nil
}
