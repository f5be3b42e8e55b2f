package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/utils/installments"
	"github.com/google/uuid"
)

const defaultListLimit = 50

// PostingService records entered transactions as ledger postings, expanding
// installments, normalizing currency and resolving counterparties on the way.
type PostingService struct {
	BaseService
	postingRepo    portsrepo.PostingRepositoryWithTx
	tenantRepo     portsrepo.TenantReader
	categoryRepo   portsrepo.CategoryReader
	entityResolver portssvc.EntityResolverSvc
	normalizer     portssvc.CurrencyNormalizerSvc
	audit          portssvc.AuditEmitter
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	pr portsrepo.PostingRepositoryWithTx,
	tr portsrepo.TenantReader,
	cr portsrepo.CategoryReader,
	resolver portssvc.EntityResolverSvc,
	normalizer portssvc.CurrencyNormalizerSvc,
	authorizer portssvc.TenantAuthorizerSvc,
	audit portssvc.AuditEmitter,
) portssvc.PostingSvcFacade {
	return &PostingService{
		BaseService:    BaseService{TenantAuthorizer: authorizer},
		postingRepo:    pr,
		tenantRepo:     tr,
		categoryRepo:   cr,
		entityResolver: resolver,
		normalizer:     normalizer,
		audit:          audit,
	}
}

var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// Record turns one entered transaction into one or more postings and saves
// them as a single atomic batch. Steps, in order: authorization, tenant and
// category validation, counterparty resolution, currency normalization, then
// installment expansion. Normalization failure aborts the whole entry;
// nothing is persisted. One audit event per posting is emitted after the
// batch commits.
func (s *PostingService) Record(ctx context.Context, tenantID string, req dto.RecordPostingRequest, userID string) ([]domain.Posting, error) {
	logger := s.GetLogger(ctx)

	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive")
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Status != domain.TenantActive {
		return nil, apperrors.NewConflictError(fmt.Sprintf("tenant %s is %s and cannot record postings", tenantID, tenant.Status))
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found in tenant", apperrors.ErrValidation, req.CategoryID)
		}
		s.LogError(ctx, err, "Failed to validate category", slog.String("tenant_id", tenantID), slog.String("category_id", req.CategoryID))
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}

	var entityID *string
	if req.EntityName != "" || req.EntityTaxID != "" {
		entity, err := s.entityResolver.Resolve(ctx, tenantID, req.EntityName, req.EntityTaxID, domain.EntityOther, userID)
		if err != nil {
			return nil, err
		}
		entityID = &entity.EntityID
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	baseAmount, err := s.normalizer.Normalize(ctx, tenantID, req.Amount, currencyCode, tenant.BaseCurrencyCode)
	if err != nil {
		// Rate failures are fatal to the entry; nothing gets persisted.
		logger.Warn("Posting rejected: normalization failed",
			slog.String("tenant_id", tenantID),
			slog.String("currency", currencyCode),
			slog.String("error", err.Error()))
		return nil, err
	}

	count := req.Installments
	if count == 0 {
		count = 1
	}

	drafts, err := installments.Expand(req.Amount, baseAmount, count, req.Date, req.Notes)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	postings := make([]domain.Posting, 0, len(drafts))
	for _, draft := range drafts {
		posting := domain.Posting{
			PostingID:     uuid.NewString(),
			TenantID:      tenantID,
			UserID:        userID,
			Kind:          domain.PostingKind(req.Kind),
			Date:          draft.Date,
			Amount:        draft.Amount,
			CurrencyCode:  currencyCode,
			BaseAmount:    draft.BaseAmount,
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
			EntityID:      entityID,
			PaymentMethod: req.PaymentMethod,
			Notes:         draft.Notes,
			Status:        domain.PostingPosted,
			Source:        domain.SourceManual,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if count > 1 {
			posting.Installment = &domain.InstallmentInfo{
				Count:    draft.Count,
				Index:    draft.Index,
				CardKind: req.CardKind,
			}
		}
		postings = append(postings, posting)
	}

	if err := s.postingRepo.SavePostings(ctx, postings); err != nil {
		s.LogError(ctx, err, "Failed to save posting batch", slog.String("tenant_id", tenantID), slog.Int("count", len(postings)))
		return nil, fmt.Errorf("failed to record postings: %w", err)
	}

	for i := range postings {
		s.audit.LogEvent(tenantID, "posting", postings[i].PostingID, domain.AuditCreate, nil, postings[i], userID)
	}

	logger.Info("Postings recorded",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", userID),
		slog.Int("installments", count),
		slog.String("kind", req.Kind))
	return postings, nil
}

// SoftDeletePosting marks a posting deleted, keeping the row for audit integrity.
func (s *PostingService) SoftDeletePosting(ctx context.Context, tenantID, postingID string, actorUserID string) error {
	if err := s.AuthorizeUser(ctx, actorUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}

	posting, err := s.postingRepo.FindPostingByID(ctx, tenantID, postingID)
	if err != nil {
		return err
	}
	if posting.Deleted {
		return apperrors.NewConflictError(fmt.Sprintf("posting %s is already deleted", postingID))
	}

	now := time.Now()
	if err := s.postingRepo.MarkPostingDeleted(ctx, tenantID, postingID, actorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to soft-delete posting", slog.String("tenant_id", tenantID), slog.String("posting_id", postingID))
		return fmt.Errorf("failed to delete posting %s: %w", postingID, err)
	}

	s.audit.LogEvent(tenantID, "posting", postingID, domain.AuditDelete, posting, nil, actorUserID)

	s.LogInfo(ctx, "Posting soft-deleted",
		slog.String("tenant_id", tenantID),
		slog.String("posting_id", postingID),
		slog.String("deleted_by", actorUserID))
	return nil
}

// FindPostingByID retrieves a posting after confirming the requester belongs to the tenant.
func (s *PostingService) FindPostingByID(ctx context.Context, tenantID, postingID string, requestingUserID string) (*domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.postingRepo.FindPostingByID(ctx, tenantID, postingID)
}

// ListPostings retrieves a paginated page of the tenant's postings.
func (s *PostingService) ListPostings(ctx context.Context, tenantID string, params dto.ListPostingsParams, requestingUserID string) (*dto.ListPostingsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	filter := portsrepo.ListPostingsFilter{
		Kind:       domain.PostingKind(params.Kind),
		CategoryID: params.CategoryID,
	}
	if params.Year != 0 {
		month := time.Month(1)
		monthsSpanned := 12
		if params.Month != 0 {
			month = time.Month(params.Month)
			monthsSpanned = 1
		}
		filter.From = time.Date(params.Year, month, 1, 0, 0, 0, 0, time.UTC)
		filter.To = filter.From.AddDate(0, monthsSpanned, 0)
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	postings, nextToken, err := s.postingRepo.ListPostingsByTenant(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list postings of tenant %s: %w", tenantID, err)
	}

	return &dto.ListPostingsResponse{
		Postings:  dto.ToPostingResponses(postings),
		NextToken: nextToken,
	}, nil
}
