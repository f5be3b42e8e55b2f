package pgsql

import (
	"context"
	"strings"

	"github.com/finanzap/finanzap_backend/internal/apperrors"
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var FULL_FX_RATE_SELECT_QUERY = `
	SELECT fx_rate_id, tenant_id, currency_code, sell_rate, date_effective,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM fx_rates
`

type PgxFxRateRepository struct {
	BaseRepository
}

// newPgxFxRateRepository creates a new repository for tenant-stored exchange rates.
func newPgxFxRateRepository(pool *pgxpool.Pool) portsrepo.FxRateRepositoryFacade {
	return &PgxFxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FxRateRepositoryFacade = (*PgxFxRateRepository)(nil)

func (r *PgxFxRateRepository) getRates(ctx context.Context, filterQuery string, args ...interface{}) ([]domain.FxRate, error) {
	query := FULL_FX_RATE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fx rates", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.FxRate])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan fx rates", err)
	}
	return rates, nil
}

// FindLatestRate retrieves the most recently effective stored rate for a
// currency within a tenant.
func (r *PgxFxRateRepository) FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.FxRate, error) {
	currency := strings.ToUpper(currencyCode)
	rates, err := r.getRates(ctx,
		` WHERE tenant_id = $1 AND currency_code = $2 ORDER BY date_effective DESC, created_at DESC LIMIT 1;`,
		tenantID, currency,
	)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, apperrors.NewNotFoundError("no stored rate for currency " + currency)
	}
	return &rates[0], nil
}

// ListRatesByTenant retrieves all stored rates of a tenant.
func (r *PgxFxRateRepository) ListRatesByTenant(ctx context.Context, tenantID string) ([]domain.FxRate, error) {
	return r.getRates(ctx, ` WHERE tenant_id = $1 ORDER BY currency_code, date_effective DESC;`, tenantID)
}

// SaveFxRate persists a new stored rate.
func (r *PgxFxRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	query := `
		INSERT INTO fx_rates (fx_rate_id, tenant_id, currency_code, sell_rate, date_effective,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.FxRateID,
		rate.TenantID,
		strings.ToUpper(rate.CurrencyCode),
		rate.SellRate,
		rate.DateEffective,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save fx rate "+rate.FxRateID, err)
	}
	return nil
}
