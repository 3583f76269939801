package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository reads the daily rate facts. Rates are shared by all workspaces.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateReader {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateReader = (*PgxExchangeRateRepository)(nil)

// ListRatesBetween returns the facts dated in [from, through] plus, per pair,
// the latest fact before from, which resolves every day of the range.
func (r *PgxExchangeRateRepository) ListRatesBetween(ctx context.Context, from, through time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT base_currency, quote_currency, rate_date, rate
		FROM (
			SELECT DISTINCT ON (base_currency, quote_currency) base_currency, quote_currency, rate_date, rate
			FROM exchange_rates
			WHERE rate_date < $1
			ORDER BY base_currency, quote_currency, rate_date DESC
		) AS anchor
		UNION ALL
		SELECT base_currency, quote_currency, rate_date, rate
		FROM exchange_rates
		WHERE rate_date BETWEEN $1 AND $2
		ORDER BY rate_date, base_currency, quote_currency
	`

	rates := make([]domain.ExchangeRate, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, domain.Day(from), domain.Day(through))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rate domain.ExchangeRate
			if err := rows.Scan(&rate.BaseCurrency, &rate.QuoteCurrency, &rate.RateDate, &rate.Rate); err != nil {
				return err
			}
			rates = append(rates, rate)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list exchange rates", err)
	}
	return rates, nil
}

// FindRateAsOf finds the most recent rate of a pair dated on or before asOf.
func (r *PgxExchangeRateRepository) FindRateAsOf(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	baseCurrency, quoteCurrency = strings.ToUpper(baseCurrency), strings.ToUpper(quoteCurrency)
	query := `
		SELECT base_currency, quote_currency, rate_date, rate
		FROM exchange_rates
		WHERE base_currency = $1 AND quote_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1
	`

	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, baseCurrency, quoteCurrency, domain.Day(asOf)).
		Scan(&rate.BaseCurrency, &rate.QuoteCurrency, &rate.RateDate, &rate.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %s/%s rate on or before %s", baseCurrency, quoteCurrency, asOf.Format("2006-01-02")))
		}
		return nil, apperrors.NewDataSourceError("failed to find exchange rate", err)
	}
	return &rate, nil
}
