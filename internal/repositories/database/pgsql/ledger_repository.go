package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository reads the ledger. It never writes.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// ListEntries returns entries with from <= ts < to ordered by time.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, event_id, ts, account_id, amount, currency_code, kind, category, counterparty, note
		FROM ledger_entries
		WHERE workspace_id = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts, entry_id
	`

	entries := make([]domain.LedgerEntry, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e domain.LedgerEntry
			var kind string
			if err := rows.Scan(&e.EntryID, &e.EventID, &e.Timestamp, &e.AccountID, &e.Amount,
				&e.CurrencyCode, &kind, &e.Category, &e.Counterparty, &e.Note); err != nil {
				return err
			}
			e.Kind = domain.Direction(kind)
			e.WorkspaceID = workspaceID
			e.Timestamp = e.Timestamp.UTC()
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list ledger entries", err)
	}
	return entries, nil
}

// ListDailyMovementsBefore sums directed amounts per UTC day, currency and kind.
func (r *PgxLedgerRepository) ListDailyMovementsBefore(ctx context.Context, workspaceID string, before time.Time) ([]domain.DailyMovement, error) {
	query := `
		SELECT (ts AT TIME ZONE 'UTC')::date AS day, currency_code, kind,
		       SUM(CASE WHEN kind = 'transfer' THEN amount ELSE abs(amount) END) AS amount
		FROM ledger_entries
		WHERE workspace_id = $1 AND ts < $2
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3
	`

	movements := make([]domain.DailyMovement, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, before)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m domain.DailyMovement
			var kind string
			if err := rows.Scan(&m.Day, &m.CurrencyCode, &kind, &m.Amount); err != nil {
				return err
			}
			m.Kind = domain.Direction(kind)
			movements = append(movements, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list daily movements", err)
	}
	return movements, nil
}

// ListMonthlyMovements returns the signed net change of every (account, currency) per month.
func (r *PgxLedgerRepository) ListMonthlyMovements(ctx context.Context, workspaceID string, before time.Time) ([]domain.MonthlyMovement, error) {
	query := `
		SELECT account_id, currency_code, date_trunc('month', ts AT TIME ZONE 'UTC')::date AS month, SUM(amount) AS net
		FROM ledger_entries
		WHERE workspace_id = $1 AND ts < $2
		GROUP BY 1, 2, 3
		ORDER BY 3, 1, 2
	`

	movements := make([]domain.MonthlyMovement, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, before)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m domain.MonthlyMovement
			var month time.Time
			if err := rows.Scan(&m.AccountID, &m.CurrencyCode, &month, &m.Net); err != nil {
				return err
			}
			m.Month = domain.MonthOf(month)
			movements = append(movements, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list monthly movements", err)
	}
	return movements, nil
}

// ListCurrencyCoverage returns the first day each currency appears in the workspace.
func (r *PgxLedgerRepository) ListCurrencyCoverage(ctx context.Context, workspaceID string) ([]domain.CurrencyCoverage, error) {
	query := `
		SELECT currency_code, MIN(ts) AS first_used
		FROM ledger_entries
		WHERE workspace_id = $1
		GROUP BY currency_code
		ORDER BY currency_code
	`

	coverage := make([]domain.CurrencyCoverage, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c domain.CurrencyCoverage
			if err := rows.Scan(&c.CurrencyCode, &c.FirstUsed); err != nil {
				return err
			}
			c.FirstUsed = c.FirstUsed.UTC()
			coverage = append(coverage, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list currency coverage", err)
	}
	return coverage, nil
}

// ListAccountActivity returns the balance of every (account, currency) as of
// asOf together with its last recentDays distinct UTC days of non-transfer
// activity, newest first, and the number of non-transfer entries dated within
// trailingDays of the last one.
func (r *PgxLedgerRepository) ListAccountActivity(ctx context.Context, workspaceID string, asOf time.Time, recentDays, trailingDays int) ([]domain.AccountActivity, error) {
	query := `
		SELECT b.account_id, b.currency_code, b.balance, b.last_ts, b.non_transfer_count,
		       w.trailing_count, COALESCE(r.recent, '{}') AS recent
		FROM (
			SELECT account_id, currency_code, SUM(amount) AS balance, MAX(ts) AS last_ts,
			       COUNT(*) FILTER (WHERE kind <> 'transfer') AS non_transfer_count,
			       MAX(ts) FILTER (WHERE kind <> 'transfer') AS last_active_ts
			FROM ledger_entries
			WHERE workspace_id = $1 AND ts <= $2
			GROUP BY account_id, currency_code
		) b
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS trailing_count
			FROM ledger_entries e
			WHERE e.workspace_id = $1 AND e.account_id = b.account_id AND e.currency_code = b.currency_code
			  AND e.kind <> 'transfer' AND e.ts <= $2
			  AND (e.ts AT TIME ZONE 'UTC')::date > (b.last_active_ts AT TIME ZONE 'UTC')::date - $4::int
		) w ON true
		LEFT JOIN LATERAL (
			SELECT array_agg(d.day ORDER BY d.day DESC) AS recent
			FROM (
				SELECT DISTINCT (e.ts AT TIME ZONE 'UTC')::date AS day
				FROM ledger_entries e
				WHERE e.workspace_id = $1 AND e.account_id = b.account_id AND e.currency_code = b.currency_code
				  AND e.kind <> 'transfer' AND e.ts <= $2
				ORDER BY 1 DESC
				LIMIT $3
			) d
		) r ON true
		ORDER BY b.account_id, b.currency_code
	`

	activity := make([]domain.AccountActivity, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, asOf, recentDays, trailingDays)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				a       domain.AccountActivity
				balance decimal.Decimal
				lastTs  *time.Time
			)
			if err := rows.Scan(&a.AccountID, &a.CurrencyCode, &balance, &lastTs, &a.NonTransferCount, &a.TrailingNonTransfer, &a.RecentNonTransfer); err != nil {
				return err
			}
			a.Balance = balance
			if lastTs != nil {
				utc := lastTs.UTC()
				a.LastTransactionTs = &utc
			}
			activity = append(activity, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list account activity", err)
	}
	return activity, nil
}
