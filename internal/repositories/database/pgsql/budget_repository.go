package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBudgetRepository stores the append-only plan and comment histories.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// ListPlanLines returns every plan version of the months in rng, oldest first.
func (r *PgxBudgetRepository) ListPlanLines(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetPlanLine, error) {
	query := `
		SELECT month, direction, category, kind, currency_code, value, inserted_at
		FROM budget_plan_lines
		WHERE workspace_id = $1 AND month BETWEEN $2 AND $3
		ORDER BY inserted_at, plan_line_id
	`

	lines := make([]domain.BudgetPlanLine, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, rng.From.FirstDay(), rng.To.FirstDay())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				l                   domain.BudgetPlanLine
				month               time.Time
				direction, planKind string
			)
			if err := rows.Scan(&month, &direction, &l.Category, &planKind, &l.CurrencyCode, &l.Value, &l.InsertedAt); err != nil {
				return err
			}
			l.WorkspaceID = workspaceID
			l.Month = domain.MonthOf(month)
			l.Direction = domain.Direction(direction)
			l.Kind = domain.PlanKind(planKind)
			lines = append(lines, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list plan lines", err)
	}
	return lines, nil
}

// ListComments returns every comment version of the months in rng, oldest first.
func (r *PgxBudgetRepository) ListComments(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetComment, error) {
	query := `
		SELECT month, direction, category, comment, inserted_at
		FROM budget_comments
		WHERE workspace_id = $1 AND month BETWEEN $2 AND $3
		ORDER BY inserted_at, comment_id
	`

	comments := make([]domain.BudgetComment, 0)
	err := r.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, workspaceID, rng.From.FirstDay(), rng.To.FirstDay())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				c         domain.BudgetComment
				month     time.Time
				direction string
			)
			if err := rows.Scan(&month, &direction, &c.Category, &c.Comment, &c.InsertedAt); err != nil {
				return err
			}
			c.WorkspaceID = workspaceID
			c.Month = domain.MonthOf(month)
			c.Direction = domain.Direction(direction)
			comments = append(comments, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to list comments", err)
	}
	return comments, nil
}

// AppendPlanLines inserts all lines in one transaction.
func (r *PgxBudgetRepository) AppendPlanLines(ctx context.Context, lines []domain.BudgetPlanLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO budget_plan_lines (workspace_id, month, direction, category, kind, currency_code, value, inserted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query, l.WorkspaceID, l.Month.FirstDay(), string(l.Direction), l.Category,
			string(l.Kind), l.CurrencyCode, l.Value, l.InsertedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewDataSourceError("failed to insert plan lines", err)
	}
	return r.Commit(ctx, tx)
}

// AppendComment inserts one comment version.
func (r *PgxBudgetRepository) AppendComment(ctx context.Context, comment domain.BudgetComment) error {
	query := `
		INSERT INTO budget_comments (workspace_id, month, direction, category, comment, inserted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.Pool.Exec(ctx, query, comment.WorkspaceID, comment.Month.FirstDay(), string(comment.Direction),
		comment.Category, comment.Comment, comment.InsertedAt)
	if err != nil {
		return apperrors.NewDataSourceError("failed to insert comment", err)
	}
	return nil
}
