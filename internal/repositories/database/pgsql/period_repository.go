package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
	"github.com/finbooks/erp_ledger_app/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, org_id, name, start_date, end_date, status,
	       created_at, created_by, last_updated_at, last_updated_by`

// SavePeriod inserts a new accounting period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (
			period_id, org_id, name, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.OrgID, m.Name, m.StartDate, m.EndDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, orgID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE org_id = $1 AND period_id = $2;`

	var m models.AccountingPeriod
	err := r.Pool.QueryRow(ctx, query, orgID, periodID).Scan(
		&m.PeriodID, &m.OrgID, &m.Name, &m.StartDate, &m.EndDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by ID "+periodID, err)
	}

	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriods retrieves all periods of an organization ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, orgID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE org_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for org "+orgID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		var m models.AccountingPeriod
		err := rows.Scan(
			&m.PeriodID, &m.OrgID, &m.Name, &m.StartDate, &m.EndDate, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row for org "+orgID, err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows for org "+orgID, err)
	}
	return periods, nil
}

// ClosePeriod flips the period to Closed under the same row lock journal
// posting takes, so a close cannot interleave with a concurrent post. It fails
// while any journal in the period is non-terminal.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		var status models.PeriodStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM accounting_periods WHERE org_id = $1 AND period_id = $2 FOR UPDATE;`,
			orgID, periodID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock period "+periodID, err)
		}
		if status != models.PeriodOpen {
			return apperrors.NewAppError(409, "period "+periodID+" is not open", apperrors.ErrState)
		}

		var nonTerminal int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM journals WHERE org_id = $1 AND period_id = $2 AND status NOT IN ('POSTED', 'REJECTED', 'REVERSED', 'CANCELLED');`,
			orgID, periodID,
		).Scan(&nonTerminal)
		if err != nil {
			return apperrors.NewAppError(500, "failed to count open journals for period "+periodID, err)
		}
		if nonTerminal > 0 {
			return apperrors.NewAppError(409, "period "+periodID+" still has journals awaiting a terminal status", apperrors.ErrPeriodClose)
		}

		return r.setPeriodStatusTx(ctx, tx, orgID, periodID, models.PeriodClosed, actorID, at)
	})
}

// ReopenPeriod flips a Closed period back to Open.
func (r *PgxPeriodRepository) ReopenPeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		var status models.PeriodStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM accounting_periods WHERE org_id = $1 AND period_id = $2 FOR UPDATE;`,
			orgID, periodID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock period "+periodID, err)
		}
		if status != models.PeriodClosed {
			return apperrors.NewAppError(409, "period "+periodID+" is not closed", apperrors.ErrState)
		}

		return r.setPeriodStatusTx(ctx, tx, orgID, periodID, models.PeriodOpen, actorID, at)
	})
}

func (r *PgxPeriodRepository) setPeriodStatusTx(ctx context.Context, tx pgx.Tx, orgID, periodID string, status models.PeriodStatus, actorID string, at time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE org_id = $1 AND period_id = $2;
	`
	if _, err := tx.Exec(ctx, query, orgID, periodID, status, at, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to update period status for "+periodID, err)
	}
	return nil
}
