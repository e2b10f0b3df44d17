package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for derived-balance reports.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// TrialBalance aggregates posted journal lines per account for a period.
// Balances are derived here on read; no balance column exists anywhere.
func (r *reportingRepository) TrialBalance(ctx context.Context, orgID, periodID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE j.org_id = $1 AND j.period_id = $2 AND j.status = 'POSTED'
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for period "+periodID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.TotalDebit, &row.TotalCredit)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row for period "+periodID, err)
		}
		row.Net = row.TotalDebit.Sub(row.TotalCredit)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows for period "+periodID, err)
	}
	return result, nil
}
