package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for journal reference sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// NextSequence atomically increments and returns the per-org, per-period
// sequence counter. The upsert makes the first reference of a new scope 1
// without a separate initialization step.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, orgID, periodID string) (int64, error) {
	query := `
		INSERT INTO journal_sequences (org_id, period_id, last_no)
		VALUES ($1, $2, 1)
		ON CONFLICT (org_id, period_id)
		DO UPDATE SET last_no = journal_sequences.last_no + 1
		RETURNING last_no;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query, orgID, periodID).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance journal sequence for period "+periodID, err)
	}
	return next, nil
}
