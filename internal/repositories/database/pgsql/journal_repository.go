package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
	"github.com/finbooks/erp_ledger_app/internal/utils/mapping"
	"github.com/finbooks/erp_ledger_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal, line and audit data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, org_id, period_id, journal_type, journal_date, currency_code,
	       reference, description, status, approved_by, approved_at, posted_by, posted_at,
	       reverses_journal_id, reversed_by_journal_id,
	       created_at, created_by, last_updated_at, last_updated_by`

const insertJournalQuery = `
	INSERT INTO journals (
		journal_id, org_id, period_id, journal_type, journal_date, currency_code,
		reference, description, status, approved_by, approved_at, posted_by, posted_at,
		reverses_journal_id, reversed_by_journal_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

const insertLineQuery = `
	INSERT INTO journal_lines (
		line_id, journal_id, line_no, account_id, description, debit, credit,
		cost_center, department, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

const insertAuditQuery = `
	INSERT INTO journal_audit (audit_id, journal_id, action, from_status, to_status, actor_id, comment, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// SaveJournal inserts a new journal with its lines and the initial audit entry
// within a DB transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := r.insertJournalTx(ctx, tx, journal, lines, audit); err != nil {
			return err
		}
		return nil
	})
}

// insertJournalTx inserts the journal header, batches its lines and writes the
// audit entry using the caller's transaction.
func (r *PgxJournalRepository) insertJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	m := mapping.ToModelJournal(journal)

	_, err := tx.Exec(ctx, insertJournalQuery,
		m.JournalID, m.OrgID, m.PeriodID, m.JournalType, m.JournalDate, m.CurrencyCode,
		m.Reference, m.Description, m.Status, m.ApprovedBy, m.ApprovedAt, m.PostedBy, m.PostedAt,
		m.ReversesJournalID, m.ReversedByJournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			ml.LineID, ml.JournalID, ml.LineNo, ml.AccountID, ml.Description, ml.Debit, ml.Credit,
			ml.CostCenter, ml.Department, ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	ma := mapping.ToModelJournalAudit(audit)
	batch.Queue(insertAuditQuery,
		ma.AuditID, ma.JournalID, ma.Action, ma.FromStatus, ma.ToStatus, ma.ActorID, ma.Comment, ma.OccurredAt,
	)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for journal "+m.JournalID, err)
	}
	return nil
}

// lockPeriodOpenTx takes the period row lock shared with ClosePeriod and
// verifies the period still accepts postings.
func lockPeriodOpenTx(ctx context.Context, tx pgx.Tx, orgID, periodID string) error {
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
		return apperrors.ErrPeriodClosed
	}
	return nil
}

// lockJournalStatusTx locks the journal row and returns its current status.
func lockJournalStatusTx(ctx context.Context, tx pgx.Tx, orgID, journalID string) (domain.JournalStatus, error) {
	var status models.JournalStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM journals WHERE org_id = $1 AND journal_id = $2 FOR UPDATE;`,
		orgID, journalID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock journal "+journalID, err)
	}
	return domain.JournalStatus(status), nil
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, orgID, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE org_id = $1 AND journal_id = $2;`

	m, err := scanJournalRow(r.Pool.QueryRow(ctx, query, orgID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(*m)
	return &domainJournal, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalRow(row rowScanner) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID, &m.OrgID, &m.PeriodID, &m.JournalType, &m.JournalDate, &m.CurrencyCode,
		&m.Reference, &m.Description, &m.Status, &m.ApprovedBy, &m.ApprovedAt, &m.PostedBy, &m.PostedAt,
		&m.ReversesJournalID, &m.ReversedByJournalID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindJournalLines retrieves all lines of a journal in document order.
func (r *PgxJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, line_no, account_id, description, debit, credit,
		       cost_center, department, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID, &l.JournalID, &l.LineNo, &l.AccountID, &l.Description, &l.Debit, &l.Credit,
			&l.CostCenter, &l.Department, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		modelLines = append(modelLines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal "+journalID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListJournals retrieves a paginated list of journals for an organization
// using token-based pagination over (journal_date, created_at).
func (r *PgxJournalRepository) ListJournals(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals WHERE org_id = $1`
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	args := []interface{}{orgID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for org "+orgID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for org "+orgID, scanErr)
		}
		modelJournals = append(modelJournals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for org "+orgID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		last := modelJournals[limit-1]
		newToken := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}
	return domainJournals, nextTokenVal, nil
}

// FindAuditTrail retrieves the lifecycle audit entries of a journal, oldest first.
func (r *PgxJournalRepository) FindAuditTrail(ctx context.Context, journalID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, journal_id, action, from_status, to_status, actor_id, comment, occurred_at
		FROM journal_audit
		WHERE journal_id = $1
		ORDER BY occurred_at, audit_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit trail for journal "+journalID, err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.JournalAudit
		err := rows.Scan(&m.AuditID, &m.JournalID, &m.Action, &m.FromStatus, &m.ToStatus, &m.ActorID, &m.Comment, &m.OccurredAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row for journal "+journalID, err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows for journal "+journalID, err)
	}
	return entries, nil
}

// TransitionJournal applies a plain status change with an optimistic from-status
// check under FOR UPDATE. Approval stamps approved_by/approved_at.
func (r *PgxJournalRepository) TransitionJournal(ctx context.Context, orgID, journalID string, from, to domain.JournalStatus, audit domain.AuditEntry) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		current, err := lockJournalStatusTx(ctx, tx, orgID, journalID)
		if err != nil {
			return err
		}
		if current != from {
			return apperrors.NewAppError(409, "journal "+journalID+" status changed concurrently", apperrors.ErrState)
		}

		query := `
			UPDATE journals
			SET status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE org_id = $1 AND journal_id = $2;
		`
		args := []interface{}{orgID, journalID, to, audit.OccurredAt, audit.ActorID}
		if to == domain.Approved {
			query = `
				UPDATE journals
				SET status = $3, last_updated_at = $4, last_updated_by = $5,
				    approved_by = $5, approved_at = $4
				WHERE org_id = $1 AND journal_id = $2;
			`
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return apperrors.NewAppError(500, "failed to update journal status for "+journalID, err)
		}

		ma := mapping.ToModelJournalAudit(audit)
		if _, err := tx.Exec(ctx, insertAuditQuery,
			ma.AuditID, ma.JournalID, ma.Action, ma.FromStatus, ma.ToStatus, ma.ActorID, ma.Comment, ma.OccurredAt,
		); err != nil {
			return apperrors.NewAppError(500, "failed to insert audit entry for "+journalID, err)
		}
		return nil
	})
}

// PostJournal moves an Approved journal to Posted. Inside the transaction it
// locks the journal row, re-reads the lines, runs the supplied authoritative
// validation and locks the accounting period row to verify it is still open.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, orgID, journalID, actorID string, at time.Time,
	validate func(journal *domain.Journal, lines []domain.JournalLine) error) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + journalColumns + ` FROM journals WHERE org_id = $1 AND journal_id = $2 FOR UPDATE;`
		m, err := scanJournalRow(tx.QueryRow(ctx, query, orgID, journalID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock journal "+journalID, err)
		}
		if m.Status != models.Approved {
			return apperrors.NewAppError(409, "journal "+journalID+" status changed concurrently", apperrors.ErrState)
		}

		if err := lockPeriodOpenTx(ctx, tx, orgID, m.PeriodID); err != nil {
			return err
		}

		journal := mapping.ToDomainJournal(*m)
		lines, err := r.findLinesTx(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if err := validate(&journal, lines); err != nil {
			return err
		}

		updateQuery := `
			UPDATE journals
			SET status = $3, posted_by = $4, posted_at = $5, last_updated_at = $5, last_updated_by = $4
			WHERE org_id = $1 AND journal_id = $2;
		`
		if _, err := tx.Exec(ctx, updateQuery, orgID, journalID, models.Posted, actorID, at); err != nil {
			return apperrors.NewAppError(500, "failed to mark journal "+journalID+" posted", err)
		}

		if _, err := tx.Exec(ctx, insertAuditQuery,
			uuid.NewString(), journalID, string(domain.ActionPost),
			string(domain.Approved), string(domain.Posted), actorID, "", at,
		); err != nil {
			return apperrors.NewAppError(500, "failed to insert post audit entry for "+journalID, err)
		}
		return nil
	})
}

func (r *PgxJournalRepository) findLinesTx(ctx context.Context, tx pgx.Tx, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, line_no, account_id, description, debit, credit,
		       cost_center, department, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := tx.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID, &l.JournalID, &l.LineNo, &l.AccountID, &l.Description, &l.Debit, &l.Credit,
			&l.CostCenter, &l.Department, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		modelLines = append(modelLines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal "+journalID, err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// SaveReversal inserts the already-posted reversal journal, writes both audit
// entries and links the original via its back-reference, in one transaction.
// The original must still be Posted and not yet reversed.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, originalID string, reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		var status models.JournalStatus
		var reversedBy *string
		err := tx.QueryRow(ctx,
			`SELECT status, reversed_by_journal_id FROM journals WHERE org_id = $1 AND journal_id = $2 FOR UPDATE;`,
			reversal.OrgID, originalID,
		).Scan(&status, &reversedBy)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock journal "+originalID, err)
		}
		if status != models.Posted {
			return apperrors.NewAppError(409, "journal "+originalID+" status changed concurrently", apperrors.ErrState)
		}
		if reversedBy != nil {
			return apperrors.NewAppError(409, "journal "+originalID+" is already reversed", apperrors.ErrConflict)
		}

		if err := lockPeriodOpenTx(ctx, tx, reversal.OrgID, reversal.PeriodID); err != nil {
			return err
		}

		// Insert the reversal with its own audit entry, then the original's.
		if len(audits) == 0 {
			return apperrors.NewAppError(500, "missing audit entries for reversal of "+originalID, nil)
		}
		if err := r.insertJournalTx(ctx, tx, reversal, lines, audits[0]); err != nil {
			return err
		}
		for _, audit := range audits[1:] {
			ma := mapping.ToModelJournalAudit(audit)
			if _, err := tx.Exec(ctx, insertAuditQuery,
				ma.AuditID, ma.JournalID, ma.Action, ma.FromStatus, ma.ToStatus, ma.ActorID, ma.Comment, ma.OccurredAt,
			); err != nil {
				return apperrors.NewAppError(500, "failed to insert audit entry for "+originalID, err)
			}
		}

		return r.markReversedTx(ctx, tx, originalID, reversal.JournalID, reversal.CreatedBy, reversal.CreatedAt)
	})
}

func (r *PgxJournalRepository) markReversedTx(ctx context.Context, tx pgx.Tx, originalID, reversalID, actorID string, at time.Time) error {
	query := `
		UPDATE journals
		SET reversed_by_journal_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, originalID, reversalID, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal for journal "+originalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceJournalLines swaps the full line set of a journal that is still
// Draft or PendingApproval.
func (r *PgxJournalRepository) ReplaceJournalLines(ctx context.Context, orgID, journalID string, lines []domain.JournalLine, actorID string, at time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		current, err := lockJournalStatusTx(ctx, tx, orgID, journalID)
		if err != nil {
			return err
		}
		if current != domain.Draft && current != domain.PendingApproval {
			return apperrors.NewAppError(409, "journal "+journalID+" lines are immutable in status "+string(current), apperrors.ErrState)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
			return apperrors.NewAppError(500, "failed to delete lines for journal "+journalID, err)
		}

		batch := &pgx.Batch{}
		for _, line := range lines {
			ml := mapping.ToModelJournalLine(line)
			batch.Queue(insertLineQuery,
				ml.LineID, ml.JournalID, ml.LineNo, ml.AccountID, ml.Description, ml.Debit, ml.Credit,
				ml.CostCenter, ml.Department, ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute line batch for journal "+journalID, err)
		}

		updateQuery := `
			UPDATE journals SET last_updated_at = $3, last_updated_by = $4
			WHERE org_id = $1 AND journal_id = $2;
		`
		if _, err := tx.Exec(ctx, updateQuery, orgID, journalID, at, actorID); err != nil {
			return apperrors.NewAppError(500, "failed to touch journal "+journalID, err)
		}
		return nil
	})
}

// InsertJournalInTx inserts a journal with lines as part of a caller-owned
// transaction, after taking the period row lock and checking it is open.
func (r *PgxJournalRepository) InsertJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	if err := lockPeriodOpenTx(ctx, tx, journal.OrgID, journal.PeriodID); err != nil {
		return err
	}
	return r.insertJournalTx(ctx, tx, journal, lines, audit)
}

// MarkReversedInTx sets the reversed_by back-reference on the original journal
// as part of a caller-owned transaction.
func (r *PgxJournalRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, originalID, reversalID, actorID string, at time.Time) error {
	return r.markReversedTx(ctx, tx, originalID, reversalID, actorID, at)
}
