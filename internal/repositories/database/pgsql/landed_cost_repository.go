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

type PgxLandedCostRepository struct {
	BaseRepository
	journalRepo portsrepo.JournalRepositoryFacade
}

// newPgxLandedCostRepository creates a new repository for landed cost data.
// The journal repository is injected so allocation can commit its distribution
// journal inside the same transaction.
func newPgxLandedCostRepository(pool *pgxpool.Pool, journalRepo portsrepo.JournalRepositoryFacade) portsrepo.LandedCostRepositoryFacade {
	return &PgxLandedCostRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

var _ portsrepo.LandedCostRepositoryFacade = (*PgxLandedCostRepository)(nil)

const documentColumns = `document_id, org_id, invoice_ref, currency_code, clearing_account, status,
	       posted_journal_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveDocument inserts a Draft document with its cost lines in one transaction.
func (r *PgxLandedCostRepository) SaveDocument(ctx context.Context, doc domain.LandedCostDocument) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		m := mapping.ToModelLandedCostDocument(doc)
		docQuery := `
			INSERT INTO landed_cost_documents (
				document_id, org_id, invoice_ref, currency_code, clearing_account, status,
				posted_journal_id, created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err := tx.Exec(ctx, docQuery,
			m.DocumentID, m.OrgID, m.InvoiceRef, m.CurrencyCode, m.ClearingAccount, m.Status,
			m.PostedJournalID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert landed cost document "+m.DocumentID, err)
		}

		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO landed_cost_lines (cost_line_id, document_id, line_no, description, amount, target_account)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, line := range doc.CostLines {
			ml := mapping.ToModelLandedCostLine(line)
			batch.Queue(lineQuery, ml.CostLineID, ml.DocumentID, ml.LineNo, ml.Description, ml.Amount, ml.TargetAccount)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute cost line batch for document "+m.DocumentID, err)
		}
		return nil
	})
}

// FindDocumentByID retrieves a document with its cost lines.
func (r *PgxLandedCostRepository) FindDocumentByID(ctx context.Context, orgID, documentID string) (*domain.LandedCostDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM landed_cost_documents WHERE org_id = $1 AND document_id = $2;`

	var m models.LandedCostDocument
	err := r.Pool.QueryRow(ctx, query, orgID, documentID).Scan(
		&m.DocumentID, &m.OrgID, &m.InvoiceRef, &m.CurrencyCode, &m.ClearingAccount, &m.Status,
		&m.PostedJournalID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find landed cost document "+documentID, err)
	}

	doc := mapping.ToDomainLandedCostDocument(m)

	lineQuery := `
		SELECT cost_line_id, document_id, line_no, description, amount, target_account
		FROM landed_cost_lines
		WHERE document_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost lines for document "+documentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ml models.LandedCostLine
		err := rows.Scan(&ml.CostLineID, &ml.DocumentID, &ml.LineNo, &ml.Description, &ml.Amount, &ml.TargetAccount)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost line row for document "+documentID, err)
		}
		doc.CostLines = append(doc.CostLines, mapping.ToDomainLandedCostLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cost line rows for document "+documentID, err)
	}
	return &doc, nil
}

// FindAllocations retrieves the persisted allocations of a document.
func (r *PgxLandedCostRepository) FindAllocations(ctx context.Context, documentID string) ([]domain.LandedCostAllocation, error) {
	query := `
		SELECT allocation_id, document_id, cost_line_id, invoice_line_no, factor, amount
		FROM landed_cost_allocations
		WHERE document_id = $1
		ORDER BY cost_line_id, invoice_line_no;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for document "+documentID, err)
	}
	defer rows.Close()

	allocations := []domain.LandedCostAllocation{}
	for rows.Next() {
		var m models.LandedCostAllocation
		err := rows.Scan(&m.AllocationID, &m.DocumentID, &m.CostLineID, &m.InvoiceLineNo, &m.Factor, &m.Amount)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row for document "+documentID, err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows for document "+documentID, err)
	}
	return allocations, nil
}

// AllocateDocument persists the allocations, flips the document from Draft to
// Allocated and commits the posted distribution journal, all in one
// transaction. The document row is locked for the duration.
func (r *PgxLandedCostRepository) AllocateDocument(ctx context.Context, doc domain.LandedCostDocument, allocations []domain.LandedCostAllocation,
	journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		status, err := r.lockDocumentStatusTx(ctx, tx, doc.OrgID, doc.DocumentID)
		if err != nil {
			return err
		}
		if status != models.LandedCostDraft {
			return apperrors.NewAppError(409, "document "+doc.DocumentID+" is already allocated", apperrors.ErrState)
		}

		if err := r.journalRepo.InsertJournalInTx(ctx, tx, journal, lines, audit); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		allocQuery := `
			INSERT INTO landed_cost_allocations (allocation_id, document_id, cost_line_id, invoice_line_no, factor, amount)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, alloc := range allocations {
			ma := mapping.ToModelAllocation(alloc)
			batch.Queue(allocQuery, ma.AllocationID, ma.DocumentID, ma.CostLineID, ma.InvoiceLineNo, ma.Factor, ma.Amount)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute allocation batch for document "+doc.DocumentID, err)
		}

		return r.updateDocumentStatusTx(ctx, tx, doc.OrgID, doc.DocumentID,
			models.LandedCostAllocated, &journal.JournalID, journal.CreatedBy, journal.CreatedAt)
	})
}

// UnapplyDocument deletes the allocations, returns the document to Draft and
// commits the posted reversal journal atomically.
func (r *PgxLandedCostRepository) UnapplyDocument(ctx context.Context, doc domain.LandedCostDocument,
	reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry, actorID string, at time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		status, err := r.lockDocumentStatusTx(ctx, tx, doc.OrgID, doc.DocumentID)
		if err != nil {
			return err
		}
		if status != models.LandedCostAllocated {
			return apperrors.NewAppError(409, "document "+doc.DocumentID+" is not allocated", apperrors.ErrState)
		}
		if doc.PostedJournalID == nil {
			return apperrors.NewAppError(500, "document "+doc.DocumentID+" has no posted journal", nil)
		}

		if len(audits) == 0 {
			return apperrors.NewAppError(500, "missing audit entries for unapply of "+doc.DocumentID, nil)
		}
		if err := r.journalRepo.InsertJournalInTx(ctx, tx, reversal, lines, audits[0]); err != nil {
			return err
		}
		auditQuery := `
			INSERT INTO journal_audit (audit_id, journal_id, action, from_status, to_status, actor_id, comment, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, audit := range audits[1:] {
			ma := mapping.ToModelJournalAudit(audit)
			if _, err := tx.Exec(ctx, auditQuery,
				ma.AuditID, ma.JournalID, ma.Action, ma.FromStatus, ma.ToStatus, ma.ActorID, ma.Comment, ma.OccurredAt,
			); err != nil {
				return apperrors.NewAppError(500, "failed to insert audit entry for document "+doc.DocumentID, err)
			}
		}

		if err := r.journalRepo.MarkReversedInTx(ctx, tx, *doc.PostedJournalID, reversal.JournalID, actorID, at); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM landed_cost_allocations WHERE document_id = $1;`, doc.DocumentID); err != nil {
			return apperrors.NewAppError(500, "failed to delete allocations for document "+doc.DocumentID, err)
		}

		return r.updateDocumentStatusTx(ctx, tx, doc.OrgID, doc.DocumentID, models.LandedCostDraft, nil, actorID, at)
	})
}

func (r *PgxLandedCostRepository) lockDocumentStatusTx(ctx context.Context, tx pgx.Tx, orgID, documentID string) (models.LandedCostStatus, error) {
	var status models.LandedCostStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM landed_cost_documents WHERE org_id = $1 AND document_id = $2 FOR UPDATE;`,
		orgID, documentID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock landed cost document "+documentID, err)
	}
	return status, nil
}

func (r *PgxLandedCostRepository) updateDocumentStatusTx(ctx context.Context, tx pgx.Tx, orgID, documentID string,
	status models.LandedCostStatus, postedJournalID *string, actorID string, at time.Time) error {
	query := `
		UPDATE landed_cost_documents
		SET status = $3, posted_journal_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE org_id = $1 AND document_id = $2;
	`
	if _, err := tx.Exec(ctx, query, orgID, documentID, status, postedJournalID, at, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to update landed cost document "+documentID, err)
	}
	return nil
}
