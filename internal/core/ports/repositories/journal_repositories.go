package repositories

import (
	"context"
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalRepositoryFacade defines persistence operations for journals, their
// lines and their audit trail. All state-mutating methods execute as a single
// database transaction and re-check the journal's current status under a row
// lock immediately before writing, returning an error wrapping
// apperrors.ErrState when the status changed concurrently.
type JournalRepositoryFacade interface {
	// SaveJournal inserts a new journal with its lines and an initial audit entry.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error

	FindJournalByID(ctx context.Context, orgID, journalID string) (*domain.Journal, error)
	FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	ListJournals(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
	FindAuditTrail(ctx context.Context, journalID string) ([]domain.AuditEntry, error)

	// TransitionJournal applies a plain status change (submit, approve, reject,
	// cancel) with an optimistic from-status check under FOR UPDATE.
	TransitionJournal(ctx context.Context, orgID, journalID string, from, to domain.JournalStatus, audit domain.AuditEntry) error

	// PostJournal moves an Approved journal to Posted. Inside the transaction it
	// locks the journal row, re-reads the lines, runs the supplied authoritative
	// validation, and locks the accounting period row to verify it is still
	// open. Any failure rolls the whole unit back.
	PostJournal(ctx context.Context, orgID, journalID, actorID string, at time.Time,
		validate func(journal *domain.Journal, lines []domain.JournalLine) error) error

	// SaveReversal inserts the already-posted reversal journal and links it to
	// the original in one transaction. The original must still be Posted and
	// not yet reversed.
	SaveReversal(ctx context.Context, originalID string, reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry) error

	// ReplaceJournalLines swaps the full line set of a journal that is still
	// Draft or PendingApproval.
	ReplaceJournalLines(ctx context.Context, orgID, journalID string, lines []domain.JournalLine, actorID string, at time.Time) error

	// InsertJournalInTx inserts a journal with lines as part of a caller-owned
	// transaction. The accounting period row is locked and checked open. Used
	// by collaborators (landed cost allocation) that must commit a posted
	// journal atomically with their own writes.
	InsertJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error

	// MarkReversedInTx sets the reversed_by back-reference on the original
	// journal as part of a caller-owned transaction.
	MarkReversedInTx(ctx context.Context, tx pgx.Tx, originalID, reversalID, actorID string, at time.Time) error
}
