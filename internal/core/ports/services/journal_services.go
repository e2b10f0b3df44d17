package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// JournalSvcFacade is the posting engine: the only component permitted to
// persist journal status changes.
type JournalSvcFacade interface {
	// CreateJournal stores a Draft journal and returns informational
	// validation warnings alongside it.
	CreateJournal(ctx context.Context, orgID string, req dto.CreateJournalRequest, creatorID string) (*dto.CreateJournalResponse, error)

	GetJournalByID(ctx context.Context, orgID, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, orgID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
	GetAuditTrail(ctx context.Context, orgID, journalID string) ([]domain.AuditEntry, error)

	// ValidateJournal runs the balance validator without side effects
	// (pre-submit check).
	ValidateJournal(ctx context.Context, orgID, journalID string) ([]domain.ValidationFailure, error)

	// ReplaceLines swaps the line set of a Draft or PendingApproval journal.
	ReplaceLines(ctx context.Context, orgID, journalID string, req dto.UpdateJournalLinesRequest, actorID string) error

	// Transition applies submit, approve, reject, post or cancel.
	Transition(ctx context.Context, orgID, journalID string, action domain.JournalAction, actorID, comment string) (*domain.Journal, error)

	// Reverse spawns and posts the negating journal; the original stays Posted
	// and gains a reversed-by back-reference.
	Reverse(ctx context.Context, orgID, journalID, actorID string) (*domain.Journal, error)

	// Duplicate copies header and lines into a brand-new Draft journal; the
	// source is untouched.
	Duplicate(ctx context.Context, orgID, journalID, actorID string) (*domain.Journal, error)

	// BulkTransition processes each id in its own atomic unit; one failure
	// never rolls back or skips the others.
	BulkTransition(ctx context.Context, orgID string, journalIDs []string, action domain.JournalAction, actorID, comment string) []dto.BulkTransitionResult
}
