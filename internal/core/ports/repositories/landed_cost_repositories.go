package repositories

import (
	"context"
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// LandedCostRepositoryFacade defines persistence operations for landed cost
// documents and their derived allocations.
type LandedCostRepositoryFacade interface {
	SaveDocument(ctx context.Context, doc domain.LandedCostDocument) error
	FindDocumentByID(ctx context.Context, orgID, documentID string) (*domain.LandedCostDocument, error)
	FindAllocations(ctx context.Context, documentID string) ([]domain.LandedCostAllocation, error)

	// AllocateDocument persists the allocations, flips the document from Draft
	// to Allocated and commits the posted distribution journal, all in one
	// transaction. The document row is locked; an already-Allocated document
	// fails with an error wrapping apperrors.ErrState.
	AllocateDocument(ctx context.Context, doc domain.LandedCostDocument, allocations []domain.LandedCostAllocation,
		journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error

	// UnapplyDocument deletes the allocations, returns the document to Draft
	// and commits the posted reversal journal atomically.
	UnapplyDocument(ctx context.Context, doc domain.LandedCostDocument,
		reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry, actorID string, at time.Time) error
}
