package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// LandedCostSvcFacade distributes ancillary costs across invoice lines and
// posts the resulting distribution journal.
type LandedCostSvcFacade interface {
	CreateDocument(ctx context.Context, orgID string, req dto.CreateLandedCostRequest, creatorID string) (*domain.LandedCostDocument, error)
	GetDocument(ctx context.Context, orgID, documentID string) (*domain.LandedCostDocument, error)

	// Allocate computes and persists the allocations for the chosen basis and
	// posts the distribution journal through the posting engine, atomically.
	Allocate(ctx context.Context, orgID, documentID string, basis domain.AllocationBasis, actorID string) (*dto.AllocateLandedCostResponse, error)

	// Unapply reverses the distribution journal and returns the document to Draft.
	Unapply(ctx context.Context, orgID, documentID, actorID string) error
}
