package dto

import "github.com/finbooks/erp_ledger_app/internal/core/domain"

// TransitionRequest carries the optional comment for a lifecycle action
// (required in practice for reject).
type TransitionRequest struct {
	Comment string `json:"comment"`
}

// TransitionResponse reports the journal's status after a lifecycle action.
type TransitionResponse struct {
	JournalID string               `json:"journalID"`
	Status    domain.JournalStatus `json:"status"`
	// For reverse and duplicate: the id of the newly spawned journal.
	SpawnedJournalID string `json:"spawnedJournalID,omitempty"`
}

// BulkTransitionRequest applies one action to a list of journals. Each id is
// processed in its own atomic unit.
type BulkTransitionRequest struct {
	JournalIDs []string `json:"journalIDs" binding:"required,min=1"`
	Action     string   `json:"action" binding:"required,oneof=submit approve reject post cancel"`
	Comment    string   `json:"comment"`
}

// BulkTransitionResult is the per-id outcome of a bulk action.
type BulkTransitionResult struct {
	JournalID string `json:"journalID"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BulkTransitionResponse wraps the per-id results.
type BulkTransitionResponse struct {
	Results []BulkTransitionResult `json:"results"`
}
