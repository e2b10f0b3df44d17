package domain

import (
	"fmt"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
)

// JournalAction is a lifecycle action requested against a journal.
type JournalAction string

const (
	ActionSubmit    JournalAction = "submit"
	ActionApprove   JournalAction = "approve"
	ActionReject    JournalAction = "reject"
	ActionPost      JournalAction = "post"
	ActionReverse   JournalAction = "reverse"
	ActionDuplicate JournalAction = "duplicate"
	ActionCancel    JournalAction = "cancel"

	// ActionCreate appears only in the audit trail; creation is not a transition.
	ActionCreate JournalAction = "create"
)

// transitions is the single source of truth for legal status changes.
// Reverse and duplicate are intentionally absent: reverse leaves the original
// Posted (it spawns a linked journal), duplicate is not a transition at all.
var transitions = map[JournalStatus]map[JournalAction]JournalStatus{
	Draft: {
		ActionSubmit: PendingApproval,
		ActionCancel: Cancelled,
	},
	PendingApproval: {
		ActionApprove: Approved,
		ActionReject:  Rejected,
		ActionCancel:  Cancelled,
	},
	Approved: {
		ActionPost:   Posted,
		ActionCancel: Cancelled,
	},
}

// NextStatus is the pure transition decision: given the journal's current
// status and the requested action, it returns the resulting status or an
// error wrapping apperrors.ErrState. It never mutates anything; applying the
// result (and any side effects) is the posting engine's job.
func NextStatus(current JournalStatus, action JournalAction) (JournalStatus, error) {
	if next, ok := transitions[current][action]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: cannot %s a journal in status %s", apperrors.ErrState, action, current)
}

// CanDuplicate reports whether a journal in the given status may be used as a
// duplication source. Duplication copies the journal but records no transition
// on the source; any non-terminal status qualifies.
func CanDuplicate(current JournalStatus) bool {
	return !current.IsTerminal()
}

// CanReverse reports whether a journal may be reversed. Only a Posted journal
// that has not already been reversed qualifies; the second condition is
// checked against the back-reference by the caller.
func CanReverse(current JournalStatus) bool {
	return current == Posted
}
