package domain_test

import (
	"errors"
	"testing"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextStatus_LegalTransitions(t *testing.T) {
	cases := []struct {
		from   domain.JournalStatus
		action domain.JournalAction
		want   domain.JournalStatus
	}{
		{domain.Draft, domain.ActionSubmit, domain.PendingApproval},
		{domain.Draft, domain.ActionCancel, domain.Cancelled},
		{domain.PendingApproval, domain.ActionApprove, domain.Approved},
		{domain.PendingApproval, domain.ActionReject, domain.Rejected},
		{domain.PendingApproval, domain.ActionCancel, domain.Cancelled},
		{domain.Approved, domain.ActionPost, domain.Posted},
		{domain.Approved, domain.ActionCancel, domain.Cancelled},
	}

	for _, tc := range cases {
		got, err := domain.NextStatus(tc.from, tc.action)
		assert.NoError(t, err, "%s on %s", tc.action, tc.from)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextStatus_IllegalPairsAlwaysStateError(t *testing.T) {
	statuses := []domain.JournalStatus{
		domain.Draft, domain.PendingApproval, domain.Approved,
		domain.Posted, domain.Rejected, domain.Reversed, domain.Cancelled,
	}
	actions := []domain.JournalAction{
		domain.ActionSubmit, domain.ActionApprove, domain.ActionReject,
		domain.ActionPost, domain.ActionCancel,
	}

	legal := map[string]bool{
		"DRAFT/submit":             true,
		"DRAFT/cancel":             true,
		"PENDING_APPROVAL/approve": true,
		"PENDING_APPROVAL/reject":  true,
		"PENDING_APPROVAL/cancel":  true,
		"APPROVED/post":            true,
		"APPROVED/cancel":          true,
	}

	for _, s := range statuses {
		for _, a := range actions {
			got, err := domain.NextStatus(s, a)
			if legal[string(s)+"/"+string(a)] {
				assert.NoError(t, err)
				continue
			}
			assert.Error(t, err, "%s on %s must fail", a, s)
			assert.True(t, errors.Is(err, apperrors.ErrState), "%s on %s wraps ErrState", a, s)
			assert.Equal(t, s, got, "status unchanged on illegal transition")
		}
	}
}

func TestNextStatus_PostedIsTerminalForTransitions(t *testing.T) {
	_, err := domain.NextStatus(domain.Posted, domain.ActionCancel)
	assert.ErrorIs(t, err, apperrors.ErrState)

	_, err = domain.NextStatus(domain.Posted, domain.ActionPost)
	assert.ErrorIs(t, err, apperrors.ErrState)
}

func TestCanDuplicate(t *testing.T) {
	assert.True(t, domain.CanDuplicate(domain.Draft))
	assert.True(t, domain.CanDuplicate(domain.PendingApproval))
	assert.True(t, domain.CanDuplicate(domain.Approved))
	assert.False(t, domain.CanDuplicate(domain.Posted))
	assert.False(t, domain.CanDuplicate(domain.Rejected))
	assert.False(t, domain.CanDuplicate(domain.Cancelled))
	assert.False(t, domain.CanDuplicate(domain.Reversed))
}

func TestCanReverse(t *testing.T) {
	assert.True(t, domain.CanReverse(domain.Posted))
	assert.False(t, domain.CanReverse(domain.Approved))
	assert.False(t, domain.CanReverse(domain.Draft))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.Posted.IsTerminal())
	assert.True(t, domain.Rejected.IsTerminal())
	assert.True(t, domain.Reversed.IsTerminal())
	assert.True(t, domain.Cancelled.IsTerminal())
	assert.False(t, domain.Draft.IsTerminal())
	assert.False(t, domain.PendingApproval.IsTerminal())
	assert.False(t, domain.Approved.IsTerminal())
}
