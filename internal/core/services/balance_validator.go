package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/utils/accounting"
)

// defaultDecimalPlaces is used when the journal currency is not registered.
const defaultDecimalPlaces = 2

// ValidationFailuresError carries the structured findings of a failed
// authoritative validation. It wraps apperrors.ErrValidation so callers can
// classify it, while handlers extract the per-line detail with errors.As.
type ValidationFailuresError struct {
	Failures []domain.ValidationFailure
}

func (e *ValidationFailuresError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("journal validation failed: %s", strings.Join(msgs, "; "))
}

func (e *ValidationFailuresError) Unwrap() error {
	return apperrors.ErrValidation
}

// BalanceValidator verifies that a candidate journal is structurally and
// arithmetically sound. It has no side effects and is used both as a
// pre-submit check (informational) and as the mandatory gate inside the
// posting transaction (authoritative).
type BalanceValidator struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewBalanceValidator creates a BalanceValidator.
func NewBalanceValidator(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) *BalanceValidator {
	return &BalanceValidator{accountRepo: accountRepo, currencyRepo: currencyRepo}
}

// Validate runs the ordered pipeline: structural, per-line amounts,
// referential account checks, arithmetic balance. Structural failures
// short-circuit; the later stages accumulate. The returned error reports
// collaborator failures only, never findings.
func (v *BalanceValidator) Validate(ctx context.Context, orgID string, journal *domain.Journal, lines []domain.JournalLine) ([]domain.ValidationFailure, error) {
	if len(lines) == 0 {
		return []domain.ValidationFailure{{
			Code:    domain.FailureNoLines,
			Message: "journal must have at least one line",
		}}, nil
	}

	var failures []domain.ValidationFailure

	// Account ids come from every line, amount-valid or not, so a line with
	// only an amount defect is not also reported against its (real) account.
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if f := validateLineAmounts(line); f != nil {
			failures = append(failures, *f)
		}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accountsMap, err := v.accountRepo.FindAccountsByIDs(ctx, orgID, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}
	for _, line := range lines {
		acc, found := accountsMap[line.AccountID]
		if !found {
			failures = append(failures, domain.ValidationFailure{
				Code:    domain.FailureAccountMissing,
				LineNo:  line.LineNo,
				Message: fmt.Sprintf("line %d references unknown account %s", line.LineNo, line.AccountID),
			})
			continue
		}
		if !acc.IsActive {
			failures = append(failures, domain.ValidationFailure{
				Code:    domain.FailureAccountInactive,
				LineNo:  line.LineNo,
				Message: fmt.Sprintf("line %d references inactive account %s", line.LineNo, line.AccountID),
			})
		}
	}

	places, err := v.decimalPlaces(ctx, journal.CurrencyCode)
	if err != nil {
		return nil, err
	}
	diff := accounting.BalanceDifference(lines, places)
	if !diff.IsZero() {
		d := diff
		failures = append(failures, domain.ValidationFailure{
			Code:       domain.FailureUnbalanced,
			Message:    fmt.Sprintf("journal does not balance: debits exceed credits by %s", diff.StringFixed(places)),
			Difference: &d,
		})
	}

	return failures, nil
}

// ValidateAuthoritative runs Validate and converts findings into a
// ValidationFailuresError suitable for aborting a posting transaction.
func (v *BalanceValidator) ValidateAuthoritative(ctx context.Context, orgID string, journal *domain.Journal, lines []domain.JournalLine) error {
	failures, err := v.Validate(ctx, orgID, journal, lines)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return &ValidationFailuresError{Failures: failures}
	}
	return nil
}

func (v *BalanceValidator) decimalPlaces(ctx context.Context, currencyCode string) (int32, error) {
	currency, err := v.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return defaultDecimalPlaces, nil
		}
		return 0, fmt.Errorf("failed to resolve currency %s: %w", currencyCode, err)
	}
	return currency.DecimalPlaces, nil
}

// validateLineAmounts checks the debit-XOR-credit invariant for one line.
func validateLineAmounts(line domain.JournalLine) *domain.ValidationFailure {
	hasDebit := line.Debit.IsPositive()
	hasCredit := line.Credit.IsPositive()
	switch {
	case line.Debit.IsNegative() || line.Credit.IsNegative():
		return &domain.ValidationFailure{
			Code:    domain.FailureAmountInvalid,
			LineNo:  line.LineNo,
			Message: fmt.Sprintf("line %d has a negative amount", line.LineNo),
		}
	case hasDebit && hasCredit:
		return &domain.ValidationFailure{
			Code:    domain.FailureAmountInvalid,
			LineNo:  line.LineNo,
			Message: fmt.Sprintf("line %d has both debit and credit set", line.LineNo),
		}
	case !hasDebit && !hasCredit:
		return &domain.ValidationFailure{
			Code:    domain.FailureAmountInvalid,
			LineNo:  line.LineNo,
			Message: fmt.Sprintf("line %d has neither debit nor credit set", line.LineNo),
		}
	}
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
