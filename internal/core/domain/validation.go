package domain

import "github.com/shopspring/decimal"

// Validation failure codes emitted by the balance validator.
const (
	FailureNoLines         = "no_lines"
	FailureAmountInvalid   = "amount_invalid"
	FailureAccountMissing  = "account_missing"
	FailureAccountInactive = "account_inactive"
	FailureUnbalanced      = "unbalanced"
)

// ValidationFailure is one structured finding from the balance validator.
// LineNo is 0 for journal-level failures. Difference carries the signed
// debit-minus-credit mismatch for the unbalanced failure.
type ValidationFailure struct {
	Code       string           `json:"code"`
	LineNo     int              `json:"lineNo,omitempty"`
	Message    string           `json:"message"`
	Difference *decimal.Decimal `json:"difference,omitempty"`
}
