package accounting

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumDebits totals the debit side of a line set, rounded to the given precision.
func SumDebits(lines []domain.JournalLine, places int32) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit.Round(places))
	}
	return sum
}

// SumCredits totals the credit side of a line set, rounded to the given precision.
func SumCredits(lines []domain.JournalLine, places int32) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit.Round(places))
	}
	return sum
}

// BalanceDifference returns sum(debit) - sum(credit) after rounding each side
// to the currency's minor unit. Zero means the journal balances.
func BalanceDifference(lines []domain.JournalLine, places int32) decimal.Decimal {
	return SumDebits(lines, places).Sub(SumCredits(lines, places))
}

// ReverseLines produces the exact negation of a line set: every debit becomes
// an equal credit and vice versa. Identifiers and audit fields are left for
// the caller to assign.
func ReverseLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Credit,
			Credit:      l.Debit,
			CostCenter:  l.CostCenter,
			Department:  l.Department,
		}
	}
	return out
}

// Allocate distributes total across the given weights. Factors are computed at
// full precision; each share is rounded to places, and the LAST element
// absorbs the rounding residual so the shares always sum to total exactly.
// Weights must sum to a positive value.
func Allocate(total decimal.Decimal, weights []decimal.Decimal, places int32) (factors []decimal.Decimal, amounts []decimal.Decimal) {
	totalWeight := decimal.Zero
	for _, w := range weights {
		totalWeight = totalWeight.Add(w)
	}

	factors = make([]decimal.Decimal, len(weights))
	amounts = make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		factors[i] = w.DivRound(totalWeight, factorPrecision)
		if i == len(weights)-1 {
			amounts[i] = total.Sub(allocated)
			break
		}
		amounts[i] = total.Mul(factors[i]).Round(places)
		allocated = allocated.Add(amounts[i])
	}
	return factors, amounts
}

// factorPrecision keeps allocation factors effectively unrounded; 16 places
// exceeds any realistic line count and currency precision combination.
const factorPrecision = 16
