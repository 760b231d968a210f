// Package amortization computes fixed loan installments.
package amortization

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits installments are rounded to.
const Scale int32 = 2

var divideValue = decimal.NewFromInt(2400)

// Installment returns round_half_up((principal + interest) / count) where
// interest is round_half_up(principal * ratePercent * (count + 1) / 2400).
// Both divisions round exactly, with no intermediate truncation.
func Installment(principal decimal.Decimal, count int, ratePercent int64) (decimal.Decimal, error) {
	if count < 1 {
		return decimal.Zero, fmt.Errorf("installment count must be positive, got %d", count)
	}
	if principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("principal must not be negative, got %s", principal)
	}

	interest := Interest(principal, count, ratePercent)
	return principal.Add(interest).DivRound(decimal.NewFromInt(int64(count)), Scale), nil
}

func Interest(principal decimal.Decimal, count int, ratePercent int64) decimal.Decimal {
	return principal.
		Mul(decimal.NewFromInt(ratePercent)).
		Mul(decimal.NewFromInt(int64(count) + 1)).
		DivRound(divideValue, Scale)
}
