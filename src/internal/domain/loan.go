package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusOpen   LoanStatus = "OPEN"
	LoanStatusPaying LoanStatus = "PAYING"
	LoanStatusClosed LoanStatus = "CLOSED"
)

type LoanType string

const (
	LoanTypePersonal   LoanType = "PERSONAL"
	LoanTypeCreditCard LoanType = "CREDIT_CARD"
	LoanTypeMortgage   LoanType = "MORTGAGE"
)

type Rate string

const (
	RateFour       Rate = "FOUR"
	RateEighteen   Rate = "EIGHTEEN"
	RateTwentyFour Rate = "TWENTY_FOUR"
)

var ratePercentages = map[Rate]int64{
	RateFour:       4,
	RateEighteen:   18,
	RateTwentyFour: 24,
}

func ParseRate(raw string) (Rate, error) {
	rate := Rate(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := ratePercentages[rate]; !ok {
		return "", UnknownRate(raw)
	}
	return rate, nil
}

// Percentage is the yearly rate in whole percent. Unknown tiers report zero.
func (r Rate) Percentage() int64 {
	return ratePercentages[r]
}

type Loan struct {
	ID             int64
	Amount         decimal.Decimal
	Installment    decimal.Decimal
	TotalCount     int
	RemainingCount int
	Rate           Rate
	Type           LoanType
	Status         LoanStatus
	AccountID      int64
	CreatedAt      time.Time
	Version        int64
}

// RecordPayment advances the installment state machine after a successful
// withdrawal. A loan whose last installment is also its first ends CLOSED.
func (l *Loan) RecordPayment() {
	l.RemainingCount--
	if l.RemainingCount == l.TotalCount-1 {
		l.Status = LoanStatusPaying
	}
	if l.RemainingCount == 0 {
		l.Status = LoanStatusClosed
	}
}
