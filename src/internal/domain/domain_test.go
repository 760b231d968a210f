package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStatusAvailability(t *testing.T) {
	cases := []struct {
		status   domain.AccountStatus
		deposit  bool
		withdraw bool
	}{
		{domain.AccountStatusOpen, true, true},
		{domain.AccountStatusClosed, false, false},
		{domain.AccountStatusBlocked, false, false},
		{domain.AccountStatusDepositBlocked, false, true},
		{domain.AccountStatusWithdrawalBlocked, true, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.deposit, tc.status.AllowsDeposit())
			assert.Equal(t, tc.withdraw, tc.status.AllowsWithdrawal())
		})
	}
}

func TestParseAccountStatus(t *testing.T) {
	status, err := domain.ParseAccountStatus(" withdrawal_blocked ")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusWithdrawalBlocked, status)

	_, err = domain.ParseAccountStatus("FROZEN")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestAccountCheckWithdrawal(t *testing.T) {
	account := domain.Account{ID: 7, Status: domain.AccountStatusOpen, Balance: decimal.NewFromInt(100)}

	assert.NoError(t, account.CheckWithdrawal(decimal.NewFromInt(100)))

	err := account.CheckWithdrawal(decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.EqualError(t, err, "Account: 7 does not have enough balance!")

	account.Status = domain.AccountStatusBlocked
	err = account.CheckWithdrawal(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrIllegalAccountStatus)
	assert.EqualError(t, err, "Account: 7 is not available for withdrawal!")
}

func TestAccountChangeStatusStampsClosure(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	account := domain.Account{Status: domain.AccountStatusOpen}

	account.ChangeStatus(domain.AccountStatusBlocked, now)
	assert.Nil(t, account.ClosedAt)

	account.ChangeStatus(domain.AccountStatusClosed, now)
	require.NotNil(t, account.ClosedAt)
	assert.Equal(t, now, *account.ClosedAt)

	account.ChangeStatus(domain.AccountStatusClosed, now.Add(time.Hour))
	assert.Equal(t, now, *account.ClosedAt)
}

func TestLoanRecordPayment(t *testing.T) {
	t.Run("first payment moves to paying", func(t *testing.T) {
		loan := domain.Loan{TotalCount: 12, RemainingCount: 12, Status: domain.LoanStatusOpen}
		loan.RecordPayment()
		assert.Equal(t, 11, loan.RemainingCount)
		assert.Equal(t, domain.LoanStatusPaying, loan.Status)
	})

	t.Run("middle payment keeps status", func(t *testing.T) {
		loan := domain.Loan{TotalCount: 12, RemainingCount: 10, Status: domain.LoanStatusOpen}
		loan.RecordPayment()
		assert.Equal(t, 9, loan.RemainingCount)
		assert.Equal(t, domain.LoanStatusOpen, loan.Status)
	})

	t.Run("last payment closes", func(t *testing.T) {
		loan := domain.Loan{TotalCount: 12, RemainingCount: 1, Status: domain.LoanStatusPaying}
		loan.RecordPayment()
		assert.Equal(t, 0, loan.RemainingCount)
		assert.Equal(t, domain.LoanStatusClosed, loan.Status)
	})

	t.Run("single installment loan closes", func(t *testing.T) {
		loan := domain.Loan{TotalCount: 1, RemainingCount: 1, Status: domain.LoanStatusOpen}
		loan.RecordPayment()
		assert.Equal(t, domain.LoanStatusClosed, loan.Status)
	})
}

func TestParseRate(t *testing.T) {
	rate, err := domain.ParseRate("eighteen")
	require.NoError(t, err)
	assert.Equal(t, int64(18), rate.Percentage())

	_, err = domain.ParseRate("TWELVE")
	assert.ErrorIs(t, err, domain.ErrUnknownRate)
}

func TestErrorMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("pay loan: %w", domain.LoanNotFound(3))

	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	assert.NotErrorIs(t, err, domain.ErrAccountNotFound)

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.KindLoanNotFound, domainErr.Kind)
	assert.Equal(t, "Loan: 3 not found!", domainErr.Message)
}
