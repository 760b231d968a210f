package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusOpen              AccountStatus = "OPEN"
	AccountStatusClosed            AccountStatus = "CLOSED"
	AccountStatusBlocked           AccountStatus = "BLOCKED"
	AccountStatusDepositBlocked    AccountStatus = "DEPOSIT_BLOCKED"
	AccountStatusWithdrawalBlocked AccountStatus = "WITHDRAWAL_BLOCKED"
)

var accountStatuses = []AccountStatus{
	AccountStatusOpen,
	AccountStatusClosed,
	AccountStatusBlocked,
	AccountStatusDepositBlocked,
	AccountStatusWithdrawalBlocked,
}

// ParseAccountStatus accepts any letter case and surrounding whitespace.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	normalized := AccountStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range accountStatuses {
		if status == normalized {
			return status, nil
		}
	}
	return "", UnknownStatus(raw)
}

func (s AccountStatus) AllowsDeposit() bool {
	switch s {
	case AccountStatusClosed, AccountStatusBlocked, AccountStatusDepositBlocked:
		return false
	}
	return true
}

func (s AccountStatus) AllowsWithdrawal() bool {
	switch s {
	case AccountStatusClosed, AccountStatusBlocked, AccountStatusWithdrawalBlocked:
		return false
	}
	return true
}

type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

type Currency string

const (
	CurrencyIRR Currency = "IRR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type Account struct {
	ID          int64
	Title       string
	Balance     decimal.Decimal
	Status      AccountStatus
	Type        AccountType
	Currency    Currency
	CustomerIDs []int64
	CreatedAt   time.Time
	ClosedAt    *time.Time
	Version     int64
}

func AccountTitle(fullName string, accountType AccountType) string {
	return fmt.Sprintf("%s - %s", fullName, accountType)
}

// CheckDeposit reports why the account can not take a deposit, if it can not.
func (a Account) CheckDeposit() error {
	if !a.Status.AllowsDeposit() {
		return IllegalAccountStatus(fmt.Sprintf("Account: %d is not available for deposit!", a.ID))
	}
	return nil
}

func (a Account) CheckWithdrawal(amount decimal.Decimal) error {
	if !a.Status.AllowsWithdrawal() {
		return IllegalAccountStatus(fmt.Sprintf("Account: %d is not available for withdrawal!", a.ID))
	}
	if a.Balance.LessThan(amount) {
		return InsufficientBalance(a.ID)
	}
	return nil
}

// ChangeStatus stamps ClosedAt when the account moves into CLOSED.
func (a *Account) ChangeStatus(status AccountStatus, now time.Time) {
	if status == AccountStatusClosed && a.Status != AccountStatusClosed {
		closedAt := now
		a.ClosedAt = &closedAt
	}
	a.Status = status
}
