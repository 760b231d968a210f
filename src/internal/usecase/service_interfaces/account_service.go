package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	AccountVerifier
	Withdrawer
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (domain.Account, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	GetAccountBalance(ctx context.Context, id int64) (decimal.Decimal, error)
	GetAllAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccountsByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error)
	GetCustomersByAccountID(ctx context.Context, accountID int64) ([]domain.Customer, error)
	ChangeAccountStatus(ctx context.Context, id int64, status string) (domain.Account, error)
	Deposit(ctx context.Context, id int64, amount decimal.Decimal, note string) (domain.Transaction, error)
	Transfer(ctx context.Context, senderID int64, receiverID int64, amount decimal.Decimal, note string) (domain.Transaction, error)
}

type AccountVerifier interface {
	VerifyAccount(ctx context.Context, id int64) (bool, error)
}

type Withdrawer interface {
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal, note string) (domain.Transaction, error)
}

// Locker serializes work on the given keys. The returned func releases
// every key and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (func(), error)
}

// LoanAccounts is what loan payments need from the account side.
type LoanAccounts interface {
	AccountVerifier
	Withdrawer
}
