package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/events"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/usecase/services"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type bank struct {
	accounts     *memory.AccountRepository
	customers    *memory.CustomerRepository
	loans        *memory.LoanRepository
	transactions *memory.TransactionRepository

	ledger      *services.TransactionService
	accountSvc  *services.AccountService
	loanSvc     *services.LoanService
	customerSvc *services.CustomerService
}

func newBank(t *testing.T) *bank {
	t.Helper()
	transactions := memory.NewTransactionRepository()
	b := &bank{
		accounts:     memory.NewAccountRepository(transactions),
		customers:    memory.NewCustomerRepository(),
		loans:        memory.NewLoanRepository(),
		transactions: transactions,
	}
	locker := lock.NewLocal()
	b.ledger = services.NewTransactionService(b.transactions, b.accounts, trackingid.New(), events.NopPublisher{})
	b.accountSvc = services.NewAccountService(b.accounts, b.customers, b.ledger, locker)
	b.loanSvc = services.NewLoanService(b.loans, b.accountSvc, locker)
	b.customerSvc = services.NewCustomerService(b.customers, b.accounts)
	return b
}

func (b *bank) customer(t *testing.T, name string, nationalCode string) domain.Customer {
	t.Helper()
	customer, err := b.customers.Create(context.Background(), domain.Customer{
		FullName:     name,
		NationalCode: nationalCode,
		Status:       domain.CustomerStatusActive,
		Type:         domain.CustomerTypeIndividual,
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return customer
}

func (b *bank) account(t *testing.T, balance string, status domain.AccountStatus) domain.Account {
	t.Helper()
	account, err := b.accounts.Create(context.Background(), domain.Account{
		Title:       "Test - CHECKING",
		Balance:     decimal.RequireFromString(balance),
		Status:      status,
		Type:        domain.AccountTypeChecking,
		Currency:    domain.CurrencyIRR,
		CustomerIDs: []int64{1},
	})
	require.NoError(t, err)
	return account
}

func (b *bank) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	account, err := b.accounts.Get(context.Background(), id)
	require.NoError(t, err)
	return account.Balance
}

func (b *bank) records(t *testing.T, accountID int64) []domain.Transaction {
	t.Helper()
	list, err := b.transactions.GetByAccountID(context.Background(), accountID)
	require.NoError(t, err)
	return list
}

// stubLedger keeps every request it sees and fails them all when err is set.
type stubLedger struct {
	mu        sync.Mutex
	err       error
	requests  []domain.TransactionRequest
	published []domain.Transaction
}

func (l *stubLedger) Record(_ context.Context, req domain.TransactionRequest) (domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, req)
	if l.err != nil {
		return domain.Transaction{}, l.err
	}
	return l.entry(req), nil
}

func (l *stubLedger) RecordWithin(ctx context.Context, writer repo_interfaces.TransactionWriter, req domain.TransactionRequest) (domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, req)
	if l.err != nil {
		return domain.Transaction{}, l.err
	}
	return writer.CreateTransaction(ctx, l.entry(req))
}

func (l *stubLedger) Publish(_ context.Context, transaction domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.published = append(l.published, transaction)
}

func (l *stubLedger) entry(req domain.TransactionRequest) domain.Transaction {
	return domain.Transaction{
		ID:         int64(len(l.requests)),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
		Note:       req.Note,
		Type:       req.Type,
		Status:     req.Status,
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
