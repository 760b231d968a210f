package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	ledger       service_interfaces.LedgerRecorder
	locker       service_interfaces.Locker
	now          func() time.Time
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	ledger service_interfaces.LedgerRecorder,
	locker service_interfaces.Locker,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		locker:       locker,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (domain.Account, error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return domain.Account{}, domain.InvalidArgument("%s", err.Error())
	}
	req = req.Normalize()

	var owner domain.Customer
	for i, customerID := range req.CustomerIDs {
		customer, err := s.customerRepo.Get(ctx, customerID)
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Account{}, domain.InvalidAccountCustomer(customerID)
		}
		if err != nil {
			logger.Error("account service create account customer lookup failed", err, logger.Fields{
				"customerId": customerID,
			})
			return domain.Account{}, err
		}
		if i == 0 {
			owner = customer
		}
	}

	accountType := domain.AccountType(req.Type)
	created, err := s.accountRepo.Create(ctx, domain.Account{
		Title:       domain.AccountTitle(owner.FullName, accountType),
		Balance:     req.Balance,
		Status:      domain.AccountStatusOpen,
		Type:        accountType,
		Currency:    domain.Currency(req.Currency),
		CustomerIDs: req.CustomerIDs,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerIds": req.CustomerIDs,
		})
		return domain.Account{}, err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":   created.ID,
		"customerIds": created.CustomerIDs,
	})
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Account{}, domain.AccountNotFound(id)
	}
	return account, err
}

func (s *AccountService) GetAccountBalance(ctx context.Context, id int64) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *AccountService) GetAllAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.GetAll(ctx)
}

// GetAccountsByCustomerID titles every account after the requested customer,
// so joint accounts read naturally from each owner's side.
func (s *AccountService) GetAccountsByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	customer, err := s.customerRepo.Get(ctx, customerID)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return nil, domain.CustomerNotFound(customerID)
	}
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Title = domain.AccountTitle(customer.FullName, accounts[i].Type)
	}
	return accounts, nil
}

func (s *AccountService) GetCustomersByAccountID(ctx context.Context, accountID int64) ([]domain.Customer, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(account.CustomerIDs))
	for _, customerID := range account.CustomerIDs {
		customer, err := s.customerRepo.Get(ctx, customerID)
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Error("account service owner missing from customer directory", err, logger.Fields{
				"accountId":  accountID,
				"customerId": customerID,
			})
			return nil, domain.CustomerNotFound(customerID)
		}
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (s *AccountService) VerifyAccount(ctx context.Context, id int64) (bool, error) {
	return s.accountRepo.Exists(ctx, id)
}

func (s *AccountService) ChangeAccountStatus(ctx context.Context, id int64, rawStatus string) (domain.Account, error) {
	status, err := domain.ParseAccountStatus(rawStatus)
	if err != nil {
		return domain.Account{}, err
	}

	unlock, err := s.locker.Lock(ctx, lock.AccountKey(id))
	if err != nil {
		return domain.Account{}, fmt.Errorf("acquire account lock: %w", err)
	}
	defer unlock()

	var updated domain.Account
	err = s.accountRepo.WithinTransaction(ctx, func(ctx context.Context, store repo_interfaces.AccountStore) error {
		account, err := store.GetForUpdate(ctx, id)
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.AccountNotFound(id)
		}
		if err != nil {
			return err
		}

		account.ChangeStatus(status, s.now())
		updated, err = store.Save(ctx, account)
		if errors.Is(err, commons.ErrConcurrentUpdate) {
			return domain.ConcurrentUpdate("Account", id)
		}
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	logger.Info("account service status changed", logger.Fields{
		"accountId": id,
		"status":    updated.Status,
	})
	return updated, nil
}

func (s *AccountService) Deposit(ctx context.Context, id int64, amount decimal.Decimal, note string) (domain.Transaction, error) {
	m := movement{
		kind:       domain.TransactionTypeDeposit,
		senderID:   id,
		receiverID: id,
		amount:     amount,
		note:       noteOrDefault(note, domain.DefaultDepositNote),
	}
	return s.execute(ctx, m, func(accounts map[int64]*domain.Account) error {
		account := accounts[id]
		if err := account.CheckDeposit(); err != nil {
			return err
		}
		account.Balance = account.Balance.Add(amount)
		return nil
	})
}

func (s *AccountService) Withdraw(ctx context.Context, id int64, amount decimal.Decimal, note string) (domain.Transaction, error) {
	m := movement{
		kind:       domain.TransactionTypeWithdrawal,
		senderID:   id,
		receiverID: id,
		amount:     amount,
		note:       noteOrDefault(note, domain.DefaultWithdrawNote),
	}
	return s.execute(ctx, m, func(accounts map[int64]*domain.Account) error {
		account := accounts[id]
		if err := account.CheckWithdrawal(amount); err != nil {
			return err
		}
		account.Balance = account.Balance.Sub(amount)
		return nil
	})
}

func (s *AccountService) Transfer(ctx context.Context, senderID int64, receiverID int64, amount decimal.Decimal, note string) (domain.Transaction, error) {
	m := movement{
		kind:       domain.TransactionTypeTransfer,
		senderID:   senderID,
		receiverID: receiverID,
		amount:     amount,
		note:       noteOrDefault(note, domain.DefaultTransferNote),
	}
	return s.execute(ctx, m, func(accounts map[int64]*domain.Account) error {
		sender, receiver := accounts[senderID], accounts[receiverID]
		if err := sender.CheckWithdrawal(amount); err != nil {
			return err
		}
		if err := receiver.CheckDeposit(); err != nil {
			return err
		}
		sender.Balance = sender.Balance.Sub(amount)
		receiver.Balance = receiver.Balance.Add(amount)
		return nil
	})
}

type movement struct {
	kind       domain.TransactionType
	senderID   int64
	receiverID int64
	amount     decimal.Decimal
	note       string
}

func (m movement) request(status domain.TransactionStatus) domain.TransactionRequest {
	return domain.TransactionRequest{
		SenderID:   m.senderID,
		ReceiverID: m.receiverID,
		Amount:     m.amount,
		Note:       m.note,
		Type:       m.kind,
		Status:     status,
	}
}

// lookupOrder is the order missing accounts are reported in.
func (m movement) lookupOrder() []int64 {
	if m.senderID == m.receiverID {
		return []int64{m.senderID}
	}
	return []int64{m.senderID, m.receiverID}
}

// lockOrder is the ascending id order rows and keys are taken in.
func (m movement) lockOrder() []int64 {
	ids := append([]int64(nil), m.lookupOrder()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m movement) fields() logger.Fields {
	return logger.Fields{
		"type":       m.kind,
		"senderId":   m.senderID,
		"receiverId": m.receiverID,
		"amount":     m.amount.String(),
	}
}

// execute runs one balance movement and owns its ledger record. Once the
// involved accounts are resolved, every attempt ends with exactly one record:
// SUCCEED committed together with the balances, or FAILED written after the
// storage transaction is discarded.
func (s *AccountService) execute(ctx context.Context, m movement, apply func(map[int64]*domain.Account) error) (domain.Transaction, error) {
	logger.Info("account service movement request", m.fields())

	if !m.amount.IsPositive() {
		return domain.Transaction{}, domain.InvalidArgument("amount must be greater than zero")
	}

	record, resolved, err := s.settle(ctx, m, apply)
	if err == nil {
		s.ledger.Publish(ctx, record)
		logger.Info("account service movement success", logger.Fields{
			"transactionId": record.ID,
			"type":          record.Type,
		})
		return record, nil
	}
	if !resolved {
		return domain.Transaction{}, err
	}

	logger.Error("account service movement failed", err, m.fields())
	if _, ledgerErr := s.ledger.Record(context.WithoutCancel(ctx), m.request(domain.TransactionStatusFailed)); ledgerErr != nil {
		logger.Error("account service failed movement was not recorded", ledgerErr, m.fields())
		return domain.Transaction{}, errors.Join(err, domain.LedgerUnavailable(ledgerErr))
	}
	return domain.Transaction{}, err
}

// settle holds the account locks for one storage transaction and writes the
// SUCCEED record through it. resolved reports whether every involved account
// was found.
func (s *AccountService) settle(ctx context.Context, m movement, apply func(map[int64]*domain.Account) error) (record domain.Transaction, resolved bool, err error) {
	ids := m.lockOrder()
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, lock.AccountKey(id))
	}
	unlock, err := s.locker.Lock(ctx, keys...)
	if err != nil {
		logger.Error("account service movement lock failed", err, m.fields())
		return domain.Transaction{}, false, fmt.Errorf("acquire account lock: %w", err)
	}
	defer unlock()

	err = s.accountRepo.WithinTransaction(ctx, func(ctx context.Context, store repo_interfaces.AccountStore) error {
		accounts := make(map[int64]*domain.Account, len(ids))
		for _, id := range ids {
			account, err := store.GetForUpdate(ctx, id)
			if errors.Is(err, commons.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			accounts[id] = &account
		}
		for _, id := range m.lookupOrder() {
			if _, ok := accounts[id]; !ok {
				return domain.AccountNotFound(id)
			}
		}
		resolved = true

		if err := apply(accounts); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := store.Save(ctx, *accounts[id]); err != nil {
				if errors.Is(err, commons.ErrConcurrentUpdate) {
					return domain.ConcurrentUpdate("Account", id)
				}
				return err
			}
		}

		written, err := s.ledger.RecordWithin(ctx, store, m.request(domain.TransactionStatusSucceed))
		if err != nil {
			return domain.LedgerUnavailable(err)
		}
		record = written
		return nil
	})
	return record, resolved, err
}

func noteOrDefault(note string, fallback string) string {
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		return trimmed
	}
	return fallback
}
