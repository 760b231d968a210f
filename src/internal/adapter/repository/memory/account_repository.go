package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
)

// AccountRepository keeps accounts in process memory. Transactions buffer
// their account and ledger writes and commit them together after a version
// check.
type AccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]domain.Account
	ledger   *TransactionRepository
}

func NewAccountRepository(ledger *TransactionRepository) *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int64]domain.Account),
		ledger:   ledger,
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	account.ID = r.nextID
	account.Version = 1
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	r.accounts[account.ID] = cloneAccount(account)

	return cloneAccount(account), nil
}

func (r *AccountRepository) Get(_ context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return cloneAccount(account), nil
}

func (r *AccountRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[id]
	return ok, nil
}

func (r *AccountRepository) GetAll(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, cloneAccount(account))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepository) GetByCustomerID(_ context.Context, customerID int64) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, account := range r.accounts {
		if slices.Contains(account.CustomerIDs, customerID) {
			out = append(out, cloneAccount(account))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store repo_interfaces.AccountStore) error) error {
	tx := &accountTx{repo: r, pending: make(map[int64]pendingAccount)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

type pendingAccount struct {
	account     domain.Account
	baseVersion int64
}

type accountTx struct {
	repo         *AccountRepository
	pending      map[int64]pendingAccount
	order        []int64
	transactions []domain.Transaction
}

func (tx *accountTx) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	if p, ok := tx.pending[id]; ok {
		return cloneAccount(p.account), nil
	}

	account, err := tx.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	tx.pending[id] = pendingAccount{account: account, baseVersion: account.Version}
	tx.order = append(tx.order, id)
	return cloneAccount(account), nil
}

func (tx *accountTx) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	p, ok := tx.pending[account.ID]
	if !ok {
		if _, err := tx.GetForUpdate(ctx, account.ID); err != nil {
			return domain.Account{}, err
		}
		p = tx.pending[account.ID]
	}
	if p.account.Version != account.Version {
		return domain.Account{}, commons.ErrConcurrentUpdate
	}

	account.Version++
	p.account = cloneAccount(account)
	tx.pending[account.ID] = p
	return cloneAccount(account), nil
}

func (tx *accountTx) CreateTransaction(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	for _, pending := range tx.transactions {
		if pending.ID == transaction.ID {
			return domain.Transaction{}, commons.ErrDuplicateKey
		}
	}
	if tx.repo.ledger.has(transaction.ID) {
		return domain.Transaction{}, commons.ErrDuplicateKey
	}
	tx.transactions = append(tx.transactions, transaction)
	return transaction, nil
}

// commit takes the account lock before the ledger lock.
func (tx *accountTx) commit() error {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()

	for _, id := range tx.order {
		stored, ok := tx.repo.accounts[id]
		if !ok || stored.Version != tx.pending[id].baseVersion {
			return commons.ErrConcurrentUpdate
		}
	}
	return tx.repo.ledger.createAll(tx.transactions, tx.apply)
}

func (tx *accountTx) apply() {
	for _, id := range tx.order {
		tx.repo.accounts[id] = cloneAccount(tx.pending[id].account)
	}
}

func cloneAccount(account domain.Account) domain.Account {
	account.CustomerIDs = slices.Clone(account.CustomerIDs)
	if account.ClosedAt != nil {
		closedAt := *account.ClosedAt
		account.ClosedAt = &closedAt
	}
	return account
}
