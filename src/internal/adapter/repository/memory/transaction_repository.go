package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
)

// TransactionRepository is append only. Records are never updated.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[int64]domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[int64]domain.Transaction)}
}

func (r *TransactionRepository) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[transaction.ID]; exists {
		return domain.Transaction{}, commons.ErrDuplicateKey
	}
	r.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *TransactionRepository) has(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.transactions[id]
	return exists
}

// createAll stores every record or none of them. onStored runs under the
// ledger lock once the records are in.
func (r *TransactionRepository) createAll(transactions []domain.Transaction, onStored func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, transaction := range transactions {
		if _, exists := r.transactions[transaction.ID]; exists {
			return commons.ErrDuplicateKey
		}
	}
	for _, transaction := range transactions {
		r.transactions[transaction.ID] = transaction
	}
	onStored()
	return nil
}

func (r *TransactionRepository) Get(_ context.Context, id int64) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.transactions[id]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	return transaction, nil
}

func (r *TransactionRepository) GetByAccountID(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, 0)
	for _, transaction := range r.transactions {
		if transaction.SenderID == accountID || transaction.ReceiverID == accountID {
			out = append(out, transaction)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
