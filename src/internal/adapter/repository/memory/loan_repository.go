package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
)

type LoanRepository struct {
	mu     sync.RWMutex
	nextID int64
	loans  map[int64]domain.Loan
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{loans: make(map[int64]domain.Loan)}
}

func (r *LoanRepository) Create(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	loan.ID = r.nextID
	loan.Version = 1
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now().UTC()
	}
	r.loans[loan.ID] = loan
	return loan, nil
}

func (r *LoanRepository) Get(_ context.Context, id int64) (domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.loans[id]
	if !ok {
		return domain.Loan{}, commons.ErrRecordNotFound
	}
	return loan, nil
}

func (r *LoanRepository) GetAll(_ context.Context) ([]domain.Loan, error) {
	return r.filter(func(domain.Loan) bool { return true }), nil
}

func (r *LoanRepository) GetByAccountID(_ context.Context, accountID int64) ([]domain.Loan, error) {
	return r.filter(func(l domain.Loan) bool { return l.AccountID == accountID }), nil
}

func (r *LoanRepository) Save(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.loans[loan.ID]
	if !ok {
		return domain.Loan{}, commons.ErrRecordNotFound
	}
	if stored.Version != loan.Version {
		return domain.Loan{}, commons.ErrConcurrentUpdate
	}

	loan.Version++
	r.loans[loan.ID] = loan
	return loan, nil
}

func (r *LoanRepository) filter(keep func(domain.Loan) bool) []domain.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Loan, 0)
	for _, loan := range r.loans {
		if keep(loan) {
			out = append(out, loan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
