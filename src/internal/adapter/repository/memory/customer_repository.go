package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	nextID    int64
	customers map[int64]domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[int64]domain.Customer)}
}

func (r *CustomerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.customers {
		if existing.NationalCode == customer.NationalCode {
			return domain.Customer{}, commons.ErrDuplicateKey
		}
	}

	r.nextID++
	customer.ID = r.nextID
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *CustomerRepository) Get(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}
	return customer, nil
}

func (r *CustomerRepository) GetAll(_ context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		out = append(out, customer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CustomerRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.customers[id]
	return ok, nil
}

func (r *CustomerRepository) ExistsByNationalCode(_ context.Context, nationalCode string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.NationalCode == nationalCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) UpdateStatus(_ context.Context, id int64, status domain.CustomerStatus) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[id]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}
	customer.Status = status
	r.customers[id] = customer
	return customer, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return commons.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}
