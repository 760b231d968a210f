package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error)
	// WithinTransaction runs fn in one storage transaction. Saves made through
	// the AccountStore are committed together when fn returns nil and
	// discarded otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, store AccountStore) error) error
}

// AccountStore is the transaction-scoped view of the account table. Ledger
// rows written through it commit or roll back with the account saves.
type AccountStore interface {
	TransactionWriter
	// GetForUpdate reads the account and holds it until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (domain.Account, error)
	// Save writes the account when its version still matches the stored one
	// and returns it with the bumped version. A stale version fails with
	// commons.ErrConcurrentUpdate.
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
}
