package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/domain"
)

type TransactionRepository interface {
	// Create fails with commons.ErrDuplicateKey when the id is already taken.
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

type TransactionWriter interface {
	// CreateTransaction fails with commons.ErrDuplicateKey when the id is
	// already taken and leaves the surrounding transaction usable.
	CreateTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
}
