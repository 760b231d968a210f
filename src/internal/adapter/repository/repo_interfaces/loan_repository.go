package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	Get(ctx context.Context, id int64) (domain.Loan, error)
	GetAll(ctx context.Context) ([]domain.Loan, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Loan, error)
	// Save follows the same version contract as AccountStore.Save.
	Save(ctx context.Context, loan domain.Loan) (domain.Loan, error)
}
