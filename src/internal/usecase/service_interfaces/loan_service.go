package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/shopspring/decimal"
)

type LoanService interface {
	CreateLoan(ctx context.Context, req models.CreateLoanRequest) (domain.Loan, error)
	GetLoan(ctx context.Context, id int64) (domain.Loan, error)
	GetAllLoans(ctx context.Context) ([]domain.Loan, error)
	GetLoansByAccountID(ctx context.Context, accountID int64) ([]domain.Loan, error)
	Calculate(ctx context.Context, amount decimal.Decimal, count int, rate string) (decimal.Decimal, error)
	Pay(ctx context.Context, accountID int64, loanID int64) (domain.Loan, error)
}
