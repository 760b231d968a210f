package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
)

const loanColumns = `id, amount, installment, total_count, remaining_count, rate, type, status, account_id, created_at, version`

type loanRow struct {
	ID             int64           `db:"id"`
	Amount         decimal.Decimal `db:"amount"`
	Installment    decimal.Decimal `db:"installment"`
	TotalCount     int             `db:"total_count"`
	RemainingCount int             `db:"remaining_count"`
	Rate           string          `db:"rate"`
	Type           string          `db:"type"`
	Status         string          `db:"status"`
	AccountID      int64           `db:"account_id"`
	CreatedAt      time.Time       `db:"created_at"`
	Version        int64           `db:"version"`
}

func (r loanRow) toDomain() domain.Loan {
	return domain.Loan{
		ID:             r.ID,
		Amount:         r.Amount,
		Installment:    r.Installment,
		TotalCount:     r.TotalCount,
		RemainingCount: r.RemainingCount,
		Rate:           domain.Rate(r.Rate),
		Type:           domain.LoanType(r.Type),
		Status:         domain.LoanStatus(r.Status),
		AccountID:      r.AccountID,
		CreatedAt:      r.CreatedAt,
		Version:        r.Version,
	}
}

type LoanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
INSERT INTO loans (amount, installment, total_count, remaining_count, rate, type, status, account_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + loanColumns

	var row loanRow
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		loan.Amount,
		loan.Installment,
		loan.TotalCount,
		loan.RemainingCount,
		loan.Rate,
		loan.Type,
		loan.Status,
		loan.AccountID,
		loan.CreatedAt,
	).StructScan(&row); err != nil {
		logger.Error("loan repository create failed", err, logger.Fields{"accountId": loan.AccountID})
		return domain.Loan{}, fmt.Errorf("create loan: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *LoanRepository) Get(ctx context.Context, id int64) (domain.Loan, error) {
	var row loanRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id); err != nil {
		return domain.Loan{}, fmt.Errorf("get loan: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *LoanRepository) GetAll(ctx context.Context) ([]domain.Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY id`)
}

func (r *LoanRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans WHERE account_id = $1 ORDER BY id`, accountID)
}

func (r *LoanRepository) Save(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
UPDATE loans
SET remaining_count = $1,
    status = $2,
    version = version + 1
WHERE id = $3
  AND version = $4
RETURNING version`

	var version int64
	err := r.db.QueryRowxContext(ctx, query, loan.RemainingCount, loan.Status, loan.ID, loan.Version).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Loan{}, commons.ErrConcurrentUpdate
	}
	if err != nil {
		return domain.Loan{}, fmt.Errorf("save loan: %w", err)
	}

	loan.Version = version
	return loan, nil
}

func (r *LoanRepository) list(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	var rows []loanRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	out := make([]domain.Loan, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
