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
)

const transactionColumns = `id, sender_id, receiver_id, amount, note, type, status, created_at`

type transactionRow struct {
	ID         int64           `db:"id"`
	SenderID   int64           `db:"sender_id"`
	ReceiverID int64           `db:"receiver_id"`
	Amount     decimal.Decimal `db:"amount"`
	Note       string          `db:"note"`
	Type       string          `db:"type"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Amount:     r.Amount,
		Note:       r.Note,
		Type:       domain.TransactionType(r.Type),
		Status:     domain.TransactionStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

// TransactionRepository is insert-only; ledger rows are never updated.
type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	return insertTransaction(ctx, r.db, transaction)
}

// A taken id inserts nothing instead of raising a unique violation, so a
// retry inside an open transaction does not find it aborted.
const insertTransactionQuery = `
INSERT INTO transactions (id, sender_id, receiver_id, amount, note, type, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING
RETURNING id`

func insertTransaction(ctx context.Context, q sqlx.QueryerContext, transaction domain.Transaction) (domain.Transaction, error) {
	var id int64
	err := q.QueryRowxContext(
		ctx,
		insertTransactionQuery,
		transaction.ID,
		transaction.SenderID,
		transaction.ReceiverID,
		transaction.Amount,
		transaction.Note,
		string(transaction.Type),
		string(transaction.Status),
		transaction.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, commons.ErrDuplicateKey
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", translate(err))
	}
	return transaction, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	var row transactionRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id); err != nil {
		return domain.Transaction{}, fmt.Errorf("get transaction: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + `
FROM transactions
WHERE sender_id = $1 OR receiver_id = $1
ORDER BY id DESC`

	var rows []transactionRow
	if err := r.db.SelectContext(ctx, &rows, query, accountID); err != nil {
		return nil, fmt.Errorf("list transactions by account: %w", err)
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
