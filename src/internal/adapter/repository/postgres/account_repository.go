package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
)

const accountColumns = `id, title, balance, status, type, currency, customer_ids, created_at, closed_at, version`

type accountRow struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Balance     decimal.Decimal `db:"balance"`
	Status      string          `db:"status"`
	Type        string          `db:"type"`
	Currency    string          `db:"currency"`
	CustomerIDs pq.Int64Array   `db:"customer_ids"`
	CreatedAt   time.Time       `db:"created_at"`
	ClosedAt    sql.NullTime    `db:"closed_at"`
	Version     int64           `db:"version"`
}

func (r accountRow) toDomain() domain.Account {
	account := domain.Account{
		ID:          r.ID,
		Title:       r.Title,
		Balance:     r.Balance,
		Status:      domain.AccountStatus(r.Status),
		Type:        domain.AccountType(r.Type),
		Currency:    domain.Currency(r.Currency),
		CustomerIDs: []int64(r.CustomerIDs),
		CreatedAt:   r.CreatedAt,
		Version:     r.Version,
	}
	if r.ClosedAt.Valid {
		closedAt := r.ClosedAt.Time
		account.ClosedAt = &closedAt
	}
	return account
}

func toAccounts(rows []accountRow) []domain.Account {
	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (title, balance, status, type, currency, customer_ids, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + accountColumns

	var row accountRow
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		account.Title,
		account.Balance,
		account.Status,
		account.Type,
		account.Currency,
		pq.Int64Array(account.CustomerIDs),
		account.CreatedAt,
	).StructScan(&row); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"customerIds": account.CustomerIDs,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", translate(err))
	}

	return row.toDomain(), nil
}

func (r *AccountRepository) Get(ctx context.Context, id int64) (domain.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id); err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	var rows []accountRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+accountColumns+` FROM accounts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return toAccounts(rows), nil
}

func (r *AccountRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	var rows []accountRow
	if err := r.db.SelectContext(
		ctx,
		&rows,
		`SELECT `+accountColumns+` FROM accounts WHERE $1 = ANY(customer_ids) ORDER BY id`,
		customerID,
	); err != nil {
		return nil, fmt.Errorf("list accounts by customer: %w", err)
	}
	return toAccounts(rows), nil
}

func (r *AccountRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store repo_interfaces.AccountStore) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin account transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("account repository rollback failed", rbErr, nil)
			}
		}
	}()

	if err = fn(ctx, &accountStore{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit account transaction: %w", err)
	}
	return nil
}

type accountStore struct {
	tx *sqlx.Tx
}

func (s *accountStore) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	var row accountRow
	if err := s.tx.GetContext(ctx, &row, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id); err != nil {
		return domain.Account{}, fmt.Errorf("lock account: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (s *accountStore) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET title = $1,
    balance = $2,
    status = $3,
    closed_at = $4,
    version = version + 1
WHERE id = $5
  AND version = $6
RETURNING version`

	var version int64
	err := s.tx.QueryRowxContext(
		ctx,
		query,
		account.Title,
		account.Balance,
		account.Status,
		nullTime(account.ClosedAt),
		account.ID,
		account.Version,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, commons.ErrConcurrentUpdate
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	account.Version = version
	return account, nil
}

func (s *accountStore) CreateTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	return insertTransaction(ctx, s.tx, transaction)
}
