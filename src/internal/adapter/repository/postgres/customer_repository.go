package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
)

const customerColumns = `id, national_code, phone_number, full_name, status, type, birth_date, created_at`

type customerRow struct {
	ID           int64     `db:"id"`
	NationalCode string    `db:"national_code"`
	PhoneNumber  string    `db:"phone_number"`
	FullName     string    `db:"full_name"`
	Status       string    `db:"status"`
	Type         string    `db:"type"`
	BirthDate    time.Time `db:"birth_date"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r customerRow) toDomain() domain.Customer {
	return domain.Customer{
		ID:           r.ID,
		NationalCode: r.NationalCode,
		PhoneNumber:  r.PhoneNumber,
		FullName:     r.FullName,
		Status:       domain.CustomerStatus(r.Status),
		Type:         domain.CustomerType(r.Type),
		BirthDate:    r.BirthDate,
		CreatedAt:    r.CreatedAt,
	}
}

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO customers (national_code, phone_number, full_name, status, type, birth_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + customerColumns

	var row customerRow
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		customer.NationalCode,
		customer.PhoneNumber,
		customer.FullName,
		customer.Status,
		customer.Type,
		customer.BirthDate,
		customer.CreatedAt,
	).StructScan(&row); err != nil {
		logger.Error("customer repository create failed", err, nil)
		return domain.Customer{}, fmt.Errorf("create customer: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var row customerRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id); err != nil {
		return domain.Customer{}, fmt.Errorf("get customer: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	var rows []customerRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+customerColumns+` FROM customers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check customer exists: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepository) ExistsByNationalCode(ctx context.Context, nationalCode string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM customers WHERE national_code = $1)`, nationalCode); err != nil {
		return false, fmt.Errorf("check national code: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) (domain.Customer, error) {
	var row customerRow
	if err := r.db.QueryRowxContext(
		ctx,
		`UPDATE customers SET status = $1 WHERE id = $2 RETURNING `+customerColumns,
		status,
		id,
	).StructScan(&row); err != nil {
		return domain.Customer{}, fmt.Errorf("update customer status: %w", translate(err))
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer rows affected: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}
	return nil
}
