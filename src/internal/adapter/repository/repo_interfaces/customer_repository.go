package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Get(ctx context.Context, id int64) (domain.Customer, error)
	GetAll(ctx context.Context) ([]domain.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByNationalCode(ctx context.Context, nationalCode string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) (domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
