package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/domain"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)
	GetAllCustomers(ctx context.Context) ([]domain.Customer, error)
	VerifyCustomer(ctx context.Context, id int64) (bool, error)
	ChangeCustomerStatus(ctx context.Context, id int64, status string) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}
