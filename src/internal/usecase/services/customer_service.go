package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
)

var nationalCodePattern = regexp.MustCompile(`^\d{10}$`)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
	accountRepo  repo_interfaces.AccountRepository
	now          func() time.Time
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository, accountRepo repo_interfaces.AccountRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (domain.Customer, error) {
	logger.Info("customer service create customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	req = req.Normalize()
	if err := checkNationalCode(req.NationalCode); err != nil {
		return domain.Customer{}, err
	}
	if err := req.Validate(); err != nil {
		logger.Error("customer service create customer validation failed", err, nil)
		return domain.Customer{}, domain.InvalidArgument("%s", err.Error())
	}

	birthDate, err := models.ParseBirthDate(req.BirthDate)
	if err != nil {
		return domain.Customer{}, domain.InvalidArgument("birthDate must be in YYYY-MM-DD format")
	}

	taken, err := s.customerRepo.ExistsByNationalCode(ctx, req.NationalCode)
	if err != nil {
		logger.Error("customer service national code lookup failed", err, nil)
		return domain.Customer{}, err
	}
	if taken {
		return domain.Customer{}, domain.NationalCodeTaken(req.NationalCode)
	}

	created, err := s.customerRepo.Create(ctx, domain.Customer{
		NationalCode: req.NationalCode,
		PhoneNumber:  req.PhoneNumber,
		FullName:     req.FullName,
		Status:       domain.CustomerStatusActive,
		Type:         domain.CustomerType(req.Type),
		BirthDate:    birthDate,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, commons.ErrDuplicateKey) {
		return domain.Customer{}, domain.NationalCodeTaken(req.NationalCode)
	}
	if err != nil {
		logger.Error("customer service create customer repository failed", err, nil)
		return domain.Customer{}, err
	}

	logger.Info("customer service create customer success", logger.Fields{
		"customerId": created.ID,
	})
	return created, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	customer, err := s.customerRepo.Get(ctx, id)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Customer{}, domain.CustomerNotFound(id)
	}
	return customer, err
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.GetAll(ctx)
}

func (s *CustomerService) VerifyCustomer(ctx context.Context, id int64) (bool, error) {
	return s.customerRepo.Exists(ctx, id)
}

func (s *CustomerService) ChangeCustomerStatus(ctx context.Context, id int64, rawStatus string) (domain.Customer, error) {
	status, err := domain.ParseCustomerStatus(rawStatus)
	if err != nil {
		return domain.Customer{}, err
	}

	updated, err := s.customerRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Customer{}, domain.CustomerNotFound(id)
	}
	if err != nil {
		return domain.Customer{}, err
	}

	logger.Info("customer service status changed", logger.Fields{
		"customerId": id,
		"status":     updated.Status,
	})
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}

	accounts, err := s.accountRepo.GetByCustomerID(ctx, id)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return domain.IllegalCustomerDelete(id)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.CustomerNotFound(id)
		}
		return err
	}

	logger.Info("customer service customer deleted", logger.Fields{"customerId": id})
	return nil
}

func checkNationalCode(code string) error {
	if code == "" {
		return domain.IllegalNationalCode("National code can not be null or empty!")
	}
	if !nationalCodePattern.MatchString(code) {
		return domain.IllegalNationalCode("National code must be 10 digits only!")
	}
	return nil
}
