package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
	"github.com/api-sage/core-banking/src/internal/usecase/amortization"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type LoanService struct {
	loanRepo repo_interfaces.LoanRepository
	accounts service_interfaces.LoanAccounts
	locker   service_interfaces.Locker
	now      func() time.Time
}

func NewLoanService(
	loanRepo repo_interfaces.LoanRepository,
	accounts service_interfaces.LoanAccounts,
	locker service_interfaces.Locker,
) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		accounts: accounts,
		locker:   locker,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *LoanService) CreateLoan(ctx context.Context, req models.CreateLoanRequest) (domain.Loan, error) {
	logger.Info("loan service create loan request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("loan service create loan validation failed", err, nil)
		return domain.Loan{}, domain.InvalidArgument("%s", err.Error())
	}
	req = req.Normalize()

	rate, err := domain.ParseRate(req.Rate)
	if err != nil {
		return domain.Loan{}, err
	}

	if err := s.verifyAccount(ctx, req.AccountID); err != nil {
		return domain.Loan{}, err
	}

	installment, err := amortization.Installment(req.Amount, req.TotalCount, rate.Percentage())
	if err != nil {
		return domain.Loan{}, domain.InvalidArgument("%s", err.Error())
	}

	created, err := s.loanRepo.Create(ctx, domain.Loan{
		Amount:         req.Amount,
		Installment:    installment,
		TotalCount:     req.TotalCount,
		RemainingCount: req.TotalCount,
		Rate:           rate,
		Type:           domain.LoanType(req.Type),
		Status:         domain.LoanStatusOpen,
		AccountID:      req.AccountID,
		CreatedAt:      s.now(),
	})
	if err != nil {
		logger.Error("loan service create loan repository failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return domain.Loan{}, err
	}

	logger.Info("loan service create loan success", logger.Fields{
		"loanId":      created.ID,
		"accountId":   created.AccountID,
		"installment": created.Installment.StringFixed(amortization.Scale),
	})
	return created, nil
}

func (s *LoanService) GetLoan(ctx context.Context, id int64) (domain.Loan, error) {
	loan, err := s.loanRepo.Get(ctx, id)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Loan{}, domain.LoanNotFound(id)
	}
	return loan, err
}

func (s *LoanService) GetAllLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.GetAll(ctx)
}

func (s *LoanService) GetLoansByAccountID(ctx context.Context, accountID int64) ([]domain.Loan, error) {
	exists, err := s.accounts.VerifyAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.AccountNotFound(accountID)
	}
	return s.loanRepo.GetByAccountID(ctx, accountID)
}

func (s *LoanService) Calculate(_ context.Context, amount decimal.Decimal, count int, rawRate string) (decimal.Decimal, error) {
	rate, err := domain.ParseRate(rawRate)
	if err != nil {
		return decimal.Zero, err
	}
	installment, err := amortization.Installment(amount, count, rate.Percentage())
	if err != nil {
		return decimal.Zero, domain.InvalidArgument("%s", err.Error())
	}
	return installment, nil
}

// Pay withdraws one installment from the owning account and advances the
// loan. The loan is left untouched when the withdrawal fails.
func (s *LoanService) Pay(ctx context.Context, accountID int64, loanID int64) (domain.Loan, error) {
	fields := logger.Fields{"loanId": loanID, "accountId": accountID}
	logger.Info("loan service pay request", fields)

	unlock, err := s.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return domain.Loan{}, fmt.Errorf("acquire loan lock: %w", err)
	}
	defer unlock()

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return domain.Loan{}, err
	}
	if err := s.verifyAccount(ctx, accountID); err != nil {
		return domain.Loan{}, err
	}
	if loan.AccountID != accountID {
		return domain.Loan{}, domain.NotValidLoanAccount(accountID)
	}
	if loan.Status == domain.LoanStatusClosed {
		return domain.Loan{}, domain.IllegalLoanStatus(loanID)
	}

	payment, err := s.accounts.Withdraw(ctx, accountID, loan.Installment, domain.LoanPaymentNote)
	if err != nil {
		logger.Error("loan service installment withdrawal failed", err, fields)
		return domain.Loan{}, domain.LoanPaymentNotAvailable(accountID)
	}

	loan.RecordPayment()
	saved, err := s.loanRepo.Save(ctx, loan)
	if err != nil {
		// The installment is already withdrawn at this point.
		logger.Error("loan service save after payment failed", err, logger.Fields{
			"loanId":        loanID,
			"accountId":     accountID,
			"transactionId": payment.ID,
			"installment":   loan.Installment.String(),
		})
		if errors.Is(err, commons.ErrConcurrentUpdate) {
			return domain.Loan{}, domain.ConcurrentUpdate("Loan", loanID)
		}
		return domain.Loan{}, err
	}

	logger.Info("loan service pay success", logger.Fields{
		"loanId":         saved.ID,
		"remainingCount": saved.RemainingCount,
		"status":         saved.Status,
	})
	return saved, nil
}

func (s *LoanService) verifyAccount(ctx context.Context, accountID int64) error {
	exists, err := s.accounts.VerifyAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.InvalidLoanAccount(accountID)
	}
	return nil
}
