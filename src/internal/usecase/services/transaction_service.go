package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
)

const maxRecordAttempts = 5

// TransactionService is the append-only ledger.
type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
	ids             *trackingid.Generator
	publisher       service_interfaces.EventPublisher
	now             func() time.Time
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	ids *trackingid.Generator,
	publisher service_interfaces.EventPublisher,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		ids:             ids,
		publisher:       publisher,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Record writes a standalone entry and publishes it.
func (s *TransactionService) Record(ctx context.Context, req domain.TransactionRequest) (domain.Transaction, error) {
	created, err := s.insert(ctx, s.transactionRepo.Create, req)
	if err != nil {
		return domain.Transaction{}, err
	}
	s.Publish(ctx, created)
	return created, nil
}

// RecordWithin writes the entry through the caller's storage transaction, so
// it exists only if that transaction commits. Nothing is published; the
// caller calls Publish once the commit succeeds.
func (s *TransactionService) RecordWithin(ctx context.Context, writer repo_interfaces.TransactionWriter, req domain.TransactionRequest) (domain.Transaction, error) {
	return s.insert(ctx, writer.CreateTransaction, req)
}

// Publish hands a committed entry to the event publisher. Failures are logged.
func (s *TransactionService) Publish(ctx context.Context, transaction domain.Transaction) {
	if err := s.publisher.Publish(ctx, transaction); err != nil {
		logger.Error("transaction service publish event failed", err, logger.Fields{
			"transactionId": transaction.ID,
		})
	}
}

func (s *TransactionService) insert(
	ctx context.Context,
	create func(context.Context, domain.Transaction) (domain.Transaction, error),
	req domain.TransactionRequest,
) (domain.Transaction, error) {
	transaction := domain.Transaction{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
		Note:       req.Note,
		Type:       req.Type,
		Status:     req.Status,
		CreatedAt:  s.now(),
	}

	var (
		created domain.Transaction
		err     error
	)
	for attempt := 1; attempt <= maxRecordAttempts; attempt++ {
		transaction.ID = s.ids.Next()
		created, err = create(ctx, transaction)
		if err == nil {
			break
		}
		if !errors.Is(err, commons.ErrDuplicateKey) {
			logger.Error("transaction service record failed", err, logger.Fields{
				"type":   req.Type,
				"status": req.Status,
			})
			return domain.Transaction{}, err
		}
		logger.Warn("transaction service tracking id taken, retrying", logger.Fields{
			"transactionId": transaction.ID,
			"attempt":       attempt,
		})
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("record transaction after %d attempts: %w", maxRecordAttempts, err)
	}

	logger.Info("transaction service record success", logger.Fields{
		"transactionId": created.ID,
		"type":          created.Type,
		"status":        created.Status,
	})
	return created, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	transaction, err := s.transactionRepo.Get(ctx, id)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Transaction{}, domain.TransactionNotFound(id)
	}
	return transaction, err
}

// GetTransactionsByAccountID lists records where the account is sender or
// receiver, newest first.
func (s *TransactionService) GetTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	exists, err := s.accountRepo.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.AccountNotFound(accountID)
	}
	return s.transactionRepo.GetByAccountID(ctx, accountID)
}
