package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/domain"
)

// LedgerRecorder writes exactly one ledger entry per Record or RecordWithin
// call. Entries written with RecordWithin are published by the caller after
// its storage transaction commits.
type LedgerRecorder interface {
	Record(ctx context.Context, req domain.TransactionRequest) (domain.Transaction, error)
	RecordWithin(ctx context.Context, writer repo_interfaces.TransactionWriter, req domain.TransactionRequest) (domain.Transaction, error)
	Publish(ctx context.Context, transaction domain.Transaction)
}

type TransactionService interface {
	LedgerRecorder
	GetTransaction(ctx context.Context, id int64) (domain.Transaction, error)
	GetTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, transaction domain.Transaction) error
}
