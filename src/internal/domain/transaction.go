package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionStatusSucceed TransactionStatus = "SUCCEED"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

const (
	DefaultDepositNote  = "deposit"
	DefaultWithdrawNote = "withdraw"
	DefaultTransferNote = "transfer"
	LoanPaymentNote     = "Loan payment"
)

type TransactionRequest struct {
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Note       string
	Type       TransactionType
	Status     TransactionStatus
}

// Transaction is one ledger entry. It is never modified after it is written.
type Transaction struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Note       string
	Type       TransactionType
	Status     TransactionStatus
	CreatedAt  time.Time
}
