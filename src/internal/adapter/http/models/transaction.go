package models

import (
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
)

type TransactionResponse struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

func NewTransactionResponse(transaction domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         transaction.ID,
		SenderID:   transaction.SenderID,
		ReceiverID: transaction.ReceiverID,
		Amount:     transaction.Amount.StringFixed(2),
		Note:       transaction.Note,
		Type:       string(transaction.Type),
		Status:     string(transaction.Status),
		CreatedAt:  transaction.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		out = append(out, NewTransactionResponse(transaction))
	}
	return out
}
