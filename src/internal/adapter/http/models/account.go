package models

import (
	"strings"
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateAccountRequest struct {
	CustomerIDs []int64         `json:"customerIds" validate:"required,min=1,dive,gt=0"`
	Type        string          `json:"type" validate:"required,oneof=CHECKING SAVINGS"`
	Currency    string          `json:"currency" validate:"required,oneof=IRR USD EUR"`
	Balance     decimal.Decimal `json:"balance" validate:"balance,scale2"`
}

func (r CreateAccountRequest) Normalize() CreateAccountRequest {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	return r
}

func (r CreateAccountRequest) Validate() error {
	return validateStruct(r.Normalize())
}

type DepositRequest struct {
	AccountID int64           `json:"accountId" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"amount,scale2"`
	Note      string          `json:"note,omitempty" validate:"max=255"`
}

func (r DepositRequest) Validate() error {
	return validateStruct(r)
}

type WithdrawRequest struct {
	AccountID int64           `json:"accountId" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"amount,scale2"`
	Note      string          `json:"note,omitempty" validate:"max=255"`
}

func (r WithdrawRequest) Validate() error {
	return validateStruct(r)
}

type TransferRequest struct {
	SenderID   int64           `json:"senderId" validate:"required,gt=0"`
	ReceiverID int64           `json:"receiverId" validate:"required,gt=0,nefield=SenderID"`
	Amount     decimal.Decimal `json:"amount" validate:"amount,scale2"`
	Note       string          `json:"note,omitempty" validate:"max=255"`
}

func (r TransferRequest) Validate() error {
	return validateStruct(r)
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r ChangeStatusRequest) Validate() error {
	return validateStruct(r)
}

type AccountResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Balance     string  `json:"balance"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	Currency    string  `json:"currency"`
	CustomerIDs []int64 `json:"customerIds"`
	CreatedAt   string  `json:"createdAt"`
	ClosedAt    *string `json:"closedAt,omitempty"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	response := AccountResponse{
		ID:          account.ID,
		Title:       account.Title,
		Balance:     account.Balance.StringFixed(2),
		Status:      string(account.Status),
		Type:        string(account.Type),
		Currency:    string(account.Currency),
		CustomerIDs: account.CustomerIDs,
		CreatedAt:   account.CreatedAt.Format(time.RFC3339),
	}
	if account.ClosedAt != nil {
		closedAt := account.ClosedAt.Format(time.RFC3339)
		response.ClosedAt = &closedAt
	}
	return response
}

func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}
	return out
}

type BalanceResponse struct {
	AccountID int64  `json:"accountId"`
	Balance   string `json:"balance"`
}

type VerifyResponse struct {
	ID       int64 `json:"id"`
	Verified bool  `json:"verified"`
}
