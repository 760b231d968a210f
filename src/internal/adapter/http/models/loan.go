package models

import (
	"strings"
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateLoanRequest struct {
	AccountID  int64           `json:"accountId" validate:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount" validate:"amount,scale2"`
	TotalCount int             `json:"totalCount" validate:"required,gt=0,lte=600"`
	Rate       string          `json:"rate" validate:"required"`
	Type       string          `json:"type" validate:"required,oneof=PERSONAL CREDIT_CARD MORTGAGE"`
}

func (r CreateLoanRequest) Normalize() CreateLoanRequest {
	r.Rate = strings.ToUpper(strings.TrimSpace(r.Rate))
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	return r
}

func (r CreateLoanRequest) Validate() error {
	return validateStruct(r.Normalize())
}

type PayLoanRequest struct {
	AccountID int64 `json:"accountId" validate:"required,gt=0"`
	LoanID    int64 `json:"loanId" validate:"required,gt=0"`
}

func (r PayLoanRequest) Validate() error {
	return validateStruct(r)
}

type LoanResponse struct {
	ID             int64  `json:"id"`
	Amount         string `json:"amount"`
	Installment    string `json:"installment"`
	TotalCount     int    `json:"totalCount"`
	RemainingCount int    `json:"remainingCount"`
	Rate           string `json:"rate"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	AccountID      int64  `json:"accountId"`
	CreatedAt      string `json:"createdAt"`
}

func NewLoanResponse(loan domain.Loan) LoanResponse {
	return LoanResponse{
		ID:             loan.ID,
		Amount:         loan.Amount.StringFixed(2),
		Installment:    loan.Installment.StringFixed(2),
		TotalCount:     loan.TotalCount,
		RemainingCount: loan.RemainingCount,
		Rate:           string(loan.Rate),
		Type:           string(loan.Type),
		Status:         string(loan.Status),
		AccountID:      loan.AccountID,
		CreatedAt:      loan.CreatedAt.Format(time.RFC3339),
	}
}

func NewLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, NewLoanResponse(loan))
	}
	return out
}

type CalculateResponse struct {
	Amount      string `json:"amount"`
	Count       int    `json:"count"`
	Rate        string `json:"rate"`
	Installment string `json:"installment"`
}
