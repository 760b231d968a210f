package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
)

type LoanController struct {
	service service_interfaces.LoanService
}

func NewLoanController(service service_interfaces.LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/loans", c.createLoan).Methods(http.MethodPost)
	r.HandleFunc("/loans", c.getAllLoans).Methods(http.MethodGet)
	r.HandleFunc("/loans/pay", c.pay).Methods(http.MethodPut)
	r.HandleFunc("/loans/calculate", c.calculate).Methods(http.MethodGet)
	r.HandleFunc("/loans/account/{accountId}", c.getLoansByAccount).Methods(http.MethodGet)
	r.HandleFunc("/loans/{id:[0-9]+}", c.getLoan).Methods(http.MethodGet)
}

func (c *LoanController) createLoan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	loan, err := c.service.CreateLoan(r.Context(), req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusCreated, commons.SuccessResponse("loan created successfully", models.NewLoanResponse(loan)), start)
}

func (c *LoanController) getAllLoans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	loans, err := c.service.GetAllLoans(r.Context())
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("loans fetched", commons.NewPage(models.NewLoanResponses(loans))), start)
}

func (c *LoanController) getLoan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	loan, err := c.service.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("loan fetched", models.NewLoanResponse(loan)), start)
}

func (c *LoanController) getLoansByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	accountID, err := pathID(r, "accountId")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	loans, err := c.service.GetLoansByAccountID(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("loans fetched", commons.NewPage(models.NewLoanResponses(loans))), start)
}

func (c *LoanController) pay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PayLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	loan, err := c.service.Pay(r.Context(), req.AccountID, req.LoanID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("installment paid", models.NewLoanResponse(loan)), start)
}

func (c *LoanController) calculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()
	logRequest(r, nil)

	amount, err := decimal.NewFromString(strings.TrimSpace(query.Get("amount")))
	if err != nil || !amount.IsPositive() {
		respondValidation(w, r, fmt.Errorf("amount must be a positive decimal"), start)
		return
	}
	count, err := strconv.Atoi(strings.TrimSpace(query.Get("count")))
	if err != nil || count < 1 {
		respondValidation(w, r, fmt.Errorf("count must be a positive integer"), start)
		return
	}
	rate := query.Get("rate")

	installment, err := c.service.Calculate(r.Context(), amount, count, rate)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("installment calculated", models.CalculateResponse{
		Amount:      amount.StringFixed(2),
		Count:       count,
		Rate:        strings.ToUpper(strings.TrimSpace(rate)),
		Installment: installment.StringFixed(2),
	}), start)
}
