package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/accounts", c.createAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", c.getAllAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/deposit", c.deposit).Methods(http.MethodPut)
	r.HandleFunc("/accounts/withdraw", c.withdraw).Methods(http.MethodPut)
	r.HandleFunc("/accounts/transfer", c.transfer).Methods(http.MethodPut)
	r.HandleFunc("/accounts/verify/{id}", c.verifyAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/status/{id}", c.changeStatus).Methods(http.MethodPut)
	r.HandleFunc("/accounts/balance/{id}", c.getBalance).Methods(http.MethodGet)
	r.HandleFunc("/accounts/customer/{customerId}", c.getAccountsByCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customers/accounts/{customerId}", c.getAccountsByCustomer).Methods(http.MethodGet)
	r.HandleFunc("/accounts/customers/{accountId}", c.getCustomersByAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id:[0-9]+}", c.getAccount).Methods(http.MethodGet)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	account, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusCreated, commons.SuccessResponse("account created successfully", models.NewAccountResponse(account)), start)
}

func (c *AccountController) getAllAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	accounts, err := c.service.GetAllAccounts(r.Context())
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("accounts fetched", commons.NewPage(models.NewAccountResponses(accounts))), start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	account, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("account fetched", models.NewAccountResponse(account)), start)
}

func (c *AccountController) verifyAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	verified, err := c.service.VerifyAccount(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("account verified", models.VerifyResponse{ID: id, Verified: verified}), start)
}

func (c *AccountController) changeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}
	req := models.ChangeStatusRequest{Status: r.URL.Query().Get("status")}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	account, err := c.service.ChangeAccountStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("account status changed", models.NewAccountResponse(account)), start)
}

func (c *AccountController) getBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	balance, err := c.service.GetAccountBalance(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("balance fetched", models.BalanceResponse{
		AccountID: id,
		Balance:   balance.StringFixed(2),
	}), start)
}

func (c *AccountController) getAccountsByCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	accounts, err := c.service.GetAccountsByCustomerID(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("accounts fetched", commons.NewPage(models.NewAccountResponses(accounts))), start)
}

func (c *AccountController) getCustomersByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	accountID, err := pathID(r, "accountId")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	customers, err := c.service.GetCustomersByAccountID(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customers fetched", commons.NewPage(models.NewCustomerResponses(customers))), start)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	record, err := c.service.Deposit(r.Context(), req.AccountID, req.Amount, req.Note)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("deposit successful", models.NewTransactionResponse(record)), start)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.WithdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	record, err := c.service.Withdraw(r.Context(), req.AccountID, req.Amount, req.Note)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("withdrawal successful", models.NewTransactionResponse(record)), start)
}

func (c *AccountController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	record, err := c.service.Transfer(r.Context(), req.SenderID, req.ReceiverID, req.Amount, req.Note)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("transfer successful", models.NewTransactionResponse(record)), start)
}
