package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
)

type TransactionController struct {
	service service_interfaces.TransactionService
}

func NewTransactionController(service service_interfaces.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/transactions", c.getByAccount).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}", c.getTransaction).Methods(http.MethodGet)
}

func (c *TransactionController) getTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	transaction, err := c.service.GetTransaction(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("transaction fetched", models.NewTransactionResponse(transaction)), start)
}

func (c *TransactionController) getByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	accountID, err := parseID(r.URL.Query().Get("accountId"), "accountId")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	transactions, err := c.service.GetTransactionsByAccountID(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("transactions fetched", commons.NewPage(models.NewTransactionResponses(transactions))), start)
}
