package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/core-banking/src/internal/adapter/events"
	"github.com/api-sage/core-banking/src/internal/adapter/http/controller"
	"github.com/api-sage/core-banking/src/internal/adapter/http/middleware"
	"github.com/api-sage/core-banking/src/internal/adapter/http/router"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking/src/internal/usecase/services"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
)

const (
	channelID  = "CoreBankingApp"
	channelKey = "CoreBankingKey001"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	transactions := memory.NewTransactionRepository()
	accounts := memory.NewAccountRepository(transactions)
	customers := memory.NewCustomerRepository()
	locker := lock.NewLocal()

	ledger := services.NewTransactionService(transactions, accounts, trackingid.New(), events.NopPublisher{})
	accountSvc := services.NewAccountService(accounts, customers, ledger, locker)
	loanSvc := services.NewLoanService(memory.NewLoanRepository(), accountSvc, locker)
	customerSvc := services.NewCustomerService(customers, accounts)

	handler := router.New(
		middleware.BasicAuth(channelID, channelKey, ""),
		controller.NewAccountController(accountSvc),
		controller.NewLoanController(loanSvc),
		controller.NewTransactionController(ledger),
		controller.NewCustomerController(customerSvc),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+router.APIPrefix+path, reader)
	require.NoError(t, err)
	req.SetBasicAuth(channelID, channelKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHealthAndDocsArePublic(t *testing.T) {
	srv := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, err = srv.Client().Get(srv.URL + "/swagger/openapi.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + router.APIPrefix + "/accounts")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBankingFlow(t *testing.T) {
	srv := newServer(t)

	status, env := call(t, srv, http.MethodPost, "/customers", map[string]any{
		"fullName":     "Sara Ahmadi",
		"nationalCode": "0012345678",
		"phoneNumber":  "09120000000",
		"type":         "INDIVIDUAL",
		"birthDate":    "1992-03-14",
	})
	require.Equal(t, http.StatusCreated, status, env.Errors)
	var customer struct {
		ID int64 `json:"id"`
	}
	decodeData(t, env, &customer)

	status, env = call(t, srv, http.MethodPost, "/accounts", map[string]any{
		"customerIds": []int64{customer.ID},
		"type":        "CHECKING",
		"currency":    "IRR",
		"balance":     "100.00",
	})
	require.Equal(t, http.StatusCreated, status, env.Errors)
	var account struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	decodeData(t, env, &account)
	assert.Equal(t, "Sara Ahmadi - CHECKING", account.Title)

	status, env = call(t, srv, http.MethodPut, "/accounts/deposit", map[string]any{"accountId": account.ID, "amount": "25.50"})
	require.Equal(t, http.StatusOK, status, env.Errors)

	status, env = call(t, srv, http.MethodPut, "/accounts/withdraw", map[string]any{"accountId": account.ID, "amount": "500"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{fmt.Sprintf("Account: %d does not have enough balance!", account.ID)}, env.Errors)

	status, env = call(t, srv, http.MethodGet, fmt.Sprintf("/accounts/balance/%d", account.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var balance struct {
		Balance string `json:"balance"`
	}
	decodeData(t, env, &balance)
	assert.Equal(t, "125.50", balance.Balance)

	status, env = call(t, srv, http.MethodGet, fmt.Sprintf("/transactions?accountId=%d", account.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Count int `json:"count"`
		Items []struct {
			Status string `json:"status"`
		} `json:"items"`
	}
	decodeData(t, env, &page)
	require.Equal(t, 2, page.Count)
	assert.Equal(t, "FAILED", page.Items[0].Status)
	assert.Equal(t, "SUCCEED", page.Items[1].Status)

	status, _ = call(t, srv, http.MethodPut, "/accounts/transfer", map[string]any{"senderId": account.ID, "receiverId": 999, "amount": "1"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, srv, http.MethodPost, "/customers", map[string]any{
		"fullName":     "Someone Else",
		"nationalCode": "0012345678",
		"phoneNumber":  "0913",
		"type":         "LEGAL",
		"birthDate":    "2001-01-01",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, srv, http.MethodDelete, fmt.Sprintf("/customers/%d", customer.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoanEndpoints(t *testing.T) {
	srv := newServer(t)

	status, env := call(t, srv, http.MethodGet, "/loans/calculate?amount=20000000&count=12&rate=EIGHTEEN", nil)
	require.Equal(t, http.StatusOK, status)
	var calc struct {
		Installment string `json:"installment"`
	}
	decodeData(t, env, &calc)
	assert.Equal(t, "1829166.67", calc.Installment)

	status, _ = call(t, srv, http.MethodGet, "/loans/calculate?amount=100&count=2&rate=TWELVE", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodPost, "/loans", map[string]any{
		"accountId": 77, "amount": "1000", "totalCount": 2, "rate": "FOUR", "type": "PERSONAL",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, srv, http.MethodPut, "/loans/pay", map[string]any{"accountId": 1, "loanId": 1})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMalformedInputIsRejected(t *testing.T) {
	srv := newServer(t)

	status, env := call(t, srv, http.MethodPut, "/accounts/deposit", map[string]any{"accountId": 1, "amount": "0"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", env.Message)

	status, _ = call(t, srv, http.MethodPut, "/accounts/deposit", map[string]any{"accountId": 1, "amount": "1", "bogus": true})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodGet, "/transactions?accountId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodPut, "/accounts/status/1?status=FROZEN", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
