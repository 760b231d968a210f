package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/api-sage/core-banking/src/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.AccountNotFound(1), http.StatusNotFound},
		{domain.InvalidLoanAccount(1), http.StatusNotFound},
		{domain.NotValidLoanAccount(1), http.StatusForbidden},
		{domain.InsufficientBalance(1), http.StatusBadRequest},
		{domain.UnknownRate("X"), http.StatusBadRequest},
		{domain.NationalCodeTaken("0012345678"), http.StatusConflict},
		{domain.ConcurrentUpdate("Account", 1), http.StatusConflict},
		{errors.Join(domain.InsufficientBalance(1), domain.LedgerUnavailable(errors.New("down"))), http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", domain.LoanNotFound(3)), http.StatusNotFound},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestMessagesOfSplitsJoinedErrors(t *testing.T) {
	err := errors.Join(domain.InsufficientBalance(4), domain.LedgerUnavailable(errors.New("down")))

	assert.Equal(t, []string{
		"Account: 4 does not have enough balance!",
		"ledger unavailable: down",
	}, messagesOf(err))
}

func TestMessagesOfFindsWrappedJoin(t *testing.T) {
	joined := errors.Join(domain.IllegalAccountStatus("Account: 2 is not available for deposit!"), domain.LedgerUnavailable(errors.New("down")))
	err := fmt.Errorf("deposit: %w", joined)

	assert.Equal(t, []string{
		"Account: 2 is not available for deposit!",
		"ledger unavailable: down",
	}, messagesOf(err))
	assert.Equal(t, []string{"Account: 9 not found!"}, messagesOf(domain.AccountNotFound(9)))
}
