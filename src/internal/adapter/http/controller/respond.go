package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respond(w http.ResponseWriter, r *http.Request, status int, payload any, start time.Time) {
	writeJSON(w, status, payload)
	logResponse(r, status, payload, start)
}

func respondValidation(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	respond(w, r, http.StatusBadRequest, commons.ErrorResponse[any]("validation failed", err.Error()), start)
}

// respondError maps a service error onto a status code. Details of
// unexpected failures are logged, not returned.
func respondError(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logError(r, err, logger.Fields{"status": status})
	}

	details := messagesOf(err)
	if status == http.StatusInternalServerError {
		details = []string{"Unable to process request right now"}
	}
	respond(w, r, status, commons.ErrorResponse[any](summaryFor(status), details...), start)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrInvalidLoanAccount):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotValidLoanAccount):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNationalCodeTaken),
		errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func summaryFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusForbidden:
		return "operation not permitted"
	case http.StatusConflict:
		return "request conflicts with current state"
	case http.StatusServiceUnavailable:
		return "ledger unavailable"
	case http.StatusBadRequest:
		return "request rejected"
	}
	return "internal server error"
}

func messagesOf(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		out := make([]string, 0, len(joined.Unwrap()))
		for _, inner := range joined.Unwrap() {
			out = append(out, inner.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return parseID(mux.Vars(r)[name], name)
}

func parseID(raw string, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
