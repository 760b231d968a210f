package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/api-sage/core-banking/src/internal/commons"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the storage errors services match on.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return commons.ErrRecordNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return commons.ErrDuplicateKey
	}
	return err
}
