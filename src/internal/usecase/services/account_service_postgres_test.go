package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/core-banking/src/internal/adapter/events"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/postgres"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/usecase/services"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
)

var pgAccountCols = []string{"id", "title", "balance", "status", "type", "currency", "customer_ids", "created_at", "closed_at", "version"}

// newPostgresAccounts drives the account service on a single pooled
// connection, so any statement issued outside the open transaction blocks
// until the context deadline.
func newPostgresAccounts(t *testing.T) (*services.AccountService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")
	accounts := postgres.NewAccountRepository(conn)
	ledger := services.NewTransactionService(postgres.NewTransactionRepository(conn), accounts, trackingid.New(), events.NopPublisher{})
	return services.NewAccountService(accounts, postgres.NewCustomerRepository(conn), ledger, lock.NewLocal()), mock
}

func withDeadline(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func expectLockedAccount(mock sqlmock.Sqlmock, id int64, balance string) {
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(pgAccountCols).
			AddRow(id, "t", balance, "OPEN", "CHECKING", "IRR", "{1}", time.Now().UTC(), nil, int64(1)))
}

func expectLedgerInsert(mock sqlmock.Sqlmock, id int64, note string, kind domain.TransactionType, status domain.TransactionStatus) {
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(sqlmock.AnyArg(), id, id, sqlmock.AnyArg(), note, string(kind), string(status), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
}

func TestPostgresDepositWritesLedgerInsideTransaction(t *testing.T) {
	svc, mock := newPostgresAccounts(t)

	mock.ExpectBegin()
	expectLockedAccount(mock, 5, "100")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs("t", sqlmock.AnyArg(), domain.AccountStatusOpen, sqlmock.AnyArg(), int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))
	expectLedgerInsert(mock, 5, domain.DefaultDepositNote, domain.TransactionTypeDeposit, domain.TransactionStatusSucceed)
	mock.ExpectCommit()

	record, err := svc.Deposit(withDeadline(t), 5, dec("25"), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusSucceed, record.Status)
	assert.Equal(t, int64(5), record.ReceiverID)
}

func TestPostgresFailedWithdrawalRecordsAfterRollback(t *testing.T) {
	svc, mock := newPostgresAccounts(t)

	mock.ExpectBegin()
	expectLockedAccount(mock, 5, "10")
	mock.ExpectRollback()
	expectLedgerInsert(mock, 5, domain.DefaultWithdrawNote, domain.TransactionTypeWithdrawal, domain.TransactionStatusFailed)

	_, err := svc.Withdraw(withDeadline(t), 5, dec("50"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestPostgresFailedCommitRecordsFailure(t *testing.T) {
	svc, mock := newPostgresAccounts(t)

	mock.ExpectBegin()
	expectLockedAccount(mock, 5, "10")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))
	expectLedgerInsert(mock, 5, domain.DefaultWithdrawNote, domain.TransactionTypeWithdrawal, domain.TransactionStatusSucceed)
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))
	expectLedgerInsert(mock, 5, domain.DefaultWithdrawNote, domain.TransactionTypeWithdrawal, domain.TransactionStatusFailed)

	_, err := svc.Withdraw(withDeadline(t), 5, dec("5"), "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "commit account transaction")
	assert.NotErrorIs(t, err, domain.ErrLedgerUnavailable)
}

func TestPostgresLedgerRetryStaysInTransaction(t *testing.T) {
	svc, mock := newPostgresAccounts(t)

	mock.ExpectBegin()
	expectLockedAccount(mock, 5, "10")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	expectLedgerInsert(mock, 5, domain.DefaultDepositNote, domain.TransactionTypeDeposit, domain.TransactionStatusSucceed)
	mock.ExpectCommit()

	_, err := svc.Deposit(withDeadline(t), 5, dec("1"), "")
	require.NoError(t, err)
}
