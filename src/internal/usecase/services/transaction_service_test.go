package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/core-banking/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/api-sage/core-banking/src/internal/usecase/services"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

// collidingRepo reports a duplicate key for the first n creates.
type collidingRepo struct {
	*memory.TransactionRepository
	n     int
	tried []int64
}

func (r *collidingRepo) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.tried = append(r.tried, transaction.ID)
	if len(r.tried) <= r.n {
		return domain.Transaction{}, commons.ErrDuplicateKey
	}
	return r.TransactionRepository.Create(ctx, transaction)
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestRecordPersistsAndPublishes(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Status == domain.TransactionStatusSucceed && tx.ID > 0
	})).Return(nil).Once()

	repo := memory.NewTransactionRepository()
	svc := services.NewTransactionService(repo, memory.NewAccountRepository(memory.NewTransactionRepository()), trackingid.New(), publisher)

	record, err := svc.Record(context.Background(), domain.TransactionRequest{
		SenderID:   1,
		ReceiverID: 2,
		Amount:     dec("9.99"),
		Note:       "transfer",
		Type:       domain.TransactionTypeTransfer,
		Status:     domain.TransactionStatusSucceed,
	})
	require.NoError(t, err)
	assert.False(t, record.CreatedAt.IsZero())

	stored, err := svc.GetTransaction(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)
	publisher.AssertExpectations(t)
}

func TestRecordIgnoresPublishFailure(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := services.NewTransactionService(memory.NewTransactionRepository(), memory.NewAccountRepository(memory.NewTransactionRepository()), trackingid.New(), publisher)

	_, err := svc.Record(context.Background(), domain.TransactionRequest{
		SenderID: 1, ReceiverID: 1, Amount: dec("1"),
		Type: domain.TransactionTypeDeposit, Status: domain.TransactionStatusFailed,
	})
	assert.NoError(t, err)
}

func TestRecordRetriesTakenIDs(t *testing.T) {
	repo := &collidingRepo{TransactionRepository: memory.NewTransactionRepository(), n: 2}
	svc := services.NewTransactionService(repo, memory.NewAccountRepository(memory.NewTransactionRepository()), trackingid.NewWithClock(fixedClock()), newNopPublisher())

	record, err := svc.Record(context.Background(), domain.TransactionRequest{Amount: dec("1")})
	require.NoError(t, err)

	require.Len(t, repo.tried, 3)
	assert.Less(t, repo.tried[0], repo.tried[1])
	assert.Equal(t, repo.tried[2], record.ID)
}

func TestRecordGivesUpAfterFiveCollisions(t *testing.T) {
	repo := &collidingRepo{TransactionRepository: memory.NewTransactionRepository(), n: 10}
	svc := services.NewTransactionService(repo, memory.NewAccountRepository(memory.NewTransactionRepository()), trackingid.New(), newNopPublisher())

	_, err := svc.Record(context.Background(), domain.TransactionRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, commons.ErrDuplicateKey)
	assert.Len(t, repo.tried, 5)
}

func TestGetTransactionsByAccountID(t *testing.T) {
	b := newBank(t)
	x := b.account(t, "100", domain.AccountStatusOpen)
	y := b.account(t, "0", domain.AccountStatusOpen)

	_, err := b.accountSvc.Transfer(context.Background(), x.ID, y.ID, dec("10"), "")
	require.NoError(t, err)
	_, err = b.accountSvc.Deposit(context.Background(), y.ID, dec("1"), "")
	require.NoError(t, err)

	list, err := b.ledger.GetTransactionsByAccountID(context.Background(), y.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.TransactionTypeDeposit, list[0].Type)

	_, err = b.ledger.GetTransactionsByAccountID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = b.ledger.GetTransaction(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

// collidingWriter reports a duplicate key for the first n writes.
type collidingWriter struct {
	n       int
	written []domain.Transaction
}

func (w *collidingWriter) CreateTransaction(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	w.written = append(w.written, transaction)
	if len(w.written) <= w.n {
		return domain.Transaction{}, commons.ErrDuplicateKey
	}
	return transaction, nil
}

func TestRecordWithinRetriesThroughWriterWithoutPublishing(t *testing.T) {
	publisher := new(mockPublisher)
	repo := memory.NewTransactionRepository()
	svc := services.NewTransactionService(repo, memory.NewAccountRepository(repo), trackingid.New(), publisher)
	writer := &collidingWriter{n: 1}

	record, err := svc.RecordWithin(context.Background(), writer, domain.TransactionRequest{
		SenderID:   4,
		ReceiverID: 4,
		Amount:     dec("3"),
		Type:       domain.TransactionTypeDeposit,
		Status:     domain.TransactionStatusSucceed,
	})
	require.NoError(t, err)
	require.Len(t, writer.written, 2)
	assert.Equal(t, writer.written[1].ID, record.ID)

	_, err = repo.Get(context.Background(), record.ID)
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func newNopPublisher() *mockPublisher {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return publisher
}
