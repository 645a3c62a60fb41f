package customer_test

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/mocks"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decimalEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

type serviceFixture struct {
	repo    *mocks.CustomerRepository
	dues    *mocks.DuesReader
	pub     *mocks.EventPublisher
	service customer.CustomerService
}

func setupTest() serviceFixture {
	f := serviceFixture{
		repo: new(mocks.CustomerRepository),
		dues: new(mocks.DuesReader),
		pub:  new(mocks.EventPublisher),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = customer.NewCustomerService(f.repo, f.dues, f.pub, logger)
	return f
}

func TestCustomerService_Deposit(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Success", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(7)).
			Return(&customer.Customer{AccountNumber: 7, Balance: decimal.NewFromInt(100)}, nil).Once()
		f.repo.On("UpdateBalanceInTx", ctx, tx, int64(7), decimalEq("125.25")).Return(nil).Once()
		f.repo.On("CommitTx", ctx, tx).Return(nil).Once()

		cust, err := f.service.Deposit(ctx, 7, decimal.RequireFromString("25.25"))

		require.NoError(t, err)
		assert.Equal(t, "125.25", cust.Balance.StringFixed(2))
		f.repo.AssertExpectations(t)
		f.repo.AssertNotCalled(t, "RollbackTx", ctx, tx)
	})

	t.Run("Error - Non positive amount never opens a transaction", func(t *testing.T) {
		f := setupTest()

		_, err := f.service.Deposit(ctx, 7, decimal.Zero)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertNotCalled(t, "BeginTx", ctx)
	})

	t.Run("Error - Amount finer than a paisa never opens a transaction", func(t *testing.T) {
		f := setupTest()

		_, err := f.service.Deposit(ctx, 7, decimal.RequireFromString("0.005"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertNotCalled(t, "BeginTx", ctx)
	})

	t.Run("Error - Balance past the column limit rolls back", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(7)).
			Return(&customer.Customer{AccountNumber: 7, Balance: decimal.RequireFromString("9999999999999.00")}, nil).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.Deposit(ctx, 7, decimal.NewFromInt(1))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertExpectations(t)
		f.repo.AssertNotCalled(t, "UpdateBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Unknown account rolls back", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.Deposit(ctx, 99, decimal.NewFromInt(10))

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.repo.AssertExpectations(t)
	})
}

func TestCustomerService_Withdraw(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Success", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(3)).
			Return(&customer.Customer{AccountNumber: 3, Balance: decimal.NewFromInt(500)}, nil).Once()
		f.repo.On("UpdateBalanceInTx", ctx, tx, int64(3), decimalEq("300")).Return(nil).Once()
		f.repo.On("CommitTx", ctx, tx).Return(nil).Once()

		cust, err := f.service.Withdraw(ctx, 3, decimal.NewFromInt(200))

		require.NoError(t, err)
		assert.True(t, cust.Balance.Equal(decimal.NewFromInt(300)))
		f.repo.AssertExpectations(t)
	})

	t.Run("Error - Amount finer than a paisa never opens a transaction", func(t *testing.T) {
		f := setupTest()

		_, err := f.service.Withdraw(ctx, 7, decimal.RequireFromString("0.004"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertNotCalled(t, "BeginTx", ctx)
	})

	t.Run("Error - Insufficient funds writes nothing", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(3)).
			Return(&customer.Customer{AccountNumber: 3, Balance: decimal.NewFromInt(50)}, nil).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.Withdraw(ctx, 3, decimal.NewFromInt(51))

		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		f.repo.AssertNotCalled(t, "UpdateBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "CommitTx", ctx, tx)
		f.repo.AssertExpectations(t)
	})

	t.Run("Error - Commit failure is reported", func(t *testing.T) {
		f := setupTest()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("FindForUpdateInTx", ctx, tx, int64(3)).
			Return(&customer.Customer{AccountNumber: 3, Balance: decimal.NewFromInt(50)}, nil).Once()
		f.repo.On("UpdateBalanceInTx", ctx, tx, int64(3), decimalEq("40")).Return(nil).Once()
		f.repo.On("CommitTx", ctx, tx).Return(apperrors.ErrDatabase).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.Withdraw(ctx, 3, decimal.NewFromInt(10))

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		f.repo.AssertExpectations(t)
	})
}

func TestCustomerService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setupTest()
		f.repo.On("FindByAccountNumber", ctx, int64(1)).
			Return(&customer.Customer{AccountNumber: 1, Balance: decimal.RequireFromString("10.5")}, nil).Once()

		balance, err := f.service.GetBalance(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "10.50", balance.StringFixed(2))
	})

	t.Run("Error - Not found", func(t *testing.T) {
		f := setupTest()
		f.repo.On("FindByAccountNumber", ctx, int64(2)).Return(nil, apperrors.ErrNotFound).Once()

		_, err := f.service.GetBalance(ctx, 2)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCustomerService_CloseAccount(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Closes even with outstanding dues", func(t *testing.T) {
		f := setupTest()
		f.dues.On("OutstandingDues", ctx, int64(4)).Return(decimal.NewFromInt(1700), nil).Once()
		var order []string
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("LockLoansInTx", ctx, tx, int64(4)).
			Run(func(mock.Arguments) { order = append(order, "lock loans") }).Return(nil).Once()
		f.repo.On("DeleteInTx", ctx, tx, int64(4)).
			Run(func(mock.Arguments) { order = append(order, "delete customer") }).Return(nil).Once()
		f.repo.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishCustomerClosed", ctx, mock.MatchedBy(func(e event.CustomerClosedEvent) bool {
			return e.AccountNumber == 4 && e.OutstandingDues == "1700.00"
		})).Return(nil).Once()

		err := f.service.CloseAccount(ctx, 4)

		assert.NoError(t, err)
		assert.Equal(t, []string{"lock loans", "delete customer"}, order, "loans are locked before the customer row")
		f.repo.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})

	t.Run("Publish failure does not fail the close", func(t *testing.T) {
		f := setupTest()
		f.dues.On("OutstandingDues", ctx, int64(4)).Return(decimal.Zero, nil).Once()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("LockLoansInTx", ctx, tx, int64(4)).Return(nil).Once()
		f.repo.On("DeleteInTx", ctx, tx, int64(4)).Return(nil).Once()
		f.repo.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishCustomerClosed", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		assert.NoError(t, f.service.CloseAccount(ctx, 4))
	})

	t.Run("Error - Unknown account", func(t *testing.T) {
		f := setupTest()
		f.dues.On("OutstandingDues", ctx, int64(8)).Return(decimal.Zero, nil).Once()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("LockLoansInTx", ctx, tx, int64(8)).Return(nil).Once()
		f.repo.On("DeleteInTx", ctx, tx, int64(8)).Return(apperrors.ErrNotFound).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		err := f.service.CloseAccount(ctx, 8)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.pub.AssertNotCalled(t, "PublishCustomerClosed", mock.Anything, mock.Anything)
	})
	t.Run("Error - Loan lock failure rolls back before the delete", func(t *testing.T) {
		f := setupTest()
		f.dues.On("OutstandingDues", ctx, int64(4)).Return(decimal.Zero, nil).Once()
		f.repo.On("BeginTx", ctx).Return(tx, nil).Once()
		f.repo.On("LockLoansInTx", ctx, tx, int64(4)).Return(apperrors.ErrDatabase).Once()
		f.repo.On("RollbackTx", ctx, tx).Return(nil).Once()

		err := f.service.CloseAccount(ctx, 4)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		f.repo.AssertNotCalled(t, "DeleteInTx", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertExpectations(t)
	})
}

func TestCustomerService_NextAccountNumber(t *testing.T) {
	ctx := context.Background()
	f := setupTest()
	f.repo.On("ListAccountNumbers", ctx).Return([]int64{1, 2, 4}, nil).Once()

	n, err := f.service.NextAccountNumber(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
