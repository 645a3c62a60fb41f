package employee_test

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/mocks"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	employees *mocks.EmployeeRepository
	requests  *mocks.AccountRequestRepository
	customers *mocks.CustomerRepository
	loans     *mocks.LoanRepository
	pub       *mocks.EventPublisher
	service   employee.EmployeeService
}

func setupTest() fixture {
	f := fixture{
		employees: new(mocks.EmployeeRepository),
		requests:  new(mocks.AccountRequestRepository),
		customers: new(mocks.CustomerRepository),
		loans:     new(mocks.LoanRepository),
		pub:       new(mocks.EventPublisher),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = employee.NewEmployeeService(f.employees, f.requests, f.customers, f.loans, f.pub, logger)
	return f
}

func pendingRequest() *accountrequest.Request {
	return &accountrequest.Request{
		ID:              11,
		FirstName:       "Asha",
		LastName:        "Rao",
		MobileNumber:    "9876543210",
		Email:           "asha@example.com",
		StartingDeposit: decimal.RequireFromString("1500.00"),
		PasswordHash:    "$2a$10$hash",
		Status:          accountrequest.StatusPending,
	}
}

func TestEmployeeService_HandleAccountRequest(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Approve inserts one customer with the starting deposit", func(t *testing.T) {
		f := setupTest()
		f.requests.On("BeginTx", ctx).Return(tx, nil).Once()
		f.requests.On("FindForUpdateInTx", ctx, tx, int64(11)).Return(pendingRequest(), nil).Once()
		f.customers.On("LockAccountNumbersInTx", ctx, tx).Return(nil).Once()
		f.customers.On("ListAccountNumbersInTx", ctx, tx).Return([]int64{1, 2, 4}, nil).Once()
		f.customers.On("InsertInTx", ctx, tx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.AccountNumber == 3 && c.Email == "asha@example.com" &&
				c.Balance.Equal(decimal.NewFromInt(1500)) && c.PasswordHash == "$2a$10$hash"
		})).Return(nil).Once()
		f.requests.On("ResolveInTx", ctx, tx, int64(11), accountrequest.StatusApproved).Return(nil).Once()
		f.employees.On("IncrementCounterInTx", ctx, tx, int64(2), employee.ActionApprove).Return(nil).Once()
		f.requests.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishAccountRequestResolved", ctx, mock.MatchedBy(func(e event.AccountRequestResolvedEvent) bool {
			return e.Approved && e.AccountNumber != nil && *e.AccountNumber == 3 && e.EmployeeID == 2
		})).Return(nil).Once()

		dec, err := f.service.HandleAccountRequest(ctx, 2, 11, employee.ActionApprove)

		require.NoError(t, err)
		require.NotNil(t, dec.Customer)
		assert.Equal(t, int64(3), dec.Customer.AccountNumber)
		assert.Equal(t, accountrequest.StatusApproved, dec.Request.Status)
		f.customers.AssertNumberOfCalls(t, "InsertInTx", 1)
		f.employees.AssertNumberOfCalls(t, "IncrementCounterInTx", 1)
		f.requests.AssertExpectations(t)
		f.customers.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})

	t.Run("Deny only marks the request and counts it", func(t *testing.T) {
		f := setupTest()
		f.requests.On("BeginTx", ctx).Return(tx, nil).Once()
		f.requests.On("FindForUpdateInTx", ctx, tx, int64(11)).Return(pendingRequest(), nil).Once()
		f.requests.On("ResolveInTx", ctx, tx, int64(11), accountrequest.StatusDenied).Return(nil).Once()
		f.employees.On("IncrementCounterInTx", ctx, tx, int64(2), employee.ActionDeny).Return(nil).Once()
		f.requests.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishAccountRequestResolved", ctx, mock.MatchedBy(func(e event.AccountRequestResolvedEvent) bool {
			return !e.Approved && e.AccountNumber == nil
		})).Return(nil).Once()

		dec, err := f.service.HandleAccountRequest(ctx, 2, 11, employee.ActionDeny)

		require.NoError(t, err)
		assert.Nil(t, dec.Customer)
		f.customers.AssertNotCalled(t, "InsertInTx", mock.Anything, mock.Anything, mock.Anything)
		f.requests.AssertExpectations(t)
	})

	t.Run("Second approval of the same request is rejected", func(t *testing.T) {
		f := setupTest()
		resolved := pendingRequest()
		resolved.Status = accountrequest.StatusApproved
		f.requests.On("BeginTx", ctx).Return(tx, nil).Once()
		f.requests.On("FindForUpdateInTx", ctx, tx, int64(11)).Return(resolved, nil).Once()
		f.requests.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.HandleAccountRequest(ctx, 2, 11, employee.ActionApprove)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyResolved)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.customers.AssertNotCalled(t, "InsertInTx", mock.Anything, mock.Anything, mock.Anything)
		f.employees.AssertNotCalled(t, "IncrementCounterInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown request", func(t *testing.T) {
		f := setupTest()
		f.requests.On("BeginTx", ctx).Return(tx, nil).Once()
		f.requests.On("FindForUpdateInTx", ctx, tx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()
		f.requests.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.HandleAccountRequest(ctx, 2, 404, employee.ActionDeny)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Unknown action", func(t *testing.T) {
		f := setupTest()

		_, err := f.service.HandleAccountRequest(ctx, 2, 11, employee.Action("escalate"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.requests.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Counter failure rolls the whole decision back", func(t *testing.T) {
		f := setupTest()
		f.requests.On("BeginTx", ctx).Return(tx, nil).Once()
		f.requests.On("FindForUpdateInTx", ctx, tx, int64(11)).Return(pendingRequest(), nil).Once()
		f.requests.On("ResolveInTx", ctx, tx, int64(11), accountrequest.StatusDenied).Return(nil).Once()
		f.employees.On("IncrementCounterInTx", ctx, tx, int64(2), employee.ActionDeny).Return(apperrors.ErrDatabase).Once()
		f.requests.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.HandleAccountRequest(ctx, 2, 11, employee.ActionDeny)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		f.requests.AssertNotCalled(t, "CommitTx", ctx, tx)
		f.requests.AssertExpectations(t)
	})
}

func pendingLoan() *loan.Loan {
	return &loan.Loan{
		ID:             21,
		AccountNumber:  3,
		Amount:         decimal.NewFromInt(1000),
		Tenure:         12,
		InterestRate:   decimal.NewFromInt(10),
		TotalRepayment: decimal.NewFromInt(2200),
		RepaymentPaid:  decimal.Zero,
		Status:         loan.StatusPending,
	}
}

func TestEmployeeService_HandleLoanRequest(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Approve credits the balance once", func(t *testing.T) {
		f := setupTest()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(21)).Return(pendingLoan(), nil).Once()
		f.loans.On("ResolveInTx", ctx, tx, int64(21), loan.StatusApproved).Return(nil).Once()
		f.customers.On("FindForUpdateInTx", ctx, tx, int64(3)).
			Return(&customer.Customer{AccountNumber: 3, Balance: decimal.NewFromInt(200)}, nil).Once()
		f.customers.On("UpdateBalanceInTx", ctx, tx, int64(3), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(1200))
		})).Return(nil).Once()
		f.employees.On("IncrementCounterInTx", ctx, tx, int64(2), employee.ActionApprove).Return(nil).Once()
		f.loans.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishLoanResolved", ctx, mock.MatchedBy(func(e event.LoanResolvedEvent) bool {
			return e.Approved && e.LoanID == 21 && e.Amount == "1000.00"
		})).Return(nil).Once()

		dec, err := f.service.HandleLoanRequest(ctx, 2, 21, employee.ActionApprove)

		require.NoError(t, err)
		assert.Equal(t, loan.StatusApproved, dec.Loan.Status)
		assert.Equal(t, "1200.00", dec.Balance.StringFixed(2))
		f.customers.AssertNumberOfCalls(t, "UpdateBalanceInTx", 1)
		f.loans.AssertExpectations(t)
		f.customers.AssertExpectations(t)
		f.employees.AssertExpectations(t)
	})

	t.Run("Deny leaves the balance alone", func(t *testing.T) {
		f := setupTest()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(21)).Return(pendingLoan(), nil).Once()
		f.loans.On("ResolveInTx", ctx, tx, int64(21), loan.StatusDenied).Return(nil).Once()
		f.employees.On("IncrementCounterInTx", ctx, tx, int64(2), employee.ActionDeny).Return(nil).Once()
		f.loans.On("CommitTx", ctx, tx).Return(nil).Once()
		f.pub.On("PublishLoanResolved", ctx, mock.Anything).Return(nil).Once()

		dec, err := f.service.HandleLoanRequest(ctx, 2, 21, employee.ActionDeny)

		require.NoError(t, err)
		assert.Equal(t, loan.StatusDenied, dec.Loan.Status)
		f.customers.AssertNotCalled(t, "UpdateBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already approved loan is not credited again", func(t *testing.T) {
		f := setupTest()
		approved := pendingLoan()
		approved.Status = loan.StatusApproved
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(21)).Return(approved, nil).Once()
		f.loans.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.HandleLoanRequest(ctx, 2, 21, employee.ActionApprove)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyResolved)
		f.customers.AssertNotCalled(t, "UpdateBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Balance credit failure rolls back the status change", func(t *testing.T) {
		f := setupTest()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(21)).Return(pendingLoan(), nil).Once()
		f.loans.On("ResolveInTx", ctx, tx, int64(21), loan.StatusApproved).Return(nil).Once()
		f.customers.On("FindForUpdateInTx", ctx, tx, int64(3)).Return(nil, apperrors.ErrNotFound).Once()
		f.loans.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.service.HandleLoanRequest(ctx, 2, 21, employee.ActionApprove)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.loans.AssertNotCalled(t, "CommitTx", ctx, tx)
		f.loans.AssertExpectations(t)
	})
}

func TestEmployeeService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := setupTest()
	accountNumber := int64(3)
	f.requests.On("ListPending", ctx).Return([]*accountrequest.Request{pendingRequest()}, nil).Once()
	f.loans.On("ListPendingWithApplicant", ctx).
		Return([]*loan.LoanWithApplicant{{Loan: *pendingLoan(), FirstName: "Asha", LastName: "Rao"}}, nil).Once()
	f.requests.On("ListResolved", ctx).
		Return([]*accountrequest.Resolved{{Request: *pendingRequest(), AccountNumber: &accountNumber}}, nil).Once()
	f.loans.On("ListResolvedWithApplicant", ctx).Return([]*loan.LoanWithApplicant{}, nil).Once()

	d, err := f.service.Dashboard(ctx)

	require.NoError(t, err)
	assert.Len(t, d.PendingAccountRequests, 1)
	assert.Len(t, d.PendingLoans, 1)
	assert.Equal(t, int64(3), *d.ResolvedAccountRequests[0].AccountNumber)
	assert.Empty(t, d.ResolvedLoans)
}

func TestEmployeeService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setupTest()
		f.employees.On("Create", ctx, mock.MatchedBy(func(e *employee.Employee) bool {
			return e.Name == "Meera" && e.Email == "meera@bank.test" && e.PasswordHash != "" && e.PasswordHash != "pw"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*employee.Employee).ID = 9
		}).Return(nil).Once()

		e, err := f.service.Register(ctx, " Meera ", "meera@bank.test", "pw")

		require.NoError(t, err)
		assert.Equal(t, int64(9), e.ID)
	})

	t.Run("Error - Duplicate email", func(t *testing.T) {
		f := setupTest()
		f.employees.On("Create", ctx, mock.Anything).Return(apperrors.ErrAlreadyExists).Once()

		_, err := f.service.Register(ctx, "Meera", "meera@bank.test", "pw")

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})
}

func TestEmployeeService_Profile(t *testing.T) {
	ctx := context.Background()
	f := setupTest()
	f.employees.On("FindByID", ctx, int64(2)).
		Return(&employee.Employee{ID: 2, Name: "Meera", RequestsApproved: 4, RequestsDenied: 1}, nil).Once()
	f.employees.On("FindByID", ctx, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	e, err := f.service.Profile(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, e.RequestsApproved)

	_, err = f.service.Profile(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
