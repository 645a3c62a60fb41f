package mocks

import (
	"context"

	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CustomerRepository struct {
	mock.Mock
}

func (_m *CustomerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *CustomerRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *CustomerRepository) FindByAccountNumber(ctx context.Context, accountNumber int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) ListByEmail(ctx context.Context, email string) ([]*customer.Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) ExistsWithDetails(ctx context.Context, firstName string, lastName string, mobileNumber string, email string) (bool, error) {
	ret := _m.Called(ctx, firstName, lastName, mobileNumber, email)

	return ret.Bool(0), ret.Error(1)
}

func (_m *CustomerRepository) ListAccountNumbers(ctx context.Context) ([]int64, error) {
	ret := _m.Called(ctx)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, tx, accountNumber)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, accountNumber int64, balance decimal.Decimal) error {
	ret := _m.Called(ctx, tx, accountNumber, balance)

	return ret.Error(0)
}

func (_m *CustomerRepository) LockAccountNumbersInTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *CustomerRepository) ListAccountNumbersInTx(ctx context.Context, tx pgx.Tx) ([]int64, error) {
	ret := _m.Called(ctx, tx)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) InsertInTx(ctx context.Context, tx pgx.Tx, c *customer.Customer) error {
	ret := _m.Called(ctx, tx, c)

	return ret.Error(0)
}

func (_m *CustomerRepository) LockLoansInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error {
	ret := _m.Called(ctx, tx, accountNumber)

	return ret.Error(0)
}

func (_m *CustomerRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error {
	ret := _m.Called(ctx, tx, accountNumber)

	return ret.Error(0)
}

type DuesReader struct {
	mock.Mock
}

func (_m *DuesReader) OutstandingDues(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 decimal.Decimal
	if rv, ok := ret.Get(0).(decimal.Decimal); ok {
		r0 = rv
	}

	return r0, ret.Error(1)
}

type LoanRepository struct {
	mock.Mock
}

func (_m *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	ret := _m.Called(ctx, l)

	return ret.Error(0)
}

func (_m *LoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	ret := _m.Called(ctx, loanID)

	var r0 *loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) ListByAccount(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) ListApprovedByAccount(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) OutstandingDues(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 decimal.Decimal
	if rv, ok := ret.Get(0).(decimal.Decimal); ok {
		r0 = rv
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) ListPendingWithApplicant(ctx context.Context) ([]*loan.LoanWithApplicant, error) {
	ret := _m.Called(ctx)

	var r0 []*loan.LoanWithApplicant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.LoanWithApplicant)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) ListResolvedWithApplicant(ctx context.Context) ([]*loan.LoanWithApplicant, error) {
	ret := _m.Called(ctx)

	var r0 []*loan.LoanWithApplicant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.LoanWithApplicant)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) CountPending(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	return ret.Int(0), ret.Error(1)
}

func (_m *LoanRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	ret := _m.Called(ctx, tx, loanID)

	var r0 *loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanRepository) UpdateRepaymentPaidInTx(ctx context.Context, tx pgx.Tx, loanID int64, repaymentPaid decimal.Decimal) error {
	ret := _m.Called(ctx, tx, loanID, repaymentPaid)

	return ret.Error(0)
}

func (_m *LoanRepository) ResolveInTx(ctx context.Context, tx pgx.Tx, loanID int64, status loan.Status) error {
	ret := _m.Called(ctx, tx, loanID, status)

	return ret.Error(0)
}

type AccountRequestRepository struct {
	mock.Mock
}

func (_m *AccountRequestRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *AccountRequestRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	return ret.Error(0)
}

func (_m *AccountRequestRepository) Create(ctx context.Context, r *accountrequest.Request) error {
	ret := _m.Called(ctx, r)

	return ret.Error(0)
}

func (_m *AccountRequestRepository) ListPending(ctx context.Context) ([]*accountrequest.Request, error) {
	ret := _m.Called(ctx)

	var r0 []*accountrequest.Request
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*accountrequest.Request)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestRepository) ListResolved(ctx context.Context) ([]*accountrequest.Resolved, error) {
	ret := _m.Called(ctx)

	var r0 []*accountrequest.Resolved
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*accountrequest.Resolved)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestRepository) CountPending(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	return ret.Int(0), ret.Error(1)
}

func (_m *AccountRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID int64) (*accountrequest.Request, error) {
	ret := _m.Called(ctx, tx, requestID)

	var r0 *accountrequest.Request
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*accountrequest.Request)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestRepository) ResolveInTx(ctx context.Context, tx pgx.Tx, requestID int64, status accountrequest.Status) error {
	ret := _m.Called(ctx, tx, requestID, status)

	return ret.Error(0)
}

type EmployeeRepository struct {
	mock.Mock
}

func (_m *EmployeeRepository) FindByID(ctx context.Context, employeeID int64) (*employee.Employee, error) {
	ret := _m.Called(ctx, employeeID)

	var r0 *employee.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.Employee)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	ret := _m.Called(ctx, email)

	var r0 *employee.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.Employee)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	ret := _m.Called(ctx, e)

	return ret.Error(0)
}

func (_m *EmployeeRepository) IncrementCounterInTx(ctx context.Context, tx pgx.Tx, employeeID int64, action employee.Action) error {
	ret := _m.Called(ctx, tx, employeeID, action)

	return ret.Error(0)
}
