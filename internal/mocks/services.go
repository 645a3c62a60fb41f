package mocks

import (
	"context"

	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CustomerService struct {
	mock.Mock
}

func (_m *CustomerService) GetCustomer(ctx context.Context, accountNumber int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerService) GetBalance(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 decimal.Decimal
	if rv, ok := ret.Get(0).(decimal.Decimal); ok {
		r0 = rv
	}

	return r0, ret.Error(1)
}

func (_m *CustomerService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*customer.Customer, error) {
	ret := _m.Called(ctx, accountNumber, amount)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*customer.Customer, error) {
	ret := _m.Called(ctx, accountNumber, amount)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerService) CloseAccount(ctx context.Context, accountNumber int64) error {
	ret := _m.Called(ctx, accountNumber)

	return ret.Error(0)
}

func (_m *CustomerService) NextAccountNumber(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	var r0 int64
	if rv, ok := ret.Get(0).(int64); ok {
		r0 = rv
	}

	return r0, ret.Error(1)
}

type LoanService struct {
	mock.Mock
}

func (_m *LoanService) Apply(ctx context.Context, accountNumber int64, amount decimal.Decimal, tenure int, interestRate decimal.Decimal) (*loan.Loan, error) {
	ret := _m.Called(ctx, accountNumber, amount, tenure, interestRate)

	var r0 *loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanService) Repay(ctx context.Context, accountNumber int64, loanID int64, amount decimal.Decimal) (*loan.Repayment, error) {
	ret := _m.Called(ctx, accountNumber, loanID, amount)

	var r0 *loan.Repayment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.Repayment)
	}

	return r0, ret.Error(1)
}

func (_m *LoanService) ListForCustomer(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanService) RepayableLoans(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}

	return r0, ret.Error(1)
}

func (_m *LoanService) AccountDetails(ctx context.Context, accountNumber int64) (*loan.AccountDetails, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 *loan.AccountDetails
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.AccountDetails)
	}

	return r0, ret.Error(1)
}

type AccountRequestService struct {
	mock.Mock
}

func (_m *AccountRequestService) Submit(ctx context.Context, app accountrequest.Application) (*accountrequest.Request, error) {
	ret := _m.Called(ctx, app)

	var r0 *accountrequest.Request
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*accountrequest.Request)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestService) ListPending(ctx context.Context) ([]*accountrequest.Request, error) {
	ret := _m.Called(ctx)

	var r0 []*accountrequest.Request
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*accountrequest.Request)
	}

	return r0, ret.Error(1)
}

func (_m *AccountRequestService) ListResolved(ctx context.Context) ([]*accountrequest.Resolved, error) {
	ret := _m.Called(ctx)

	var r0 []*accountrequest.Resolved
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*accountrequest.Resolved)
	}

	return r0, ret.Error(1)
}

type EmployeeService struct {
	mock.Mock
}

func (_m *EmployeeService) HandleAccountRequest(ctx context.Context, employeeID int64, requestID int64, action employee.Action) (*employee.AccountDecision, error) {
	ret := _m.Called(ctx, employeeID, requestID, action)

	var r0 *employee.AccountDecision
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.AccountDecision)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeService) HandleLoanRequest(ctx context.Context, employeeID int64, loanID int64, action employee.Action) (*employee.LoanDecision, error) {
	ret := _m.Called(ctx, employeeID, loanID, action)

	var r0 *employee.LoanDecision
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.LoanDecision)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeService) Dashboard(ctx context.Context) (*employee.Dashboard, error) {
	ret := _m.Called(ctx)

	var r0 *employee.Dashboard
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.Dashboard)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeService) Profile(ctx context.Context, employeeID int64) (*employee.Employee, error) {
	ret := _m.Called(ctx, employeeID)

	var r0 *employee.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.Employee)
	}

	return r0, ret.Error(1)
}

func (_m *EmployeeService) Register(ctx context.Context, name string, email string, plainPassword string) (*employee.Employee, error) {
	ret := _m.Called(ctx, name, email, plainPassword)

	var r0 *employee.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*employee.Employee)
	}

	return r0, ret.Error(1)
}

type Authenticator struct {
	mock.Mock
}

func (_m *Authenticator) IssueCaptcha(ctx context.Context, previousID string) (*auth.Captcha, error) {
	ret := _m.Called(ctx, previousID)

	var r0 *auth.Captcha
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*auth.Captcha)
	}

	return r0, ret.Error(1)
}

func (_m *Authenticator) CustomerLogin(ctx context.Context, email string, plainPassword string, captchaID string, captcha string) (*auth.Session, error) {
	ret := _m.Called(ctx, email, plainPassword, captchaID, captcha)

	var r0 *auth.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*auth.Session)
	}

	return r0, ret.Error(1)
}

func (_m *Authenticator) EmployeeLogin(ctx context.Context, email string, plainPassword string, captchaID string, captcha string) (*auth.Session, error) {
	ret := _m.Called(ctx, email, plainPassword, captchaID, captcha)

	var r0 *auth.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*auth.Session)
	}

	return r0, ret.Error(1)
}

func (_m *Authenticator) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	ret := _m.Called(ctx, token)

	var r0 auth.Identity
	if rv, ok := ret.Get(0).(auth.Identity); ok {
		r0 = rv
	}

	return r0, ret.Error(1)
}

func (_m *Authenticator) Logout(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)

	return ret.Error(0)
}
