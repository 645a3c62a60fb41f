package mocks

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/event"
)

var (
	_ customer.Repository       = (*CustomerRepository)(nil)
	_ customer.DuesReader       = (*DuesReader)(nil)
	_ loan.Repository           = (*LoanRepository)(nil)
	_ accountrequest.Repository = (*AccountRequestRepository)(nil)
	_ employee.Repository       = (*EmployeeRepository)(nil)

	_ customer.CustomerService = (*CustomerService)(nil)
	_ loan.LoanService         = (*LoanService)(nil)
	_ accountrequest.Service   = (*AccountRequestService)(nil)
	_ employee.EmployeeService = (*EmployeeService)(nil)
	_ auth.Authenticator       = (*Authenticator)(nil)

	_ event.EventPublisher = (*EventPublisher)(nil)
	_ auth.SessionStore    = (*SessionStore)(nil)
)
