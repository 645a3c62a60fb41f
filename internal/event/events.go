package event

import (
	"context"
	"time"
)

const (
	RoutingKeyAccountRequestApproved = "account_request.approved"
	RoutingKeyAccountRequestDenied   = "account_request.denied"
	RoutingKeyLoanApproved           = "loan.approved"
	RoutingKeyLoanDenied             = "loan.denied"
	RoutingKeyLoanRepaid             = "loan.repaid"
	RoutingKeyCustomerClosed         = "customer.closed"
)

type EventPublisher interface {
	PublishAccountRequestResolved(ctx context.Context, e AccountRequestResolvedEvent) error
	PublishLoanResolved(ctx context.Context, e LoanResolvedEvent) error
	PublishLoanRepaid(ctx context.Context, e LoanRepaidEvent) error
	PublishCustomerClosed(ctx context.Context, e CustomerClosedEvent) error
}

// AccountRequestResolvedEvent is emitted once an employee approves or denies a signup.
// AccountNumber is only set on approval.
type AccountRequestResolvedEvent struct {
	RequestID     int64     `json:"requestId"`
	Approved      bool      `json:"approved"`
	AccountNumber *int64    `json:"accountNumber,omitempty"`
	Email         string    `json:"email"`
	EmployeeID    int64     `json:"employeeId"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e AccountRequestResolvedEvent) RoutingKey() string {
	if e.Approved {
		return RoutingKeyAccountRequestApproved
	}
	return RoutingKeyAccountRequestDenied
}

type LoanResolvedEvent struct {
	LoanID        int64     `json:"loanId"`
	AccountNumber int64     `json:"accountNumber"`
	Approved      bool      `json:"approved"`
	Amount        string    `json:"amount"`
	EmployeeID    int64     `json:"employeeId"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e LoanResolvedEvent) RoutingKey() string {
	if e.Approved {
		return RoutingKeyLoanApproved
	}
	return RoutingKeyLoanDenied
}

type LoanRepaidEvent struct {
	LoanID        int64     `json:"loanId"`
	AccountNumber int64     `json:"accountNumber"`
	Amount        string    `json:"amount"`
	RepaymentLeft string    `json:"repaymentLeft"`
	FullyRepaid   bool      `json:"fullyRepaid"`
	Timestamp     time.Time `json:"timestamp"`
}

type CustomerClosedEvent struct {
	AccountNumber   int64     `json:"accountNumber"`
	OutstandingDues string    `json:"outstandingDues"`
	Timestamp       time.Time `json:"timestamp"`
}
