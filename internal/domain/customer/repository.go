package customer

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	FindByAccountNumber(ctx context.Context, accountNumber int64) (*Customer, error)

	// ListByEmail returns every customer holding the address, oldest account first. Empty when none.
	ListByEmail(ctx context.Context, email string) ([]*Customer, error)

	ExistsWithDetails(ctx context.Context, firstName, lastName, mobileNumber, email string) (bool, error)

	ListAccountNumbers(ctx context.Context) ([]int64, error)

	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) (*Customer, error)

	UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, accountNumber int64, balance decimal.Decimal) error

	LockAccountNumbersInTx(ctx context.Context, tx pgx.Tx) error

	ListAccountNumbersInTx(ctx context.Context, tx pgx.Tx) ([]int64, error)

	InsertInTx(ctx context.Context, tx pgx.Tx, c *Customer) error

	// LockLoansInTx takes row locks on every loan of the account so a delete that
	// cascades into them keeps the loan-then-customer lock order.
	LockLoansInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error

	DeleteInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error
}

// DuesReader reports what a customer still owes on approved loans.
type DuesReader interface {
	OutstandingDues(ctx context.Context, accountNumber int64) (decimal.Decimal, error)
}
