package loan

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	Create(ctx context.Context, l *Loan) error

	FindByID(ctx context.Context, loanID int64) (*Loan, error)

	ListByAccount(ctx context.Context, accountNumber int64) ([]*Loan, error)

	ListApprovedByAccount(ctx context.Context, accountNumber int64) ([]*Loan, error)

	OutstandingDues(ctx context.Context, accountNumber int64) (decimal.Decimal, error)

	ListPendingWithApplicant(ctx context.Context) ([]*LoanWithApplicant, error)

	ListResolvedWithApplicant(ctx context.Context) ([]*LoanWithApplicant, error)

	CountPending(ctx context.Context) (int, error)

	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error)

	UpdateRepaymentPaidInTx(ctx context.Context, tx pgx.Tx, loanID int64, repaymentPaid decimal.Decimal) error

	// ResolveInTx moves a pending loan to status. A loan that is no longer pending
	// yields apperrors.ErrAlreadyResolved.
	ResolveInTx(ctx context.Context, tx pgx.Tx, loanID int64, status Status) error
}
