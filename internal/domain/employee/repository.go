package employee

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	FindByID(ctx context.Context, employeeID int64) (*Employee, error)

	FindByEmail(ctx context.Context, email string) (*Employee, error)

	Create(ctx context.Context, e *Employee) error

	// IncrementCounterInTx bumps requests_approved or requests_denied by one.
	IncrementCounterInTx(ctx context.Context, tx pgx.Tx, employeeID int64, action Action) error
}
