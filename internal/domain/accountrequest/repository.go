package accountrequest

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	Create(ctx context.Context, r *Request) error

	ListPending(ctx context.Context) ([]*Request, error)

	ListResolved(ctx context.Context) ([]*Resolved, error)

	CountPending(ctx context.Context) (int, error)

	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID int64) (*Request, error)

	// ResolveInTx moves a pending request to status. A request that is no longer
	// pending yields apperrors.ErrAlreadyResolved.
	ResolveInTx(ctx context.Context, tx pgx.Tx, requestID int64, status Status) error
}
