package postgres

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

const requestColumns = `r.request_id, r.first_name, r.last_name, r.mobile_number, r.email, r.starting_deposit, r.password_hash, r.status, r.created_at`

type AccountRequestRepository struct {
	txManager
}

var _ accountrequest.Repository = (*AccountRequestRepository)(nil)

func NewAccountRequestRepository(db DBPool, logger *slog.Logger) *AccountRequestRepository {
	if db == nil {
		panic("DBPool cannot be nil for AccountRequestRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountRequestRepository, using default stderr handler")
	}
	return &AccountRequestRepository{txManager{db: db, logger: logger.With("component", "AccountRequestRepository")}}
}

func requestFields(req *accountrequest.Request) []any {
	return []any{&req.ID, &req.FirstName, &req.LastName, &req.MobileNumber, &req.Email,
		&req.StartingDeposit, &req.PasswordHash, &req.Status, &req.CreatedAt}
}

func (r *AccountRequestRepository) Create(ctx context.Context, req *accountrequest.Request) error {
	query := `
	INSERT INTO account_requests (first_name, last_name, mobile_number, email, starting_deposit, password_hash, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING request_id, created_at`
	startTime := time.Now()
	err := r.db.QueryRow(ctx, query, req.FirstName, req.LastName, req.MobileNumber, req.Email,
		req.StartingDeposit, req.PasswordHash, string(req.Status)).Scan(&req.ID, &req.CreatedAt)
	observe("CreateAccountRequest", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert account request", "email", req.Email, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *AccountRequestRepository) ListPending(ctx context.Context) ([]*accountrequest.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM account_requests r WHERE r.status = $1 ORDER BY r.request_id ASC`
	startTime := time.Now()
	rows, err := r.db.Query(ctx, query, string(accountrequest.StatusPending))
	if err != nil {
		observe("ListPendingAccountRequests", startTime, err)
		r.logger.ErrorContext(ctx, "Failed to query pending account requests", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	requests := make([]*accountrequest.Request, 0)
	for rows.Next() {
		var req accountrequest.Request
		if err := rows.Scan(requestFields(&req)...); err != nil {
			observe("ListPendingAccountRequests", startTime, err)
			return nil, translateDBError(err, r.logger)
		}
		requests = append(requests, &req)
	}
	err = rows.Err()
	observe("ListPendingAccountRequests", startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return requests, nil
}

// ListResolved joins each resolved request to the customer created from it, matched by email.
func (r *AccountRequestRepository) ListResolved(ctx context.Context) ([]*accountrequest.Resolved, error) {
	query := `
	SELECT ` + requestColumns + `,
		(SELECT MIN(c.account_number) FROM customers c WHERE c.email = r.email) AS account_number
	FROM account_requests r
	WHERE r.status <> $1
	ORDER BY r.request_id DESC`
	startTime := time.Now()
	rows, err := r.db.Query(ctx, query, string(accountrequest.StatusPending))
	if err != nil {
		observe("ListResolvedAccountRequests", startTime, err)
		r.logger.ErrorContext(ctx, "Failed to query resolved account requests", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	resolved := make([]*accountrequest.Resolved, 0)
	for rows.Next() {
		var res accountrequest.Resolved
		dest := append(requestFields(&res.Request), &res.AccountNumber)
		if err := rows.Scan(dest...); err != nil {
			observe("ListResolvedAccountRequests", startTime, err)
			return nil, translateDBError(err, r.logger)
		}
		resolved = append(resolved, &res)
	}
	err = rows.Err()
	observe("ListResolvedAccountRequests", startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return resolved, nil
}

func (r *AccountRequestRepository) CountPending(ctx context.Context) (int, error) {
	startTime := time.Now()
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM account_requests WHERE status = $1`,
		string(accountrequest.StatusPending)).Scan(&count)
	observe("CountPendingAccountRequests", startTime, err)
	if err != nil {
		return 0, translateDBError(err, r.logger)
	}
	return count, nil
}

func (r *AccountRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID int64) (*accountrequest.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM account_requests r WHERE r.request_id = $1 FOR UPDATE`
	startTime := time.Now()
	var req accountrequest.Request
	err := tx.QueryRow(ctx, query, requestID).Scan(requestFields(&req)...)
	observe("FindAccountRequestForUpdate", startTime, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Account request not found", "request_id", requestID)
			return nil, apperrors.ErrNotFound
		}
		return nil, translateDBError(err, r.logger)
	}
	return &req, nil
}

func (r *AccountRequestRepository) ResolveInTx(ctx context.Context, tx pgx.Tx, requestID int64, status accountrequest.Status) error {
	query := `UPDATE account_requests SET status = $1 WHERE request_id = $2 AND status = $3`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, string(status), requestID, string(accountrequest.StatusPending))
	observe("ResolveAccountRequest", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to resolve account request", "request_id", requestID, "error", err)
		return translateDBError(err, r.logger)
	}
	if err := expectOneRow(tag, apperrors.ErrAlreadyResolved); err != nil {
		r.logger.WarnContext(ctx, "Account request was not pending", "request_id", requestID)
		return err
	}
	return nil
}
