package postgres

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const loanColumns = `l.loan_id, l.account_number, l.amount, l.tenure, l.interest_rate, l.total_repayment, l.repayment_paid, l.status, l.created_at`

type LoanRepository struct {
	txManager
}

var _ loan.Repository = (*LoanRepository)(nil)

var _ customer.DuesReader = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanRepository, using default stderr handler")
	}
	return &LoanRepository{txManager{db: db, logger: logger.With("component", "LoanRepository")}}
}

func loanFields(l *loan.Loan) []any {
	return []any{&l.ID, &l.AccountNumber, &l.Amount, &l.Tenure, &l.InterestRate,
		&l.TotalRepayment, &l.RepaymentPaid, &l.Status, &l.CreatedAt}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	query := `
	INSERT INTO loans (account_number, amount, tenure, interest_rate, total_repayment, repayment_paid, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING loan_id, created_at`
	startTime := time.Now()
	err := r.db.QueryRow(ctx, query, l.AccountNumber, l.Amount, l.Tenure, l.InterestRate,
		l.TotalRepayment, l.RepaymentPaid, string(l.Status)).Scan(&l.ID, &l.CreatedAt)
	observe("CreateLoan", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "account_number", l.AccountNumber, "error", err)
		return translateDBError(err, r.logger)
	}
	r.logger.InfoContext(ctx, "Loan created", "loan_id", l.ID, "account_number", l.AccountNumber)
	return nil
}

func (r *LoanRepository) findOne(ctx context.Context, q querier, queryName, query string, loanID int64) (*loan.Loan, error) {
	startTime := time.Now()
	var l loan.Loan
	err := q.QueryRow(ctx, query, loanID).Scan(loanFields(&l)...)
	observe(queryName, startTime, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		return nil, translateDBError(err, r.logger)
	}
	return &l, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.loan_id = $1`
	return r.findOne(ctx, r.db, "FindLoanByID", query, loanID)
}

func (r *LoanRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.loan_id = $1 FOR UPDATE`
	return r.findOne(ctx, tx, "FindLoanForUpdate", query, loanID)
}

func (r *LoanRepository) listLoans(ctx context.Context, queryName, query string, args ...any) ([]*loan.Loan, error) {
	startTime := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe(queryName, startTime, err)
		r.logger.ErrorContext(ctx, "Failed to query loans", "query", queryName, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	loans := make([]*loan.Loan, 0)
	for rows.Next() {
		var l loan.Loan
		if err := rows.Scan(loanFields(&l)...); err != nil {
			observe(queryName, startTime, err)
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "query", queryName, "error", err)
			return nil, translateDBError(err, r.logger)
		}
		loans = append(loans, &l)
	}
	err = rows.Err()
	observe(queryName, startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return loans, nil
}

func (r *LoanRepository) ListByAccount(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.account_number = $1 ORDER BY l.status ASC, l.loan_id ASC`
	return r.listLoans(ctx, "ListLoansByAccount", query, accountNumber)
}

func (r *LoanRepository) ListApprovedByAccount(ctx context.Context, accountNumber int64) ([]*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.account_number = $1 AND l.status = $2 ORDER BY l.loan_id ASC`
	return r.listLoans(ctx, "ListApprovedLoansByAccount", query, accountNumber, string(loan.StatusApproved))
}

// OutstandingDues sums what is left to repay on approved loans. Zero when there are none.
func (r *LoanRepository) OutstandingDues(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	query := `
	SELECT COALESCE(SUM(total_repayment - repayment_paid), 0)
	FROM loans
	WHERE account_number = $1 AND status = $2`
	startTime := time.Now()
	var dues decimal.Decimal
	err := r.db.QueryRow(ctx, query, accountNumber, string(loan.StatusApproved)).Scan(&dues)
	observe("OutstandingDues", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to sum outstanding dues", "account_number", accountNumber, "error", err)
		return decimal.Zero, translateDBError(err, r.logger)
	}
	return dues, nil
}

func (r *LoanRepository) listWithApplicant(ctx context.Context, queryName, query string, args ...any) ([]*loan.LoanWithApplicant, error) {
	startTime := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe(queryName, startTime, err)
		r.logger.ErrorContext(ctx, "Failed to query loans with applicant", "query", queryName, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	loans := make([]*loan.LoanWithApplicant, 0)
	for rows.Next() {
		var l loan.LoanWithApplicant
		dest := append(loanFields(&l.Loan), &l.FirstName, &l.LastName)
		if err := rows.Scan(dest...); err != nil {
			observe(queryName, startTime, err)
			return nil, translateDBError(err, r.logger)
		}
		loans = append(loans, &l)
	}
	err = rows.Err()
	observe(queryName, startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return loans, nil
}

func (r *LoanRepository) ListPendingWithApplicant(ctx context.Context) ([]*loan.LoanWithApplicant, error) {
	query := `
	SELECT ` + loanColumns + `, c.first_name, c.last_name
	FROM loans l
	JOIN customers c ON c.account_number = l.account_number
	WHERE l.status = $1
	ORDER BY l.loan_id ASC`
	return r.listWithApplicant(ctx, "ListPendingLoans", query, string(loan.StatusPending))
}

func (r *LoanRepository) ListResolvedWithApplicant(ctx context.Context) ([]*loan.LoanWithApplicant, error) {
	query := `
	SELECT ` + loanColumns + `, c.first_name, c.last_name
	FROM loans l
	JOIN customers c ON c.account_number = l.account_number
	WHERE l.status <> $1
	ORDER BY l.loan_id DESC`
	return r.listWithApplicant(ctx, "ListResolvedLoans", query, string(loan.StatusPending))
}

func (r *LoanRepository) CountPending(ctx context.Context) (int, error) {
	startTime := time.Now()
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE status = $1`, string(loan.StatusPending)).Scan(&count)
	observe("CountPendingLoans", startTime, err)
	if err != nil {
		return 0, translateDBError(err, r.logger)
	}
	return count, nil
}

func (r *LoanRepository) UpdateRepaymentPaidInTx(ctx context.Context, tx pgx.Tx, loanID int64, repaymentPaid decimal.Decimal) error {
	query := `UPDATE loans SET repayment_paid = $1 WHERE loan_id = $2`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, repaymentPaid, loanID)
	observe("UpdateRepaymentPaid", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update repayment", "loan_id", loanID, "error", err)
		return translateDBError(err, r.logger)
	}
	return expectOneRow(tag, apperrors.ErrNotFound)
}

func (r *LoanRepository) ResolveInTx(ctx context.Context, tx pgx.Tx, loanID int64, status loan.Status) error {
	query := `UPDATE loans SET status = $1 WHERE loan_id = $2 AND status = $3`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, string(status), loanID, string(loan.StatusPending))
	observe("ResolveLoan", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to resolve loan", "loan_id", loanID, "error", err)
		return translateDBError(err, r.logger)
	}
	if err := expectOneRow(tag, apperrors.ErrAlreadyResolved); err != nil {
		r.logger.WarnContext(ctx, "Loan was not pending", "loan_id", loanID)
		return err
	}
	return nil
}
