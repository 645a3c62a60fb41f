package postgres

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// accountNumberLockKey serialises account number allocation across transactions.
const accountNumberLockKey int64 = 0x62616e6b

const customerColumns = `account_number, first_name, last_name, mobile_number, email, password_hash, balance, created_at`

type CustomerRepository struct {
	txManager
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{txManager{db: db, logger: logger.With("component", "CustomerRepository")}}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.AccountNumber, &c.FirstName, &c.LastName, &c.MobileNumber,
		&c.Email, &c.PasswordHash, &c.Balance, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) findOne(ctx context.Context, q querier, queryName, query string, arg any) (*customer.Customer, error) {
	startTime := time.Now()
	c, err := scanCustomer(q.QueryRow(ctx, query, arg))
	observe(queryName, startTime, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Customer not found", "query", queryName)
			return nil, apperrors.ErrNotFound
		}
		return nil, translateDBError(err, r.logger)
	}
	return c, nil
}

func (r *CustomerRepository) FindByAccountNumber(ctx context.Context, accountNumber int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE account_number = $1`
	return r.findOne(ctx, r.db, "FindCustomerByAccountNumber", query, accountNumber)
}

// ListByEmail returns every customer holding the address. Signup allows several when
// their names or mobile numbers differ.
func (r *CustomerRepository) ListByEmail(ctx context.Context, email string) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1 ORDER BY account_number ASC`
	startTime := time.Now()
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		observe("ListCustomersByEmail", startTime, err)
		r.logger.ErrorContext(ctx, "Failed to list customers by email", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0, 1)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			observe("ListCustomersByEmail", startTime, err)
			return nil, translateDBError(err, r.logger)
		}
		customers = append(customers, c)
	}
	err = rows.Err()
	observe("ListCustomersByEmail", startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return customers, nil
}

func (r *CustomerRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE account_number = $1 FOR UPDATE`
	return r.findOne(ctx, tx, "FindCustomerForUpdate", query, accountNumber)
}

func (r *CustomerRepository) ExistsWithDetails(ctx context.Context, firstName, lastName, mobileNumber, email string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM customers
		WHERE first_name = $1 AND last_name = $2 AND mobile_number = $3 AND email = $4
	)`
	startTime := time.Now()
	var exists bool
	err := r.db.QueryRow(ctx, query, firstName, lastName, mobileNumber, email).Scan(&exists)
	observe("CustomerExistsWithDetails", startTime, err)
	if err != nil {
		return false, translateDBError(err, r.logger)
	}
	return exists, nil
}

func (r *CustomerRepository) listAccountNumbers(ctx context.Context, q querier, queryName string) ([]int64, error) {
	query := `SELECT account_number FROM customers ORDER BY account_number ASC`
	startTime := time.Now()
	rows, err := q.Query(ctx, query)
	if err != nil {
		observe(queryName, startTime, err)
		r.logger.ErrorContext(ctx, "Failed to list account numbers", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	numbers := make([]int64, 0)
	for rows.Next() {
		var n int64
		if err := rows.Scan(&n); err != nil {
			observe(queryName, startTime, err)
			return nil, translateDBError(err, r.logger)
		}
		numbers = append(numbers, n)
	}
	err = rows.Err()
	observe(queryName, startTime, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return numbers, nil
}

func (r *CustomerRepository) ListAccountNumbers(ctx context.Context) ([]int64, error) {
	return r.listAccountNumbers(ctx, r.db, "ListAccountNumbers")
}

func (r *CustomerRepository) ListAccountNumbersInTx(ctx context.Context, tx pgx.Tx) ([]int64, error) {
	return r.listAccountNumbers(ctx, tx, "ListAccountNumbersInTx")
}

// LockAccountNumbersInTx holds a transaction scoped advisory lock until commit or rollback.
func (r *CustomerRepository) LockAccountNumbersInTx(ctx context.Context, tx pgx.Tx) error {
	startTime := time.Now()
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, accountNumberLockKey)
	observe("LockAccountNumbers", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to take account number lock", "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CustomerRepository) InsertInTx(ctx context.Context, tx pgx.Tx, c *customer.Customer) error {
	query := `
	INSERT INTO customers (account_number, first_name, last_name, mobile_number, email, password_hash, balance, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING created_at`
	startTime := time.Now()
	err := tx.QueryRow(ctx, query, c.AccountNumber, c.FirstName, c.LastName, c.MobileNumber,
		c.Email, c.PasswordHash, c.Balance).Scan(&c.CreatedAt)
	observe("InsertCustomer", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", "account_number", c.AccountNumber, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CustomerRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, accountNumber int64, balance decimal.Decimal) error {
	query := `UPDATE customers SET balance = $1 WHERE account_number = $2`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, balance, accountNumber)
	observe("UpdateCustomerBalance", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update balance", "account_number", accountNumber, "error", err)
		return translateDBError(err, r.logger)
	}
	return expectOneRow(tag, apperrors.ErrNotFound)
}

func (r *CustomerRepository) LockLoansInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error {
	query := `SELECT loan_id FROM loans WHERE account_number = $1 ORDER BY loan_id FOR UPDATE`
	startTime := time.Now()
	_, err := tx.Exec(ctx, query, accountNumber)
	observe("LockCustomerLoans", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to lock customer loans", "account_number", accountNumber, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CustomerRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, accountNumber int64) error {
	query := `DELETE FROM customers WHERE account_number = $1`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, accountNumber)
	observe("DeleteCustomer", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", "account_number", accountNumber, "error", err)
		return translateDBError(err, r.logger)
	}
	if err := expectOneRow(tag, apperrors.ErrNotFound); err != nil {
		r.logger.WarnContext(ctx, "Delete affected no rows", "account_number", accountNumber)
		return err
	}
	return nil
}
