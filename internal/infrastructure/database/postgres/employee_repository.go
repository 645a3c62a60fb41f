package postgres

import (
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

const employeeColumns = `employee_id, name, email, password_hash, requests_approved, requests_denied`

type EmployeeRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ employee.Repository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(db DBPool, logger *slog.Logger) *EmployeeRepository {
	if db == nil {
		panic("DBPool cannot be nil for EmployeeRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewEmployeeRepository, using default stderr handler")
	}
	return &EmployeeRepository{db: db, logger: logger.With("component", "EmployeeRepository")}
}

func (r *EmployeeRepository) findOne(ctx context.Context, queryName, query string, arg any) (*employee.Employee, error) {
	startTime := time.Now()
	var e employee.Employee
	err := r.db.QueryRow(ctx, query, arg).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash,
		&e.RequestsApproved, &e.RequestsDenied)
	observe(queryName, startTime, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateDBError(err, r.logger)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID int64) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	return r.findOne(ctx, "FindEmployeeByID", query, employeeID)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return r.findOne(ctx, "FindEmployeeByEmail", query, email)
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
	INSERT INTO employees (name, email, password_hash, requests_approved, requests_denied)
	VALUES ($1, $2, $3, 0, 0)
	RETURNING employee_id`
	startTime := time.Now()
	err := r.db.QueryRow(ctx, query, e.Name, e.Email, e.PasswordHash).Scan(&e.ID)
	observe("CreateEmployee", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert employee", "email", e.Email, "error", err)
		return translateDBError(err, r.logger)
	}
	r.logger.InfoContext(ctx, "Employee created", "employee_id", e.ID)
	return nil
}

func (r *EmployeeRepository) IncrementCounterInTx(ctx context.Context, tx pgx.Tx, employeeID int64, action employee.Action) error {
	var column string
	switch action {
	case employee.ActionApprove:
		column = "requests_approved"
	case employee.ActionDeny:
		column = "requests_denied"
	default:
		return apperrors.NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}

	query := `UPDATE employees SET ` + column + ` = ` + column + ` + 1 WHERE employee_id = $1`
	startTime := time.Now()
	tag, err := tx.Exec(ctx, query, employeeID)
	observe("IncrementEmployeeCounter", startTime, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to increment employee counter", "employee_id", employeeID, "error", err)
		return translateDBError(err, r.logger)
	}
	return expectOneRow(tag, apperrors.ErrNotFound)
}
