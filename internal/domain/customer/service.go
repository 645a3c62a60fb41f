package customer

import (
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/infrastructure/monitoring"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionDeposit  = "deposit"
	TransactionWithdraw = "withdraw"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, accountNumber int64) (*Customer, error)
	GetBalance(ctx context.Context, accountNumber int64) (decimal.Decimal, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*Customer, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*Customer, error)
	CloseAccount(ctx context.Context, accountNumber int64) error
	NextAccountNumber(ctx context.Context) (int64, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	dues   DuesReader
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo Repository, dues DuesReader, pub event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if dues == nil {
		panic("dues reader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		dues:   dues,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) GetCustomer(ctx context.Context, accountNumber int64) (*Customer, error) {
	cust, err := s.repo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository", "accountNumber", accountNumber)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", "accountNumber", accountNumber, slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", accountNumber, err)
	}
	return cust, nil
}

func (s *customerService) GetBalance(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	cust, err := s.GetCustomer(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return cust.Balance, nil
}

func (s *customerService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*Customer, error) {
	return s.adjustBalance(ctx, TransactionDeposit, accountNumber, amount, (*Customer).Deposit)
}

func (s *customerService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*Customer, error) {
	return s.adjustBalance(ctx, TransactionWithdraw, accountNumber, amount, (*Customer).Withdraw)
}

func (s *customerService) adjustBalance(ctx context.Context, txType string, accountNumber int64, amount decimal.Decimal,
	apply func(*Customer, decimal.Decimal) error) (cust *Customer, err error) {
	logger := s.logger.With("type", txType, "accountNumber", accountNumber, "amount", amount.String())
	logger.InfoContext(ctx, "Adjusting balance")

	if err = money.RequirePositive("amount", amount); err != nil {
		monitoring.RecordTransaction(txType, "failure_validation")
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		monitoring.RecordTransaction(txType, "failure_internal")
		return nil, err
	}

	defer func() {
		status := "success"
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			status = "failure_funds"
		case errors.Is(err, apperrors.ErrValidation):
			status = "failure_validation"
		case errors.Is(err, apperrors.ErrNotFound):
			status = "failure_not_found"
		case err != nil:
			status = "failure_internal"
		}
		monitoring.RecordTransaction(txType, status)
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred while adjusting balance", "error", p)
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			logger.WarnContext(ctx, "Rolling back balance adjustment", "error", err)
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	cust, err = s.repo.FindForUpdateInTx(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err = apply(cust, amount); err != nil {
		return nil, err
	}

	if err = s.repo.UpdateBalanceInTx(ctx, tx, accountNumber, cust.Balance); err != nil {
		return nil, err
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Balance adjusted", "balance", cust.Balance.String())
	return cust, nil
}

// CloseAccount deletes the customer whatever is still owed; dues are only reported.
func (s *customerService) CloseAccount(ctx context.Context, accountNumber int64) (err error) {
	logger := s.logger.With("accountNumber", accountNumber)
	logger.InfoContext(ctx, "Closing account")

	dues, err := s.dues.OutstandingDues(ctx, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to read outstanding dues: %w", err)
	}
	if dues.IsPositive() {
		logger.WarnContext(ctx, "Closing account with outstanding loan dues", "dues", money.Format(dues))
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	if err = s.repo.LockLoansInTx(ctx, tx, accountNumber); err != nil {
		return err
	}
	if err = s.repo.DeleteInTx(ctx, tx, accountNumber); err != nil {
		return err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return err
	}

	closed := event.CustomerClosedEvent{
		AccountNumber:   accountNumber,
		OutstandingDues: dues.StringFixed(money.Places),
		Timestamp:       time.Now(),
	}
	if pubErr := s.pub.PublishCustomerClosed(ctx, closed); pubErr != nil {
		logger.ErrorContext(ctx, "Account closed, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Account closed")
	return nil
}

// NextAccountNumber previews the number the next approval would receive. It takes no lock.
func (s *customerService) NextAccountNumber(ctx context.Context) (int64, error) {
	existing, err := s.repo.ListAccountNumbers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list account numbers: %w", err)
	}
	return NextAccountNumber(existing), nil
}
