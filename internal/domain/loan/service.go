package loan

import (
	"bank-backoffice/internal/domain/customer"
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

type LoanService interface {
	Apply(ctx context.Context, accountNumber int64, amount decimal.Decimal, tenure int, interestRate decimal.Decimal) (*Loan, error)

	Repay(ctx context.Context, accountNumber, loanID int64, amount decimal.Decimal) (*Repayment, error)

	ListForCustomer(ctx context.Context, accountNumber int64) ([]*Loan, error)

	RepayableLoans(ctx context.Context, accountNumber int64) ([]*Loan, error)

	AccountDetails(ctx context.Context, accountNumber int64) (*AccountDetails, error)
}

type Repayment struct {
	Loan    *Loan
	Balance decimal.Decimal
}

type AccountDetails struct {
	Customer  *customer.Customer
	Loans     []*Loan
	TotalDues decimal.Decimal
}

type loanServiceImpl struct {
	repo         Repository
	customerRepo customer.Repository
	pub          event.EventPublisher
	logger       *slog.Logger
}

func NewLoanService(r Repository, cr customer.Repository, pub event.EventPublisher, logger *slog.Logger) LoanService {
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &loanServiceImpl{
		repo:         r,
		customerRepo: cr,
		pub:          pub,
		logger:       logger.With("component", "loanService"),
	}
}

func (s *loanServiceImpl) Apply(ctx context.Context, accountNumber int64, amount decimal.Decimal, tenure int, interestRate decimal.Decimal) (*Loan, error) {
	s.logger.InfoContext(ctx, "Applying for loan", "accountNumber", accountNumber, "amount", amount.String(), "tenure", tenure)

	l, err := NewLoan(accountNumber, amount, tenure, interestRate)
	if err != nil {
		s.logger.WarnContext(ctx, "Loan application rejected", "error", err)
		monitoring.RecordTransaction("loan_application", "failure_validation")
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan application", "error", err)
		monitoring.RecordTransaction("loan_application", "failure_internal")
		return nil, fmt.Errorf("failed to save loan application: %w", err)
	}

	monitoring.RecordTransaction("loan_application", "success")
	s.logger.InfoContext(ctx, "Loan application saved", "loanID", l.ID, "totalRepayment", l.TotalRepayment.String())
	return l, nil
}

// Repay takes amount from the customer's balance and books it against the loan.
// The loan row is locked before the customer row, the same order approval uses.
func (s *loanServiceImpl) Repay(ctx context.Context, accountNumber, loanID int64, amount decimal.Decimal) (res *Repayment, err error) {
	logger := s.logger.With("accountNumber", accountNumber, "loanID", loanID, "amount", amount.String())
	logger.InfoContext(ctx, "Repaying loan")

	if err = money.RequirePositive("amount", amount); err != nil {
		monitoring.RecordTransaction("repayment", "failure_validation")
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		monitoring.RecordTransaction("repayment", "failure_internal")
		return nil, err
	}

	defer func() {
		status := "success"
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			status = "failure_funds"
		case errors.Is(err, apperrors.ErrOverRepayment):
			status = "failure_over_repayment"
		case errors.Is(err, apperrors.ErrLoanNotActive):
			status = "failure_not_active"
		case errors.Is(err, apperrors.ErrNotFound):
			status = "failure_not_found"
		case err != nil:
			status = "failure_internal"
		}
		monitoring.RecordTransaction("repayment", status)
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred during repayment", "error", p)
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			logger.WarnContext(ctx, "Rolling back repayment", "error", err)
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	l, err := s.repo.FindForUpdateInTx(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}
	if l.AccountNumber != accountNumber {
		return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
	}
	if l.Status != StatusApproved {
		return nil, fmt.Errorf("%w: loan %d is %s", apperrors.ErrLoanNotActive, loanID, l.Status)
	}

	cust, err := s.customerRepo.FindForUpdateInTx(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err = cust.Withdraw(amount); err != nil {
		return nil, err
	}
	if err = l.ApplyRepayment(amount); err != nil {
		return nil, err
	}

	if err = s.customerRepo.UpdateBalanceInTx(ctx, tx, accountNumber, cust.Balance); err != nil {
		return nil, err
	}
	if err = s.repo.UpdateRepaymentPaidInTx(ctx, tx, loanID, l.RepaymentPaid); err != nil {
		return nil, err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	repaid := event.LoanRepaidEvent{
		LoanID:        loanID,
		AccountNumber: accountNumber,
		Amount:        amount.StringFixed(money.Places),
		RepaymentLeft: l.RepaymentLeft().StringFixed(money.Places),
		FullyRepaid:   l.FullyRepaid(),
		Timestamp:     time.Now(),
	}
	if pubErr := s.pub.PublishLoanRepaid(ctx, repaid); pubErr != nil {
		logger.ErrorContext(ctx, "Repayment committed, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Repayment booked", "repaymentLeft", l.RepaymentLeft().String())
	return &Repayment{Loan: l, Balance: cust.Balance}, nil
}

func (s *loanServiceImpl) ListForCustomer(ctx context.Context, accountNumber int64) ([]*Loan, error) {
	loans, err := s.repo.ListByAccount(ctx, accountNumber)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", "accountNumber", accountNumber, "error", err)
		return nil, fmt.Errorf("failed to list loans for account %d: %w", accountNumber, err)
	}
	return loans, nil
}

func (s *loanServiceImpl) RepayableLoans(ctx context.Context, accountNumber int64) ([]*Loan, error) {
	loans, err := s.repo.ListApprovedByAccount(ctx, accountNumber)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list approved loans", "accountNumber", accountNumber, "error", err)
		return nil, fmt.Errorf("failed to list approved loans for account %d: %w", accountNumber, err)
	}
	return loans, nil
}

func (s *loanServiceImpl) AccountDetails(ctx context.Context, accountNumber int64) (*AccountDetails, error) {
	cust, err := s.customerRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	loans, err := s.RepayableLoans(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.RepaymentLeft())
	}

	return &AccountDetails{Customer: cust, Loans: loans, TotalDues: total}, nil
}
