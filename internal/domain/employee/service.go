package employee

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/infrastructure/monitoring"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"bank-backoffice/internal/pkg/password"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeService interface {
	HandleAccountRequest(ctx context.Context, employeeID, requestID int64, action Action) (*AccountDecision, error)
	HandleLoanRequest(ctx context.Context, employeeID, loanID int64, action Action) (*LoanDecision, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Profile(ctx context.Context, employeeID int64) (*Employee, error)
	Register(ctx context.Context, name, email, plainPassword string) (*Employee, error)
}

type AccountDecision struct {
	Request  *accountrequest.Request
	Customer *customer.Customer
}

type LoanDecision struct {
	Loan    *loan.Loan
	Balance decimal.Decimal
}

type Dashboard struct {
	PendingAccountRequests  []*accountrequest.Request  `json:"pendingAccountRequests"`
	PendingLoans            []*loan.LoanWithApplicant  `json:"pendingLoanRequests"`
	ResolvedAccountRequests []*accountrequest.Resolved `json:"completedAccountRequests"`
	ResolvedLoans           []*loan.LoanWithApplicant  `json:"completedLoanRequests"`
}

var _ EmployeeService = (*employeeService)(nil)

type employeeService struct {
	repo         Repository
	requestRepo  accountrequest.Repository
	customerRepo customer.Repository
	loanRepo     loan.Repository
	pub          event.EventPublisher
	logger       *slog.Logger
}

func NewEmployeeService(repo Repository, requestRepo accountrequest.Repository, customerRepo customer.Repository,
	loanRepo loan.Repository, pub event.EventPublisher, logger *slog.Logger) EmployeeService {
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &employeeService{
		repo:         repo,
		requestRepo:  requestRepo,
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		pub:          pub,
		logger:       logger.With(slog.String("component", "employeeService")),
	}
}

func (s *employeeService) HandleAccountRequest(ctx context.Context, employeeID, requestID int64, action Action) (dec *AccountDecision, err error) {
	logger := s.logger.With("employeeID", employeeID, "requestID", requestID, "action", action)
	logger.InfoContext(ctx, "Handling account request")

	if action, err = ParseAction(string(action)); err != nil {
		return nil, err
	}

	tx, err := s.requestRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred while handling account request", "error", p)
			_ = s.requestRepo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			logger.WarnContext(ctx, "Rolling back account request decision", "error", err)
			_ = s.requestRepo.RollbackTx(ctx, tx)
		}
	}()

	req, err := s.requestRepo.FindForUpdateInTx(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != accountrequest.StatusPending {
		return nil, fmt.Errorf("%w: account request %d is %s", apperrors.ErrAlreadyResolved, requestID, req.Status)
	}

	dec = &AccountDecision{Request: req}
	status := accountrequest.StatusDenied
	if action == ActionApprove {
		status = accountrequest.StatusApproved

		number, err := customer.AllocateAccountNumberInTx(ctx, s.customerRepo, tx)
		if err != nil {
			return nil, err
		}
		cust := &customer.Customer{
			AccountNumber: number,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			MobileNumber:  req.MobileNumber,
			Email:         req.Email,
			PasswordHash:  req.PasswordHash,
			Balance:       req.StartingDeposit,
		}
		if err = s.customerRepo.InsertInTx(ctx, tx, cust); err != nil {
			return nil, err
		}
		dec.Customer = cust
	}

	if err = s.requestRepo.ResolveInTx(ctx, tx, requestID, status); err != nil {
		return nil, err
	}
	if err = s.repo.IncrementCounterInTx(ctx, tx, employeeID, action); err != nil {
		return nil, err
	}
	if err = s.requestRepo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	req.Status = status
	monitoring.RecordAdjudication("account", string(action))

	resolved := event.AccountRequestResolvedEvent{
		RequestID:  requestID,
		Approved:   action == ActionApprove,
		Email:      req.Email,
		EmployeeID: employeeID,
		Timestamp:  time.Now(),
	}
	if dec.Customer != nil {
		resolved.AccountNumber = &dec.Customer.AccountNumber
	}
	if pubErr := s.pub.PublishAccountRequestResolved(ctx, resolved); pubErr != nil {
		logger.ErrorContext(ctx, "Decision committed, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Account request resolved", "status", status)
	return dec, nil
}

// HandleLoanRequest resolves a pending loan. Approval credits the loan amount to the
// borrower in the same transaction, so the credit happens exactly once.
func (s *employeeService) HandleLoanRequest(ctx context.Context, employeeID, loanID int64, action Action) (dec *LoanDecision, err error) {
	logger := s.logger.With("employeeID", employeeID, "loanID", loanID, "action", action)
	logger.InfoContext(ctx, "Handling loan request")

	if action, err = ParseAction(string(action)); err != nil {
		return nil, err
	}

	tx, err := s.loanRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred while handling loan request", "error", p)
			_ = s.loanRepo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			logger.WarnContext(ctx, "Rolling back loan decision", "error", err)
			_ = s.loanRepo.RollbackTx(ctx, tx)
		}
	}()

	l, err := s.loanRepo.FindForUpdateInTx(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}
	if l.Status != loan.StatusPending {
		return nil, fmt.Errorf("%w: loan %d is %s", apperrors.ErrAlreadyResolved, loanID, l.Status)
	}

	status := loan.StatusDenied
	if action == ActionApprove {
		status = loan.StatusApproved
	}
	if err = s.loanRepo.ResolveInTx(ctx, tx, loanID, status); err != nil {
		return nil, err
	}

	dec = &LoanDecision{Loan: l}
	if action == ActionApprove {
		cust, err := s.customerRepo.FindForUpdateInTx(ctx, tx, l.AccountNumber)
		if err != nil {
			return nil, err
		}
		if err = cust.Deposit(l.Amount); err != nil {
			return nil, err
		}
		if err = s.customerRepo.UpdateBalanceInTx(ctx, tx, l.AccountNumber, cust.Balance); err != nil {
			return nil, err
		}
		dec.Balance = cust.Balance
	}

	if err = s.repo.IncrementCounterInTx(ctx, tx, employeeID, action); err != nil {
		return nil, err
	}
	if err = s.loanRepo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	l.Status = status
	monitoring.RecordAdjudication("loan", string(action))

	resolved := event.LoanResolvedEvent{
		LoanID:        loanID,
		AccountNumber: l.AccountNumber,
		Approved:      action == ActionApprove,
		Amount:        l.Amount.StringFixed(money.Places),
		EmployeeID:    employeeID,
		Timestamp:     time.Now(),
	}
	if pubErr := s.pub.PublishLoanResolved(ctx, resolved); pubErr != nil {
		logger.ErrorContext(ctx, "Decision committed, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Loan request resolved", "status", status)
	return dec, nil
}

func (s *employeeService) Dashboard(ctx context.Context) (*Dashboard, error) {
	pendingRequests, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending account requests: %w", err)
	}
	pendingLoans, err := s.loanRepo.ListPendingWithApplicant(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending loans: %w", err)
	}
	resolvedRequests, err := s.requestRepo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed account requests: %w", err)
	}
	resolvedLoans, err := s.loanRepo.ListResolvedWithApplicant(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed loans: %w", err)
	}

	return &Dashboard{
		PendingAccountRequests:  pendingRequests,
		PendingLoans:            pendingLoans,
		ResolvedAccountRequests: resolvedRequests,
		ResolvedLoans:           resolvedLoans,
	}, nil
}

func (s *employeeService) Profile(ctx context.Context, employeeID int64) (*Employee, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Repository error finding employee", "employeeID", employeeID, "error", err)
		}
		return nil, err
	}
	return e, nil
}

func (s *employeeService) Register(ctx context.Context, name, email, plainPassword string) (*Employee, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("email", "is not a valid address")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	e := &Employee{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	s.logger.InfoContext(ctx, "Employee registered", "employeeID", e.ID)
	return e, nil
}
