package accountrequest

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/infrastructure/monitoring"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"bank-backoffice/internal/pkg/password"
	"context"
	"fmt"
	"log/slog"
)

type Service interface {
	Submit(ctx context.Context, app Application) (*Request, error)
	ListPending(ctx context.Context) ([]*Request, error)
	ListResolved(ctx context.Context) ([]*Resolved, error)
}

var _ Service = (*service)(nil)

type service struct {
	repo         Repository
	customerRepo customer.Repository
	logger       *slog.Logger
}

func NewService(repo Repository, customerRepo customer.Repository, logger *slog.Logger) Service {
	if repo == nil || customerRepo == nil {
		panic("account request service needs both repositories")
	}
	return &service{
		repo:         repo,
		customerRepo: customerRepo,
		logger:       logger.With(slog.String("component", "accountRequestService")),
	}
}

// Submit files a pending request. Only an existing customer with the exact same name,
// mobile number and email blocks it; the email alone is not required to be unique.
func (s *service) Submit(ctx context.Context, app Application) (*Request, error) {
	app.Normalize()
	logger := s.logger.With("email", app.Email)
	logger.InfoContext(ctx, "Submitting account request")

	if err := app.Validate(); err != nil {
		monitoring.RecordSignup("failure_validation")
		return nil, err
	}

	exists, err := s.customerRepo.ExistsWithDetails(ctx, app.FirstName, app.LastName, app.MobileNumber, app.Email)
	if err != nil {
		monitoring.RecordSignup("failure_internal")
		return nil, fmt.Errorf("failed to check for duplicate customer: %w", err)
	}
	if exists {
		logger.WarnContext(ctx, "Duplicate signup rejected")
		monitoring.RecordSignup("failure_duplicate")
		return nil, apperrors.ErrDuplicateSignup
	}

	hash, err := password.Hash(app.Password)
	if err != nil {
		monitoring.RecordSignup("failure_validation")
		return nil, err
	}

	req := &Request{
		FirstName:       app.FirstName,
		LastName:        app.LastName,
		MobileNumber:    app.MobileNumber,
		Email:           app.Email,
		StartingDeposit: money.Round(app.StartingDeposit),
		PasswordHash:    hash,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		logger.ErrorContext(ctx, "Failed to save account request", "error", err)
		monitoring.RecordSignup("failure_internal")
		return nil, fmt.Errorf("failed to save account request: %w", err)
	}

	monitoring.RecordSignup("success")
	logger.InfoContext(ctx, "Account request submitted", "requestID", req.ID)
	return req, nil
}

func (s *service) ListPending(ctx context.Context) ([]*Request, error) {
	reqs, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending account requests: %w", err)
	}
	return reqs, nil
}

func (s *service) ListResolved(ctx context.Context) ([]*Resolved, error) {
	reqs, err := s.repo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved account requests: %w", err)
	}
	return reqs, nil
}
