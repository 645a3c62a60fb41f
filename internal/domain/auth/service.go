package auth

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/infrastructure/monitoring"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/password"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Captcha struct {
	ID    string
	Value string
}

type Session struct {
	Token     string
	Identity  Identity
	ExpiresAt time.Time
}

type Options struct {
	CaptchaTTL time.Duration
	// EmployeeCaptcha makes employee login check a CAPTCHA like customer login does.
	EmployeeCaptcha bool
}

type Authenticator interface {
	// IssueCaptcha stores a fresh challenge. A non-empty previousID is discarded first so
	// only the latest challenge handed to a browser can be answered.
	IssueCaptcha(ctx context.Context, previousID string) (*Captcha, error)
	CustomerLogin(ctx context.Context, email, plainPassword, captchaID, captcha string) (*Session, error)
	EmployeeLogin(ctx context.Context, email, plainPassword, captchaID, captcha string) (*Session, error)
	Authenticate(ctx context.Context, token string) (Identity, error)
	Logout(ctx context.Context, token string) error
}

var _ Authenticator = (*authenticator)(nil)

type authenticator struct {
	customers customer.Repository
	employees employee.Repository
	store     SessionStore
	tokens    *TokenIssuer
	opts      Options
	logger    *slog.Logger
}

func NewAuthenticator(customers customer.Repository, employees employee.Repository, store SessionStore,
	tokens *TokenIssuer, opts Options, logger *slog.Logger) Authenticator {
	if opts.CaptchaTTL <= 0 {
		opts.CaptchaTTL = 5 * time.Minute
	}
	return &authenticator{
		customers: customers,
		employees: employees,
		store:     store,
		tokens:    tokens,
		opts:      opts,
		logger:    logger.With(slog.String("component", "authenticator")),
	}
}

func (a *authenticator) IssueCaptcha(ctx context.Context, previousID string) (*Captcha, error) {
	if previousID != "" {
		if err := a.store.DeleteCaptcha(ctx, previousID); err != nil {
			a.logger.ErrorContext(ctx, "Failed to discard previous captcha", "error", err)
			return nil, fmt.Errorf("failed to discard previous captcha: %w", err)
		}
	}
	value, err := GenerateCaptcha()
	if err != nil {
		return nil, err
	}
	c := &Captcha{ID: uuid.NewString(), Value: value}
	if err := a.store.SaveCaptcha(ctx, c.ID, c.Value, a.opts.CaptchaTTL); err != nil {
		a.logger.ErrorContext(ctx, "Failed to store captcha", "error", err)
		return nil, fmt.Errorf("failed to store captcha: %w", err)
	}
	return c, nil
}

// checkCaptcha consumes the stored challenge whatever the outcome, so each one is single use.
func (a *authenticator) checkCaptcha(ctx context.Context, captchaID, submitted string) error {
	if captchaID == "" {
		return apperrors.ErrInvalidCaptcha
	}
	expected, err := a.store.TakeCaptcha(ctx, captchaID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidCaptcha
		}
		return fmt.Errorf("failed to read captcha: %w", err)
	}
	if submitted != expected {
		return apperrors.ErrInvalidCaptcha
	}
	return nil
}

func (a *authenticator) CustomerLogin(ctx context.Context, email, plainPassword, captchaID, captcha string) (sess *Session, err error) {
	defer func() { monitoring.RecordLogin(string(RoleCustomer), monitoring.StatusOf(err)) }()

	if err = a.checkCaptcha(ctx, captchaID, captcha); err != nil {
		a.logger.WarnContext(ctx, "Customer login rejected by captcha check")
		return nil, err
	}

	cust, err := a.matchCustomer(ctx, strings.TrimSpace(email), plainPassword)
	if err != nil {
		return nil, err
	}

	return a.startSession(ctx, Identity{UserID: cust.AccountNumber, Name: cust.FullName(), Role: RoleCustomer})
}

// matchCustomer checks the password against every account holding email, oldest first,
// since several customers may share one address.
func (a *authenticator) matchCustomer(ctx context.Context, email, plainPassword string) (*customer.Customer, error) {
	candidates, err := a.customers.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if password.Verify(c.PasswordHash, plainPassword) == nil {
			return c, nil
		}
	}
	if len(candidates) > 0 {
		a.logger.WarnContext(ctx, "Customer login with wrong password", "accounts", len(candidates))
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (a *authenticator) EmployeeLogin(ctx context.Context, email, plainPassword, captchaID, captcha string) (sess *Session, err error) {
	defer func() { monitoring.RecordLogin(string(RoleEmployee), monitoring.StatusOf(err)) }()

	if a.opts.EmployeeCaptcha {
		if err = a.checkCaptcha(ctx, captchaID, captcha); err != nil {
			a.logger.WarnContext(ctx, "Employee login rejected by captcha check")
			return nil, err
		}
	}

	emp, err := a.employees.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err = password.Verify(emp.PasswordHash, plainPassword); err != nil {
		a.logger.WarnContext(ctx, "Employee login with wrong password", "employeeID", emp.ID)
		return nil, err
	}

	return a.startSession(ctx, Identity{UserID: emp.ID, Name: emp.Name, Role: RoleEmployee})
}

func (a *authenticator) startSession(ctx context.Context, id Identity) (*Session, error) {
	id.SessionID = uuid.NewString()

	token, expiresAt, err := a.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveSession(ctx, id.SessionID, id, a.tokens.TTL()); err != nil {
		a.logger.ErrorContext(ctx, "Failed to store session", "error", err)
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.InfoContext(ctx, "Session started", "role", id.Role, "userID", id.UserID)
	return &Session{Token: token, Identity: id, ExpiresAt: expiresAt}, nil
}

func (a *authenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	id, err := a.tokens.Parse(token)
	if err != nil {
		return Identity{}, err
	}
	live, err := a.store.SessionExists(ctx, id.SessionID)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to look up session: %w", err)
	}
	if !live {
		return Identity{}, fmt.Errorf("%w: session revoked or expired", apperrors.ErrUnauthorized)
	}
	return id, nil
}

// Logout revokes the session behind token. An unparseable token is already logged out.
func (a *authenticator) Logout(ctx context.Context, token string) error {
	id, err := a.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := a.store.DeleteSession(ctx, id.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	a.logger.InfoContext(ctx, "Session ended", "role", id.Role, "userID", id.UserID)
	return nil
}
