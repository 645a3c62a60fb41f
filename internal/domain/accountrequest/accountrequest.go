package accountrequest

import (
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

type Request struct {
	ID              int64           `json:"requestId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	MobileNumber    string          `json:"mobileNumber"`
	Email           string          `json:"email"`
	StartingDeposit decimal.Decimal `json:"startingDeposit"`
	PasswordHash    string          `json:"-"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Resolved is an approved or denied request. AccountNumber is filled when a customer
// with the request's email exists.
type Resolved struct {
	Request
	AccountNumber *int64 `json:"accountNumber,omitempty"`
}

type Application struct {
	FirstName       string
	LastName        string
	MobileNumber    string
	Email           string
	StartingDeposit decimal.Decimal
	Password        string
}

func (a *Application) Normalize() {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.MobileNumber = strings.TrimSpace(a.MobileNumber)
	a.Email = strings.TrimSpace(a.Email)
}

func (a Application) Validate() error {
	required := []struct{ field, value string }{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"mobileNumber", a.MobileNumber},
		{"email", a.Email},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.NewValidationError(r.field, "is required")
		}
	}
	if !strings.Contains(a.Email, "@") {
		return apperrors.NewValidationError("email", "is not a valid address")
	}
	return money.RequireNonNegative("startingDeposit", a.StartingDeposit)
}
