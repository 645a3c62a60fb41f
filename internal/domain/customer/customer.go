package customer

import (
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	AccountNumber int64           `json:"accountNumber"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	MobileNumber  string          `json:"mobileNumber"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"-"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) Deposit(amount decimal.Decimal) error {
	if err := money.RequirePositive("amount", amount); err != nil {
		return err
	}
	balance := c.Balance.Add(amount)
	if balance.GreaterThan(money.MaxAmount) {
		return apperrors.NewValidationError("amount", "would take the balance past "+money.Format(money.MaxAmount))
	}
	c.Balance = balance
	return nil
}

// Withdraw leaves the balance untouched when it fails.
func (c *Customer) Withdraw(amount decimal.Decimal) error {
	if err := money.RequirePositive("amount", amount); err != nil {
		return err
	}
	if amount.GreaterThan(c.Balance) {
		return fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds,
			money.Format(c.Balance), money.Format(amount))
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}
