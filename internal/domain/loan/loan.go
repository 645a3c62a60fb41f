package loan

import (
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

type Loan struct {
	ID             int64           `json:"loanId"`
	AccountNumber  int64           `json:"accountNumber"`
	Amount         decimal.Decimal `json:"amount"`
	Tenure         int             `json:"tenure"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	RepaymentPaid  decimal.Decimal `json:"repaymentPaid"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LoanWithApplicant is a loan joined with the name of the customer who asked for it.
type LoanWithApplicant struct {
	Loan
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TotalRepayment applies simple interest: amount × (1 + rate/100 × tenure).
func TotalRepayment(amount decimal.Decimal, tenure int, interestRate decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(money.Percent(interestRate).Mul(decimal.NewFromInt(int64(tenure))))
	return money.Round(amount.Mul(factor))
}

func NewLoan(accountNumber int64, amount decimal.Decimal, tenure int, interestRate decimal.Decimal) (*Loan, error) {
	if err := money.RequirePositive("amount", amount); err != nil {
		return nil, err
	}
	if tenure <= 0 || tenure > math.MaxInt32 {
		return nil, apperrors.NewValidationError("tenure", "must be a positive whole number")
	}
	if err := money.RequireRate("interestRate", interestRate); err != nil {
		return nil, err
	}
	total := TotalRepayment(amount, tenure, interestRate)
	if total.GreaterThan(money.MaxAmount) {
		return nil, apperrors.NewValidationError("amount", "total repayment exceeds "+money.Format(money.MaxAmount))
	}

	return &Loan{
		AccountNumber:  accountNumber,
		Amount:         amount,
		Tenure:         tenure,
		InterestRate:   interestRate,
		TotalRepayment: total,
		RepaymentPaid:  decimal.Zero,
		Status:         StatusPending,
	}, nil
}

func (l *Loan) RepaymentLeft() decimal.Decimal {
	return l.TotalRepayment.Sub(l.RepaymentPaid)
}

func (l *Loan) FullyRepaid() bool {
	return !l.RepaymentLeft().IsPositive()
}

// ApplyRepayment moves amount onto repayment_paid. The loan is unchanged on error.
func (l *Loan) ApplyRepayment(amount decimal.Decimal) error {
	if err := money.RequirePositive("amount", amount); err != nil {
		return err
	}
	if l.Status != StatusApproved {
		return fmt.Errorf("%w: loan %d is %s", apperrors.ErrLoanNotActive, l.ID, l.Status)
	}
	if left := l.RepaymentLeft(); amount.GreaterThan(left) {
		return fmt.Errorf("%w: %s requested, %s left", apperrors.ErrOverRepayment, money.Format(amount), money.Format(left))
	}
	l.RepaymentPaid = l.RepaymentPaid.Add(amount)
	return nil
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusDenied:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown loan status %q", apperrors.ErrInvalidArgument, s)
}
