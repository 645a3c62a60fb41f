// Package money holds the currency rules shared by every balance and loan computation.
package money

import (
	"bank-backoffice/internal/pkg/apperrors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CurrencySymbol = "₹"
	Places         = 2
	RatePlaces     = 4
)

var (
	hundred = decimal.NewFromInt(100)

	// MaxAmount is the largest value a NUMERIC(15,2) column holds.
	MaxAmount = decimal.RequireFromString("9999999999999.99")

	// MaxRate is the largest percentage a NUMERIC(7,4) column holds.
	MaxRate = decimal.RequireFromString("999.9999")
)

// Format renders an amount the way the branch prints it: rupee sign, two decimals.
func Format(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(Places)
}

// Parse reads a user-supplied amount. A leading rupee sign and surrounding blanks are tolerated.
// Amounts a NUMERIC(15,2) column would round or refuse are rejected.
func Parse(field, raw string) (decimal.Decimal, error) {
	d, err := parse(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := RequireStorable(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseRate reads an interest percentage such as "10" or "8.25".
func ParseRate(field, raw string) (decimal.Decimal, error) {
	d, err := parse(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := RequireRate(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func parse(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), CurrencySymbol))
	if s == "" {
		return decimal.Zero, apperrors.NewValidationError(field, "amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field, fmt.Sprintf("malformed amount %q", raw))
	}
	return d, nil
}

// RequirePositive accepts amounts that are above zero and storable without rounding.
func RequirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return apperrors.NewValidationError(field, "must be greater than zero")
	}
	return RequireStorable(field, d)
}

func RequireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperrors.NewValidationError(field, "must not be negative")
	}
	return RequireStorable(field, d)
}

// RequireStorable rejects amounts a NUMERIC(15,2) column would round or refuse.
func RequireStorable(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(Places)) {
		return apperrors.NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", Places))
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return apperrors.NewValidationError(field, "exceeds the largest supported amount "+Format(MaxAmount))
	}
	return nil
}

// RequireRate accepts interest percentages from 0 up to MaxRate with at most four decimals.
func RequireRate(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperrors.NewValidationError(field, "must not be negative")
	}
	if !d.Equal(d.Round(RatePlaces)) {
		return apperrors.NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", RatePlaces))
	}
	if d.GreaterThan(MaxRate) {
		return apperrors.NewValidationError(field, "must be below 1000")
	}
	return nil
}

// Round applies the storage precision of NUMERIC(15,2) columns.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent converts a rate such as 10 (percent) into its fraction 0.10.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(hundred)
}
