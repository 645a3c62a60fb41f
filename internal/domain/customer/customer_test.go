package customer_test

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/pkg/apperrors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCustomer_Deposit(t *testing.T) {
	cust := &customer.Customer{Balance: decimal.RequireFromString("100.50")}

	err := cust.Deposit(decimal.RequireFromString("49.50"))

	assert.NoError(t, err)
	assert.True(t, cust.Balance.Equal(decimal.NewFromInt(150)), "balance should be 150, got %s", cust.Balance)
}

func TestCustomer_DepositRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10"} {
		cust := &customer.Customer{Balance: decimal.NewFromInt(10)}

		err := cust.Deposit(decimal.RequireFromString(amount))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.True(t, cust.Balance.Equal(decimal.NewFromInt(10)))
	}
}

func TestCustomer_Withdraw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cust := &customer.Customer{Balance: decimal.NewFromInt(100)}

		err := cust.Withdraw(decimal.RequireFromString("99.99"))

		assert.NoError(t, err)
		assert.Equal(t, "0.01", cust.Balance.StringFixed(2))
	})

	t.Run("Whole balance", func(t *testing.T) {
		cust := &customer.Customer{Balance: decimal.NewFromInt(100)}

		assert.NoError(t, cust.Withdraw(decimal.NewFromInt(100)))
		assert.True(t, cust.Balance.IsZero())
	})

	t.Run("Insufficient funds leaves balance unchanged", func(t *testing.T) {
		cust := &customer.Customer{Balance: decimal.NewFromInt(100)}

		err := cust.Withdraw(decimal.RequireFromString("100.01"))

		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		assert.True(t, cust.Balance.Equal(decimal.NewFromInt(100)))
	})
}

func TestCustomer_FullName(t *testing.T) {
	cust := &customer.Customer{FirstName: "Asha", LastName: "Rao"}
	assert.Equal(t, "Asha Rao", cust.FullName())
}
