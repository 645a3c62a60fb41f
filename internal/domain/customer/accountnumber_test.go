package customer_test

import (
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/mocks"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAccountNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []int64
		want     int64
	}{
		{"empty set starts at one", []int64{}, 1},
		{"nil set starts at one", nil, 1},
		{"fills the first gap", []int64{1, 2, 4}, 3},
		{"appends after a full run", []int64{1, 2, 3}, 4},
		{"gap at the start", []int64{2, 3}, 1},
		{"first of several gaps", []int64{1, 3, 5, 6}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, customer.NextAccountNumber(tt.existing))
		})
	}
}

func TestAllocateAccountNumberInTx(t *testing.T) {
	ctx := context.Background()
	tx := mocks.NewTx()

	t.Run("Locks before scanning", func(t *testing.T) {
		repo := new(mocks.CustomerRepository)
		lock := repo.On("LockAccountNumbersInTx", ctx, tx).Return(nil).Once()
		repo.On("ListAccountNumbersInTx", ctx, tx).Return([]int64{1, 2, 4}, nil).Once().NotBefore(lock)

		n, err := customer.AllocateAccountNumberInTx(ctx, repo, tx)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
		repo.AssertExpectations(t)
	})

	t.Run("Lock failure stops allocation", func(t *testing.T) {
		repo := new(mocks.CustomerRepository)
		repo.On("LockAccountNumbersInTx", ctx, tx).Return(errors.New("lock timeout")).Once()

		_, err := customer.AllocateAccountNumberInTx(ctx, repo, tx)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "ListAccountNumbersInTx", ctx, tx)
	})
}
