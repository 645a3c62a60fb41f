package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// NextAccountNumber returns the smallest positive number missing from existing,
// which must be sorted ascending.
func NextAccountNumber(existing []int64) int64 {
	expected := int64(1)
	for _, n := range existing {
		if n != expected {
			return expected
		}
		expected++
	}
	return expected
}

// AllocateAccountNumberInTx serialises allocation across concurrent approvals for the
// lifetime of tx and returns the number the next inserted customer must take.
func AllocateAccountNumberInTx(ctx context.Context, repo Repository, tx pgx.Tx) (int64, error) {
	if err := repo.LockAccountNumbersInTx(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to lock account numbers: %w", err)
	}
	existing, err := repo.ListAccountNumbersInTx(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("failed to list account numbers: %w", err)
	}
	return NextAccountNumber(existing), nil
}
