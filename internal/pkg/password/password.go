package password

import (
	"bank-backoffice/internal/pkg/apperrors"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the most bytes bcrypt will hash.
const MaxLength = 72

func Hash(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", apperrors.NewValidationError("password", "cannot be empty")
	}
	if len(plain) > MaxLength {
		return "", apperrors.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxLength))
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports apperrors.ErrInvalidCredentials on any mismatch, including a malformed hash.
func Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
}
