package handler

import (
	"bank-backoffice/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantField  string
	}{
		{"validation error carries field", apperrors.NewValidationError("amount", "must be greater than zero"), http.StatusBadRequest, "must be greater than zero", "amount"},
		{"invalid captcha", apperrors.ErrInvalidCaptcha, http.StatusBadRequest, "Invalid CAPTCHA. Please try again.", ""},
		{"invalid argument", fmt.Errorf("%w: bad id", apperrors.ErrInvalidArgument), http.StatusBadRequest, "invalid argument: bad id", ""},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password.", ""},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized", ""},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "Forbidden", ""},
		{"insufficient funds", fmt.Errorf("%w: balance too low", apperrors.ErrInsufficientFunds), http.StatusUnprocessableEntity, "Insufficient balance.", ""},
		{"over repayment", fmt.Errorf("%w: ₹10.00 requested, ₹5.00 left", apperrors.ErrOverRepayment), http.StatusUnprocessableEntity, "repayment exceeds amount left: ₹10.00 requested, ₹5.00 left", ""},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "Resource not found.", ""},
		{"already resolved", apperrors.ErrAlreadyResolved, http.StatusConflict, "resource conflict: request already resolved", ""},
		{"duplicate signup", apperrors.ErrDuplicateSignup, http.StatusConflict, "resource already exists: an account with these details already exists", ""},
		{"database failure", apperrors.WrapDatabaseError(errors.New("conn reset"), "query failed"), http.StatusInternalServerError, "An unexpected error occurred.", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeBody[struct {
				Error struct {
					Message string `json:"message"`
					Field   string `json:"field"`
				} `json:"error"`
			}](t, rec)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
			assert.Equal(t, tt.wantField, body.Error.Field)
		})
	}
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrNotFound))
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrInvalidCaptcha))
	assert.Equal(t, slog.LevelError, logLevelFor(fmt.Errorf("%w: timeout", apperrors.ErrDatabase)))
	assert.Equal(t, slog.LevelError, logLevelFor(errors.New("boom")))
}

func TestGetIDFromURL(t *testing.T) {
	id, err := getIDFromURL(withURLParams(newRequest(http.MethodPost, "/", ""), "id", "42"), "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := getIDFromURL(withURLParams(newRequest(http.MethodPost, "/", ""), "id", raw), "id")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, raw)
	}
}
