package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidCaptcha):
		status, message = http.StatusBadRequest, "Invalid CAPTCHA. Please try again."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		status, message = http.StatusUnprocessableEntity, "Insufficient balance."
	case errors.Is(err, apperrors.ErrOverRepayment):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: malformed request body: %v", apperrors.ErrInvalidArgument, err)
}

// callerOf returns the identity the session middleware attached. Route guards make a
// missing one a wiring fault rather than a user error.
func callerOf(r *http.Request, role auth.Role) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok || !id.Is(role) {
		return auth.Identity{}, fmt.Errorf("%w: no %s session", apperrors.ErrUnauthorized, role)
	}
	return id, nil
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id, nil
}

// logLevelFor keeps expected client failures out of the error log.
func logLevelFor(err error) slog.Level {
	var appErr *apperrors.AppError
	if errors.Is(err, apperrors.ErrDatabase) || errors.Is(err, apperrors.ErrInternalServer) || errors.As(err, &appErr) {
		return slog.LevelError
	}
	for _, expected := range []error{
		apperrors.ErrValidation, apperrors.ErrInvalidArgument, apperrors.ErrUnauthorized,
		apperrors.ErrForbidden, apperrors.ErrNotFound, apperrors.ErrConflict, apperrors.ErrAlreadyExists,
		apperrors.ErrInsufficientFunds, apperrors.ErrOverRepayment,
	} {
		if errors.Is(err, expected) {
			return slog.LevelWarn
		}
	}
	return slog.LevelError
}
