package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"bank-backoffice/internal/domain/accountrequest"
	"log/slog"
	"net/http"
)

type SignupHandler struct {
	service accountrequest.Service
	logger  *slog.Logger
}

func NewSignupHandler(s accountrequest.Service, l *slog.Logger) *SignupHandler {
	if s == nil {
		panic("account request service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &SignupHandler{
		service: s,
		logger:  l.With("component", "SignupHandler"),
	}
}

// Form handles GET /signup
// @Summary Signup form
// @Tags Signup
// @Produce json
// @Success 200 {object} dto.FormResponse "Fields the signup form posts"
// @Router /signup [get]
func (h *SignupHandler) Form(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.FormResponse{Fields: dto.SignupFields})
}

// Submit handles POST /signup
// @Summary Request a new account
// @Description Files an account opening request for an employee to approve. The password is stored hashed.
// @Tags Signup
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Applicant details"
// @Success 201 {object} dto.SignupResponse "Request submitted"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed field"
// @Failure 409 {object} dto.ErrorResponse "A customer with these details already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /signup [post]
func (h *SignupHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}

	app, err := req.ToApplication()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.Submit(r.Context(), app)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to submit account request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account request submitted", slog.Int64("requestID", created.ID))
	respondJSON(w, http.StatusCreated, dto.SignupResponse{
		Message:  "Your account opening request has been submitted successfully! You will be notified once it is approved.",
		Request:  dto.NewAccountRequestResponse(created),
		Redirect: "/",
	})
}
