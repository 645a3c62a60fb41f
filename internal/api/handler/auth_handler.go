package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"bank-backoffice/internal/api/middleware"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	customerDashboardPath = "/customer/dashboard"
	employeeDashboardPath = "/employee/dashboard"
)

type AuthHandler struct {
	auth    auth.Authenticator
	cookies CookieOptions
	logger  *slog.Logger
}

func NewAuthHandler(a auth.Authenticator, cookies CookieOptions, l *slog.Logger) *AuthHandler {
	if a == nil {
		panic("authenticator cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{
		auth:    a,
		cookies: cookies,
		logger:  l.With("component", "AuthHandler"),
	}
}

func dashboardFor(role auth.Role) string {
	if role == auth.RoleEmployee {
		return employeeDashboardPath
	}
	return customerDashboardPath
}

// Home handles GET /
// @Summary Login page
// @Description Redirects a logged-in caller to their dashboard. Anyone else receives a fresh CAPTCHA for the customer login form; its id is also set in the captcha_id cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.CaptchaResponse "CAPTCHA issued"
// @Success 303 "Already logged in"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router / [get]
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if id, ok := auth.IdentityFrom(r.Context()); ok {
		http.Redirect(w, r, dashboardFor(id.Role), http.StatusSeeOther)
		return
	}

	captcha, err := h.auth.IssueCaptcha(r.Context(), captchaIDFrom(r, ""))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to issue captcha", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.cookies.setCaptcha(w, captcha.ID)
	respondJSON(w, http.StatusOK, dto.CaptchaResponse{Captcha: captcha.Value, CaptchaID: captcha.ID})
}

func (h *AuthHandler) decodeLogin(w http.ResponseWriter, r *http.Request) (*dto.LoginRequest, bool) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return nil, false
	}
	return &req, true
}

// CustomerLogin handles POST /customer_login
// @Summary Customer login
// @Description Checks the CAPTCHA (single use, case-sensitive) and the customer's credentials, then sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials and CAPTCHA answer"
// @Success 200 {object} dto.SessionResponse "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Malformed body or invalid CAPTCHA"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /customer_login [post]
func (h *AuthHandler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	sess, err := h.auth.CustomerLogin(r.Context(), req.Email, req.Password, captchaIDFrom(r, req.CaptchaID), req.Captcha)
	// The challenge is spent either way.
	h.cookies.clear(w, middleware.CaptchaIDCookie)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Customer login failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.cookies.setSession(w, sess.Token, sess.ExpiresAt)
	h.logger.InfoContext(r.Context(), "Customer logged in", slog.Int64("accountNumber", sess.Identity.UserID))
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(sess, customerDashboardPath))
}

// EmployeeLogin handles POST /employee_login
// @Summary Employee login
// @Description Checks the employee's credentials and sets the session cookie. A CAPTCHA is only checked when auth.employeeCaptcha is enabled.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /employee_login [post]
func (h *AuthHandler) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	sess, err := h.auth.EmployeeLogin(r.Context(), req.Email, req.Password, captchaIDFrom(r, req.CaptchaID), req.Captcha)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Employee login failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.cookies.setSession(w, sess.Token, sess.ExpiresAt)
	h.logger.InfoContext(r.Context(), "Employee logged in", slog.Int64("employeeID", sess.Identity.UserID))
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(sess, employeeDashboardPath))
}

// Logout handles GET /logout
// @Summary Log out
// @Description Revokes the current session and clears the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Failure 500 {object} dto.ErrorResponse "Session store unavailable"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.clearSession(w)

	if token := middleware.SessionToken(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to revoke session", slog.Any("error", err))
			respondError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "You have been successfully logged out.", Redirect: "/"})
}
