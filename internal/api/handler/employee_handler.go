package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/pkg/money"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type EmployeeHandler struct {
	service employee.EmployeeService
	logger  *slog.Logger
}

func NewEmployeeHandler(s employee.EmployeeService, l *slog.Logger) *EmployeeHandler {
	if s == nil {
		panic("employee service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &EmployeeHandler{
		service: s,
		logger:  l.With("component", "EmployeeHandler"),
	}
}

func (h *EmployeeHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Log(r.Context(), logLevelFor(err), msg, slog.Any("error", err))
	respondError(w, err)
}

// decisionParams reads the caller and the {id}/{action} path pair shared by both decision routes.
func (h *EmployeeHandler) decisionParams(w http.ResponseWriter, r *http.Request) (int64, int64, employee.Action, bool) {
	caller, err := callerOf(r, auth.RoleEmployee)
	if err != nil {
		h.fail(w, r, "No employee session on guarded route", err)
		return 0, 0, "", false
	}
	id, err := getIDFromURL(r, "id")
	if err != nil {
		h.fail(w, r, "Failed to get request ID from URL", err)
		return 0, 0, "", false
	}
	action, err := employee.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		h.fail(w, r, "Rejected decision action", err)
		return 0, 0, "", false
	}
	return caller.UserID, id, action, true
}

// Dashboard handles GET /employee/dashboard
// @Summary Employee dashboard
// @Description Pending and completed account and loan requests. Completed account requests carry the account number they produced.
// @Tags Employee
// @Produce json
// @Success 200 {object} dto.EmployeeDashboardResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /employee/dashboard [get]
// @Security SessionCookie
func (h *EmployeeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := callerOf(r, auth.RoleEmployee); err != nil {
		h.fail(w, r, "No employee session on guarded route", err)
		return
	}

	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, "Service failed to build dashboard", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEmployeeDashboardResponse(d))
}

// HandleAccountRequest handles POST /employee/handle_account_request/{id}/{action}
// @Summary Approve or deny an account request
// @Description Approval opens the account with the next free account number and the requested starting deposit.
// @Tags Employee
// @Produce json
// @Param id path int true "Account request ID" Minimum(1)
// @Param action path string true "Decision" Enums(approve, deny)
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or action"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /employee/handle_account_request/{id}/{action} [post]
// @Security SessionCookie
func (h *EmployeeHandler) HandleAccountRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, requestID, action, ok := h.decisionParams(w, r)
	if !ok {
		return
	}

	dec, err := h.service.HandleAccountRequest(r.Context(), employeeID, requestID, action)
	if err != nil {
		h.fail(w, r, "Service failed to resolve account request", err)
		return
	}

	resp := dto.DecisionResponse{
		Message:  fmt.Sprintf("Account request for %s has been denied.", dec.Request.FirstName),
		Redirect: employeeDashboardPath,
	}
	if dec.Customer != nil {
		n := strconv.FormatInt(dec.Customer.AccountNumber, 10)
		resp.Message = fmt.Sprintf("Account for %s approved with Account Number: %s", dec.Request.FirstName, n)
		resp.AccountNumber = &n
		resp.Balance = money.Format(dec.Customer.Balance)
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleLoanRequest handles POST /employee/handle_loan_request/{id}/{action}
// @Summary Approve or deny a loan
// @Description Approval credits the loan amount to the borrower's balance in the same transaction.
// @Tags Employee
// @Produce json
// @Param id path int true "Loan ID" Minimum(1)
// @Param action path string true "Decision" Enums(approve, deny)
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or action"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /employee/handle_loan_request/{id}/{action} [post]
// @Security SessionCookie
func (h *EmployeeHandler) HandleLoanRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, loanID, action, ok := h.decisionParams(w, r)
	if !ok {
		return
	}

	dec, err := h.service.HandleLoanRequest(r.Context(), employeeID, loanID, action)
	if err != nil {
		h.fail(w, r, "Service failed to resolve loan request", err)
		return
	}

	n := strconv.FormatInt(dec.Loan.AccountNumber, 10)
	resp := dto.DecisionResponse{
		Message:       fmt.Sprintf("Loan request for Account #%s denied.", n),
		AccountNumber: &n,
		Redirect:      employeeDashboardPath,
	}
	if action == employee.ActionApprove {
		resp.Message = fmt.Sprintf("Loan request for Account #%s approved.", n)
		resp.Balance = money.Format(dec.Balance)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Account handles GET /employee/account
// @Summary Employee profile
// @Description The logged-in employee with their approval and denial counters.
// @Tags Employee
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /employee/account [get]
// @Security SessionCookie
func (h *EmployeeHandler) Account(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r, auth.RoleEmployee)
	if err != nil {
		h.fail(w, r, "No employee session on guarded route", err)
		return
	}

	e, err := h.service.Profile(r.Context(), caller.UserID)
	if err != nil {
		h.fail(w, r, "Service failed to load profile", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEmployeeResponse(e))
}
