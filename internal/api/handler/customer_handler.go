package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"bank-backoffice/internal/api/middleware"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	transactionDeposit  = "deposit"
	transactionWithdraw = "withdraw"
)

type CustomerHandler struct {
	customers customer.CustomerService
	loans     loan.LoanService
	auth      auth.Authenticator
	cookies   CookieOptions
	logger    *slog.Logger
}

func NewCustomerHandler(customers customer.CustomerService, loans loan.LoanService, a auth.Authenticator,
	cookies CookieOptions, l *slog.Logger) *CustomerHandler {
	if customers == nil || loans == nil || a == nil {
		panic("customer handler dependencies cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		customers: customers,
		loans:     loans,
		auth:      a,
		cookies:   cookies,
		logger:    l.With("component", "CustomerHandler"),
	}
}

func (h *CustomerHandler) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := callerOf(r, auth.RoleCustomer)
	if err != nil {
		h.logger.WarnContext(r.Context(), "No customer session on guarded route", slog.Any("error", err))
		respondError(w, err)
		return 0, false
	}
	return id.UserID, true
}

func (h *CustomerHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Log(r.Context(), logLevelFor(err), msg, slog.Any("error", err))
	respondError(w, err)
}

// Dashboard handles GET /customer/dashboard
// @Summary Customer dashboard
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.CustomerDashboardResponse "Name, account number and balance"
// @Failure 404 {object} dto.ErrorResponse "Account no longer exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/dashboard [get]
// @Security SessionCookie
func (h *CustomerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	c, err := h.customers.GetCustomer(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to get customer", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.CustomerDashboardResponse{
		Name:          c.FullName(),
		AccountNumber: strconv.FormatInt(c.AccountNumber, 10),
		Balance:       money.Format(c.Balance),
	})
}

// ViewDetails handles GET /customer/view_details
// @Summary Account details
// @Description Customer record, every loan on the account and the dues left on approved loans.
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.AccountDetailsResponse
// @Failure 404 {object} dto.ErrorResponse "Account no longer exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/view_details [get]
// @Security SessionCookie
func (h *CustomerHandler) ViewDetails(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	details, err := h.loans.AccountDetails(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to load account details", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAccountDetailsResponse(details))
}

// PendingRequests handles GET /customer/pending_requests
// @Summary Loan requests
// @Description All loans on the account, grouped by status.
// @Tags Customer
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/pending_requests [get]
// @Security SessionCookie
func (h *CustomerHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	loans, err := h.loans.ListForCustomer(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to list loans", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanResponses(loans))
}

func transactionType(r *http.Request) (string, error) {
	t := chi.URLParam(r, "type")
	if t != transactionDeposit && t != transactionWithdraw {
		return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrNotFound, t)
	}
	return t, nil
}

// TransactionForm handles GET /customer/transaction/{type}
// @Summary Deposit or withdrawal form
// @Tags Customer
// @Produce json
// @Param type path string true "Transaction type" Enums(deposit, withdraw)
// @Success 200 {object} dto.TransactionFormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown transaction type"
// @Router /customer/transaction/{type} [get]
// @Security SessionCookie
func (h *CustomerHandler) TransactionForm(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}
	txType, err := transactionType(r)
	if err != nil {
		h.fail(w, r, "Rejected transaction type", err)
		return
	}

	balance, err := h.customers.GetBalance(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TransactionFormResponse{Type: txType, Balance: money.Format(balance)})
}

// Transaction handles POST /customer/transaction/{type}
// @Summary Deposit or withdraw
// @Tags Customer
// @Accept json
// @Produce json
// @Param type path string true "Transaction type" Enums(deposit, withdraw)
// @Param request body dto.AmountRequest true "Amount in rupees"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Amount missing, malformed or not positive"
// @Failure 404 {object} dto.ErrorResponse "Unknown transaction type"
// @Failure 422 {object} dto.ErrorResponse "Insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/transaction/{type} [post]
// @Security SessionCookie
func (h *CustomerHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}
	txType, err := transactionType(r)
	if err != nil {
		h.fail(w, r, "Rejected transaction type", err)
		return
	}

	var req dto.AmountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}
	amount, err := money.Parse("amount", req.Amount)
	if err != nil {
		h.fail(w, r, "Validation failed", err)
		return
	}

	var (
		updated *customer.Customer
		verb    string
	)
	if txType == transactionDeposit {
		updated, err = h.customers.Deposit(r.Context(), accountNumber, amount)
		verb = "deposited"
	} else {
		updated, err = h.customers.Withdraw(r.Context(), accountNumber, amount)
		verb = "withdrew"
	}
	if err != nil {
		h.fail(w, r, "Service failed to apply transaction", err)
		return
	}

	balance := money.Format(updated.Balance)
	respondJSON(w, http.StatusOK, dto.TransactionResponse{
		Message:  fmt.Sprintf("Successfully %s %s. New balance is %s.", verb, money.Format(amount), balance),
		Balance:  balance,
		Redirect: customerDashboardPath,
	})
}

// Balance handles GET /get_balance
// @Summary Current balance
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Not logged in as a customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /get_balance [get]
// @Security SessionCookie
func (h *CustomerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	balance, err := h.customers.GetBalance(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.BalanceResponse{Balance: money.Format(balance)})
}

// ApplyLoanForm handles GET /customer/apply_loan
// @Summary Loan application form
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.FormResponse
// @Router /customer/apply_loan [get]
// @Security SessionCookie
func (h *CustomerHandler) ApplyLoanForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.caller(w, r); !ok {
		return
	}
	respondJSON(w, http.StatusOK, dto.FormResponse{Fields: dto.ApplyLoanFields})
}

// ApplyLoan handles POST /customer/apply_loan
// @Summary Apply for a loan
// @Description Files a pending loan. Total repayment is amount × (1 + rate/100 × tenure).
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body dto.ApplyLoanRequest true "Amount, tenure and interest rate in percent per tenure period"
// @Success 201 {object} dto.LoanApplicationResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, malformed or out of range field"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/apply_loan [post]
// @Security SessionCookie
func (h *CustomerHandler) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.ApplyLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}
	amount, rate, err := req.Parse()
	if err != nil {
		h.fail(w, r, "Validation failed", err)
		return
	}

	l, err := h.loans.Apply(r.Context(), accountNumber, amount, req.Tenure, rate)
	if err != nil {
		h.fail(w, r, "Service failed to file loan", err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan application filed", slog.Int64("loanID", l.ID))
	respondJSON(w, http.StatusCreated, dto.LoanApplicationResponse{
		Message:  "Your loan application has been submitted successfully!",
		Loan:     dto.NewLoanResponse(l),
		Redirect: "/customer/pending_requests",
	})
}

// RepayableLoans handles GET /customer/repay_loan
// @Summary Loans open for repayment
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.RepayLoanFormResponse "Approved loans and the balance to pay from"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/repay_loan [get]
// @Security SessionCookie
func (h *CustomerHandler) RepayableLoans(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	loans, err := h.loans.RepayableLoans(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to list repayable loans", err)
		return
	}
	balance, err := h.customers.GetBalance(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, "Service failed to get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.RepayLoanFormResponse{
		Loans:   dto.NewLoanResponses(loans),
		Balance: money.Format(balance),
	})
}

// RepayLoan handles POST /customer/repay_loan
// @Summary Repay a loan
// @Description Moves money from the balance to an approved loan in one transaction.
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body dto.RepayLoanRequest true "Loan and amount"
// @Success 200 {object} dto.RepayLoanResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, malformed or not positive amount"
// @Failure 404 {object} dto.ErrorResponse "No such loan on this account"
// @Failure 409 {object} dto.ErrorResponse "Loan is not approved"
// @Failure 422 {object} dto.ErrorResponse "Insufficient balance or amount exceeds what is left"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/repay_loan [post]
// @Security SessionCookie
func (h *CustomerHandler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.RepayLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}
	amount, err := req.Parse()
	if err != nil {
		h.fail(w, r, "Validation failed", err)
		return
	}

	rep, err := h.loans.Repay(r.Context(), accountNumber, req.LoanID, amount)
	if err != nil {
		h.fail(w, r, "Service failed to apply repayment", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.RepayLoanResponse{
		Message:  repaymentMessage(amount, req.LoanID),
		Loan:     dto.NewLoanResponse(rep.Loan),
		Balance:  money.Format(rep.Balance),
		Redirect: "/customer/repay_loan",
	})
}

func repaymentMessage(amount decimal.Decimal, loanID int64) string {
	return fmt.Sprintf("Successfully paid %s towards Loan ID %d.", money.Format(amount), loanID)
}

// CloseAccount handles POST /customer/close_account
// @Summary Close the account
// @Description Deletes the customer and their loans, then ends the session.
// @Tags Customer
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customer/close_account [post]
// @Security SessionCookie
func (h *CustomerHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.customers.CloseAccount(r.Context(), accountNumber); err != nil {
		h.fail(w, r, "Service failed to close account", err)
		return
	}

	h.cookies.clearSession(w)
	if err := h.auth.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		// The account is gone already; requests on the stale session find no customer.
		h.logger.ErrorContext(r.Context(), "Account closed but session was not revoked", slog.Any("error", err))
	}

	h.logger.InfoContext(r.Context(), "Account closed", slog.Int64("accountNumber", accountNumber))
	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Your account has been permanently closed.", Redirect: "/"})
}
