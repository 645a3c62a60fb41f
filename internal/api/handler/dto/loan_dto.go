package dto

import (
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/pkg/apperrors"
	"bank-backoffice/internal/pkg/money"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ApplyLoanRequest struct {
	Amount       string `json:"amount"`
	Tenure       int    `json:"tenure"`
	InterestRate string `json:"interestRate"`
}

func (r *ApplyLoanRequest) Parse() (amount decimal.Decimal, interestRate decimal.Decimal, err error) {
	if amount, err = money.Parse("amount", r.Amount); err != nil {
		return
	}
	if interestRate, err = money.ParseRate("interestRate", r.InterestRate); err != nil {
		return
	}
	if r.Tenure <= 0 {
		err = apperrors.NewValidationError("tenure", "must be a positive whole number")
	}
	return
}

type RepayLoanRequest struct {
	LoanID int64  `json:"loanId"`
	Amount string `json:"amount"`
}

func (r *RepayLoanRequest) Parse() (decimal.Decimal, error) {
	if r.LoanID <= 0 {
		return decimal.Zero, apperrors.NewValidationError("loanId", "must be a positive number")
	}
	return money.Parse("amount", r.Amount)
}

type LoanResponse struct {
	LoanID         string `json:"loanId"`
	AccountNumber  string `json:"accountNumber"`
	Amount         string `json:"amount"`
	Tenure         int    `json:"tenure"`
	InterestRate   string `json:"interestRate"`
	TotalRepayment string `json:"totalRepayment"`
	RepaymentPaid  string `json:"repaymentPaid"`
	RepaymentLeft  string `json:"repaymentLeft"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	return LoanResponse{
		LoanID:         strconv.FormatInt(l.ID, 10),
		AccountNumber:  strconv.FormatInt(l.AccountNumber, 10),
		Amount:         money.Format(l.Amount),
		Tenure:         l.Tenure,
		InterestRate:   l.InterestRate.String(),
		TotalRepayment: money.Format(l.TotalRepayment),
		RepaymentPaid:  money.Format(l.RepaymentPaid),
		RepaymentLeft:  money.Format(l.RepaymentLeft()),
		Status:         string(l.Status),
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

func NewLoanResponses(loans []*loan.Loan) []LoanResponse {
	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = NewLoanResponse(l)
	}
	return resp
}

type LoanRequestResponse struct {
	LoanResponse
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewLoanRequestResponses(loans []*loan.LoanWithApplicant) []LoanRequestResponse {
	resp := make([]LoanRequestResponse, len(loans))
	for i, l := range loans {
		resp[i] = LoanRequestResponse{
			LoanResponse: NewLoanResponse(&l.Loan),
			FirstName:    l.FirstName,
			LastName:     l.LastName,
		}
	}
	return resp
}

type RepayLoanResponse struct {
	Message  string       `json:"message"`
	Loan     LoanResponse `json:"loan"`
	Balance  string       `json:"balance"`
	Redirect string       `json:"redirect"`
}

type LoanApplicationResponse struct {
	Message  string       `json:"message"`
	Loan     LoanResponse `json:"loan"`
	Redirect string       `json:"redirect"`
}

type RepayLoanFormResponse struct {
	Loans   []LoanResponse `json:"loans"`
	Balance string         `json:"balance"`
}
