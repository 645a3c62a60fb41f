package dto

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/pkg/money"
	"strconv"
	"time"
)

type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MobileNumber    string `json:"mobileNumber"`
	Email           string `json:"email"`
	StartingDeposit string `json:"startingDeposit"`
	Password        string `json:"password"`
}

// ToApplication parses the deposit; field checks are left to the account request service.
func (r *SignupRequest) ToApplication() (accountrequest.Application, error) {
	deposit, err := money.Parse("startingDeposit", r.StartingDeposit)
	if err != nil {
		return accountrequest.Application{}, err
	}
	return accountrequest.Application{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		Email:           r.Email,
		StartingDeposit: deposit,
		Password:        r.Password,
	}, nil
}

type SignupResponse struct {
	Message  string                 `json:"message"`
	Request  AccountRequestResponse `json:"request"`
	Redirect string                 `json:"redirect"`
}

type AccountRequestResponse struct {
	RequestID       string  `json:"requestId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	MobileNumber    string  `json:"mobileNumber"`
	Email           string  `json:"email"`
	StartingDeposit string  `json:"startingDeposit"`
	Status          string  `json:"status"`
	AccountNumber   *string `json:"accountNumber,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func NewAccountRequestResponse(r *accountrequest.Request) AccountRequestResponse {
	return AccountRequestResponse{
		RequestID:       strconv.FormatInt(r.ID, 10),
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		Email:           r.Email,
		StartingDeposit: money.Format(r.StartingDeposit),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

func NewResolvedAccountRequestResponse(r *accountrequest.Resolved) AccountRequestResponse {
	resp := NewAccountRequestResponse(&r.Request)
	if r.AccountNumber != nil {
		n := strconv.FormatInt(*r.AccountNumber, 10)
		resp.AccountNumber = &n
	}
	return resp
}

type CustomerResponse struct {
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	MobileNumber  string `json:"mobileNumber"`
	Email         string `json:"email"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"createdAt"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		AccountNumber: strconv.FormatInt(c.AccountNumber, 10),
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		MobileNumber:  c.MobileNumber,
		Email:         c.Email,
		Balance:       money.Format(c.Balance),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

type CustomerDashboardResponse struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type TransactionFormResponse struct {
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

type TransactionResponse struct {
	Message  string `json:"message"`
	Balance  string `json:"balance"`
	Redirect string `json:"redirect"`
}

type AccountDetailsResponse struct {
	Customer  CustomerResponse `json:"customer"`
	Loans     []LoanResponse   `json:"loans"`
	TotalDues string           `json:"totalDues"`
}

func NewAccountDetailsResponse(d *loan.AccountDetails) AccountDetailsResponse {
	return AccountDetailsResponse{
		Customer:  NewCustomerResponse(d.Customer),
		Loans:     NewLoanResponses(d.Loans),
		TotalDues: money.Format(d.TotalDues),
	}
}
