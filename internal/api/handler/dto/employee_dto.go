package dto

import (
	"bank-backoffice/internal/domain/employee"
	"strconv"
)

type EmployeeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	RequestsApproved int    `json:"requestsApproved"`
	RequestsDenied   int    `json:"requestsDenied"`
}

func NewEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               strconv.FormatInt(e.ID, 10),
		Name:             e.Name,
		Email:            e.Email,
		RequestsApproved: e.RequestsApproved,
		RequestsDenied:   e.RequestsDenied,
	}
}

type EmployeeDashboardResponse struct {
	PendingAccountRequests   []AccountRequestResponse `json:"pendingAccountRequests"`
	PendingLoanRequests      []LoanRequestResponse    `json:"pendingLoanRequests"`
	CompletedAccountRequests []AccountRequestResponse `json:"completedAccountRequests"`
	CompletedLoanRequests    []LoanRequestResponse    `json:"completedLoanRequests"`
}

func NewEmployeeDashboardResponse(d *employee.Dashboard) EmployeeDashboardResponse {
	resp := EmployeeDashboardResponse{
		PendingAccountRequests:   make([]AccountRequestResponse, len(d.PendingAccountRequests)),
		PendingLoanRequests:      NewLoanRequestResponses(d.PendingLoans),
		CompletedAccountRequests: make([]AccountRequestResponse, len(d.ResolvedAccountRequests)),
		CompletedLoanRequests:    NewLoanRequestResponses(d.ResolvedLoans),
	}
	for i, r := range d.PendingAccountRequests {
		resp.PendingAccountRequests[i] = NewAccountRequestResponse(r)
	}
	for i, r := range d.ResolvedAccountRequests {
		resp.CompletedAccountRequests[i] = NewResolvedAccountRequestResponse(r)
	}
	return resp
}

type DecisionResponse struct {
	Message       string  `json:"message"`
	AccountNumber *string `json:"accountNumber,omitempty"`
	Balance       string  `json:"balance,omitempty"`
	Redirect      string  `json:"redirect"`
}
