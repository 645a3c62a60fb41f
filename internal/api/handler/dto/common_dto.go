package dto

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse carries the text a browser client shows the user, and where to go next.
type MessageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// FormResponse lists the fields a form posts back, in display order.
type FormResponse struct {
	Fields []string `json:"fields"`
}

var (
	SignupFields    = []string{"firstName", "lastName", "mobileNumber", "email", "startingDeposit", "password"}
	ApplyLoanFields = []string{"amount", "tenure", "interestRate"}
)
