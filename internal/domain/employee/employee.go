package employee

import (
	"bank-backoffice/internal/pkg/apperrors"
	"strings"
)

type Employee struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PasswordHash     string `json:"-"`
	RequestsApproved int    `json:"requestsApproved"`
	RequestsDenied   int    `json:"requestsDenied"`
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionDeny    Action = "deny"
)

func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionDeny:
		return ActionDeny, nil
	}
	return "", apperrors.NewValidationError("action", "must be approve or deny")
}
