package employee_test

import (
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	a, err := employee.ParseAction("approve")
	assert.NoError(t, err)
	assert.Equal(t, employee.ActionApprove, a)

	a, err = employee.ParseAction(" Deny ")
	assert.NoError(t, err)
	assert.Equal(t, employee.ActionDeny, a)

	_, err = employee.ParseAction("escalate")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
