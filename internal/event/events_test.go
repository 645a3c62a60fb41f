package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKeys(t *testing.T) {
	assert.Equal(t, RoutingKeyAccountRequestApproved, AccountRequestResolvedEvent{Approved: true}.RoutingKey())
	assert.Equal(t, RoutingKeyAccountRequestDenied, AccountRequestResolvedEvent{}.RoutingKey())
	assert.Equal(t, RoutingKeyLoanApproved, LoanResolvedEvent{Approved: true}.RoutingKey())
	assert.Equal(t, RoutingKeyLoanDenied, LoanResolvedEvent{}.RoutingKey())
}

func TestAccountRequestResolvedEventJSON(t *testing.T) {
	number := int64(3)
	e := AccountRequestResolvedEvent{
		RequestID:     11,
		Approved:      true,
		AccountNumber: &number,
		Email:         "asha@example.com",
		EmployeeID:    2,
		Timestamp:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	body, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(11), decoded["requestId"])
	assert.Equal(t, float64(3), decoded["accountNumber"])
	assert.Equal(t, true, decoded["approved"])

	denied, err := json.Marshal(AccountRequestResolvedEvent{RequestID: 12})
	require.NoError(t, err)
	assert.NotContains(t, string(denied), "accountNumber")
}

func TestNoopPublisherNeverFails(t *testing.T) {
	p := NewNoopPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.NoError(t, p.PublishAccountRequestResolved(ctx, AccountRequestResolvedEvent{}))
	assert.NoError(t, p.PublishLoanResolved(ctx, LoanResolvedEvent{}))
	assert.NoError(t, p.PublishLoanRepaid(ctx, LoanRepaidEvent{}))
	assert.NoError(t, p.PublishCustomerClosed(ctx, CustomerClosedEvent{}))
}
