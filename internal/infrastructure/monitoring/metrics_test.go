package monitoring

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransaction(t *testing.T) {
	before := testutil.ToFloat64(Business.TransactionsTotal.WithLabelValues("deposit", "success"))
	RecordTransaction("deposit", "success")
	after := testutil.ToFloat64(Business.TransactionsTotal.WithLabelValues("deposit", "success"))

	assert.Equal(t, before+1, after)
}

func TestSetPendingRequests(t *testing.T) {
	SetPendingRequests("loan", 7)

	expected := `
		# HELP bank_backoffice_pending_requests Requests waiting for an employee decision, refreshed by the backlog job.
		# TYPE bank_backoffice_pending_requests gauge
		bank_backoffice_pending_requests{kind="loan"} 7
	`
	Business.PendingRequests.DeleteLabelValues("account")
	err := testutil.CollectAndCompare(Business.PendingRequests, strings.NewReader(expected))
	assert.NoError(t, err)
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(HTTP.RequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, "success", StatusOf(nil))
	assert.Equal(t, "failure", StatusOf(errors.New("boom")))
}
