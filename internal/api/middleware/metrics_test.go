package middleware

import (
	"bank-backoffice/internal/infrastructure/monitoring"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	monitoring.HTTP.RequestsTotal.Reset()
	monitoring.HTTP.RequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Post("/employee/handle_loan_request/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	for _, path := range []string{"/employee/handle_loan_request/1/approve", "/employee/handle_loan_request/2/deny"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	count := testutil.ToFloat64(monitoring.HTTP.RequestsTotal.WithLabelValues(
		http.MethodPost, "/employee/handle_loan_request/{id}/{action}", "200"))
	assert.Equal(t, float64(2), count)
	assert.Equal(t, 1, testutil.CollectAndCount(monitoring.HTTP.RequestsTotal))
}
