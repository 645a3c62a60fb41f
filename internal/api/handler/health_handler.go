package handler

import (
	"bank-backoffice/internal/api/handler/dto"
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Pinger is anything /health can ping: the Postgres pool, the Redis client.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
	logger *slog.Logger
}

func NewHealthHandler(checks map[string]Pinger, l *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: l.With("component", "HealthHandler"),
	}
}

// Health handles GET /health
// @Summary Health check
// @Description Pings each backing store. Any failure turns the status to degraded.
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.WarnContext(r.Context(), "Health check failed", "check", name, slog.Any("error", err))
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	respondJSON(w, status, resp)
}
