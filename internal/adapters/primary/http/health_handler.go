package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/user-management-api/internal/core/ports"
)

const (
	healthStatusOK    = "ok"
	healthStatusError = "error"

	probeTimeout = 5 * time.Second
)

// HealthHandler handles health check requests
type HealthHandler struct {
	prober    ports.HealthProber
	startTime time.Time
	version   string
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(prober ports.HealthProber, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		prober:    prober,
		startTime: time.Now(),
		version:   version,
		logger:    logger.With("handler", "health"),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// ReadinessResponse adds build and uptime information to a health result
type ReadinessResponse struct {
	HealthResponse
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleHealth)
	r.Get("/live", h.HandleLiveness)
	r.Get("/ready", h.HandleReadiness)
}

// HandleHealth handles GET /health. It always answers 200; a failed store
// probe is reported in the body instead of the status code.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.check(r.Context()))
}

// HandleLiveness handles liveness probe requests (is the process serving?)
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
}

// HandleReadiness handles readiness probe requests (can the service accept traffic?)
// Used by orchestrators, so a failed probe answers 503.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	result := h.check(r.Context())

	statusCode := http.StatusOK
	if result.Status != healthStatusOK {
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, statusCode, ReadinessResponse{
		HealthResponse: result,
		Version:        h.version,
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
	})
}

// check probes the store. Every failure, including a panic in the
// prober, becomes an error result.
func (h *HealthHandler) check(ctx context.Context) (result HealthResponse) {
	if h.prober == nil {
		return HealthResponse{Status: healthStatusError, Details: "store not configured"}
	}

	defer func() {
		if p := recover(); p != nil {
			h.logger.ErrorContext(ctx, "health probe panicked", "panic", p)
			result = HealthResponse{Status: healthStatusError, Details: "health probe failed"}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := h.prober.Probe(ctx); err != nil {
		h.logger.WarnContext(ctx, "health probe failed", "error", err)
		details := err.Error()
		if details == "" {
			details = "store probe failed"
		}
		return HealthResponse{Status: healthStatusError, Details: details}
	}

	return HealthResponse{Status: healthStatusOK}
}
