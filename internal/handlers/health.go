package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"chat-relay/internal/models"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves liveness and provider reachability probes
type HealthHandler struct {
	responder
	provider HealthChecker
	now      func() time.Time
}

// NewHealthHandler creates a new health handler. provider may be nil.
func NewHealthHandler(provider HealthChecker, logger *log.Logger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		provider:  provider,
		now:       time.Now,
	}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339Nano),
	})
}

// LLMHealth godoc
// @Summary Check LLM health
// @Description Checks that the completion provider answers a model listing
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /llm/health [get]
func (h *HealthHandler) LLMHealth(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		h.sendError(w, http.StatusServiceUnavailable, "LLM provider is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.provider.HealthCheck(ctx); err != nil {
		h.logger.Printf("LLM health check failed: %v", err)
		h.sendError(w, http.StatusServiceUnavailable, "LLM provider is not available: "+err.Error())
		return
	}

	h.sendJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339Nano),
	})
}
