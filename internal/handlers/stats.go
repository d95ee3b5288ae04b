package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"chat-relay/internal/models"
	"chat-relay/internal/repositories"
	"chat-relay/internal/services"
	"chat-relay/internal/stats"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// StatsHandler exposes the stats ledger, the model config and the
// conversation archive
type StatsHandler struct {
	responder
	ledger      *stats.Ledger
	broadcaster services.Broadcaster
	archive     repositories.ConversationArchive
}

// NewStatsHandler creates a new stats handler. archive may be nil.
func NewStatsHandler(ledger *stats.Ledger, broadcaster services.Broadcaster, archive repositories.ConversationArchive, logger *log.Logger) *StatsHandler {
	return &StatsHandler{
		responder:   responder{logger: logger},
		ledger:      ledger,
		broadcaster: broadcaster,
		archive:     archive,
	}
}

// GetStats godoc
// @Summary Get usage statistics
// @Description Returns chat totals, the average response time, the five most recent conversations and the active model config
// @Tags stats
// @Produce json
// @Success 200 {object} models.StatsSnapshot
// @Router /stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.ledger.Snapshot())
}

// GetConfig godoc
// @Summary Get model config
// @Tags config
// @Produce json
// @Success 200 {object} models.ModelConfig
// @Router /config [get]
func (h *StatsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.ledger.Config())
}

// UpdateConfig godoc
// @Summary Update model config
// @Description Merges the given fields into the active model config; omitted fields are unchanged
// @Tags config
// @Accept json
// @Produce json
// @Param request body models.ConfigUpdate true "Fields to change"
// @Success 200 {object} models.ConfigResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /config [post]
func (h *StatsHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var update models.ConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cfg := h.ledger.UpdateConfig(update)
	h.logger.Printf("Model config updated: model=%s temperature=%.2f max_tokens=%d", cfg.Model, cfg.Temperature, cfg.MaxTokens)

	h.sendJSON(w, http.StatusOK, models.ConfigResponse{
		Message: "Configuration updated",
		Config:  cfg,
	})
}

// ResetStats godoc
// @Summary Reset statistics
// @Description Clears counters and history, keeps the model config, and pushes the empty snapshot to every observer
// @Tags stats
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /reset-stats [post]
func (h *StatsHandler) ResetStats(w http.ResponseWriter, r *http.Request) {
	var delivered int
	h.ledger.ResetAndPublish(func(snapshot models.StatsSnapshot) {
		delivered = h.broadcaster.Broadcast(snapshot)
	})
	h.logger.Printf("Stats reset, snapshot delivered to %d observers", delivered)

	h.sendMessage(w, "Stats reset successfully")
}

// GetHistory godoc
// @Summary List archived conversations
// @Description Returns conversations from the persistent archive, newest first
// @Tags stats
// @Produce json
// @Param limit query int false "Maximum records to return" default(50)
// @Success 200 {object} models.HistoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /history [get]
func (h *StatsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.sendError(w, http.StatusServiceUnavailable, "Conversation archive is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.sendError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := h.archive.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Printf("Failed to read archive: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to read conversation history")
		return
	}

	h.sendJSON(w, http.StatusOK, models.HistoryResponse{
		Conversations: records,
		Count:         len(records),
	})
}
