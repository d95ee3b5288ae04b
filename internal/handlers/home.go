package handlers

import (
	"log"
	"net/http"

	"chat-relay/internal/models"
)

// ObserverCounter reports how many observers are connected
type ObserverCounter interface {
	Count() int
}

// HomeHandler serves the service index at /
type HomeHandler struct {
	responder
	observers   ObserverCounter
	requireAuth bool
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(observers ObserverCounter, requireAuth bool, logger *log.Logger) *HomeHandler {
	return &HomeHandler{
		responder:   responder{logger: logger},
		observers:   observers,
		requireAuth: requireAuth,
	}
}

// Home godoc
// @Summary Service index
// @Description Lists the relay's entry points and the number of live observers
// @Tags general
// @Produce json
// @Success 200 {object} models.IndexResponse
// @Router / [get]
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.sendError(w, http.StatusNotFound, "Not Found")
		return
	}

	h.sendJSON(w, http.StatusOK, models.IndexResponse{
		Service:      "chat-relay",
		Docs:         "/swagger/index.html",
		Health:       "/health",
		Chat:         "/chat",
		Observe:      "/ws",
		Observers:    h.observers.Count(),
		AuthRequired: h.requireAuth,
	})
}
