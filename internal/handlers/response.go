package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"chat-relay/internal/models"
)

// responder carries the logger and JSON helpers shared by every handler
type responder struct {
	logger *log.Logger
}

func (h responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("Failed to encode JSON: %v", err)
	}
}

func (h responder) sendError(w http.ResponseWriter, status int, detail string) {
	h.sendJSON(w, status, models.ErrorResponse{Detail: detail})
}

func (h responder) sendMessage(w http.ResponseWriter, message string) {
	h.sendJSON(w, http.StatusOK, models.MessageResponse{Message: message})
}
