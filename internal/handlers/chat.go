package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"chat-relay/internal/models"
	"chat-relay/internal/services"
)

// ChatHandler streams chat sessions as server-sent events
type ChatHandler struct {
	responder
	chat *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *services.ChatService, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		responder: responder{logger: logger},
		chat:      chat,
	}
}

// Chat godoc
// @Summary Stream a chat completion
// @Description Relays generated text as server-sent events. Each event is `data: {"content":..,"done":false}`; the stream ends with `{"content":"","done":true}`, carrying `error` when the provider failed mid-stream.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body models.ChatRequest true "Message with optional temperature and max_tokens overrides"
// @Success 200 {object} models.StreamEvent
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var request models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.sendError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events, err := h.chat.Start(r.Context(), request)
	if err != nil {
		var invalid *services.InvalidInputError
		if errors.As(err, &invalid) {
			h.sendError(w, http.StatusBadRequest, invalid.Message)
			return
		}
		h.logger.Printf("Chat failed to start: %v", err)
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range events {
		var out models.StreamEvent
		switch ev.Type {
		case services.EventFragment:
			out = models.StreamEvent{Content: ev.Content}
		case services.EventDone:
			out = models.StreamEvent{Done: true}
		case services.EventError:
			out = models.StreamEvent{Done: true, Error: ev.Detail}
		}

		if err := writeEvent(w, out); err != nil {
			// The client is gone; cancellation of r.Context() ends the session.
			h.logger.Printf("Chat stream write failed: %v", err)
			return
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, ev models.StreamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
