package routes

import (
	"net/http"

	"chat-relay/internal/auth"
	"chat-relay/internal/handlers"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Chat     *handlers.ChatHandler
	Document *handlers.DocumentHandler
	Stats    *handlers.StatsHandler
	Health   *handlers.HealthHandler
	WS       *handlers.WSHandler
	Auth     *handlers.AuthHandler
	Home     *handlers.HomeHandler
	// AuthMiddleware protects /users/me and, when RequireAuth is set, the
	// chat, document and stats endpoints
	AuthMiddleware *auth.Middleware
	RequireAuth    bool
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	gate := h.AuthMiddleware.Gate(h.RequireAuth)
	protect := func(fn http.HandlerFunc) http.Handler { return gate(fn) }

	// Health endpoints
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/llm/health", h.Health.LLMHealth).Methods(http.MethodGet)

	// Chat and documents
	router.Handle("/chat", protect(h.Chat.Chat)).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/upload-pdf", protect(h.Document.UploadPDF)).Methods(http.MethodPost, http.MethodOptions)

	// Stats and model config
	router.Handle("/stats", protect(h.Stats.GetStats)).Methods(http.MethodGet)
	router.Handle("/config", protect(h.Stats.GetConfig)).Methods(http.MethodGet)
	router.Handle("/config", protect(h.Stats.UpdateConfig)).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/reset-stats", protect(h.Stats.ResetStats)).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/history", protect(h.Stats.GetHistory)).Methods(http.MethodGet)

	// Observers
	router.HandleFunc("/ws", h.WS.Observe)

	// Accounts
	router.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/token", h.Auth.Token).Methods(http.MethodPost, http.MethodOptions)
	if h.AuthMiddleware != nil {
		router.Handle("/users/me", h.AuthMiddleware.RequireUser(http.HandlerFunc(h.Auth.Me))).Methods(http.MethodGet)
	}

	router.HandleFunc("/", h.Home.Home).Methods(http.MethodGet)
}
