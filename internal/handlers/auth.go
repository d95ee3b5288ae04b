package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"chat-relay/internal/auth"
	"chat-relay/internal/models"
)

// AuthHandler handles registration and token issuance
type AuthHandler struct {
	responder
	service *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Email and password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	_, err := h.service.Register(r.Context(), request.Email, request.Password)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		h.sendError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, auth.ErrInvalidRegistration):
		h.sendError(w, http.StatusBadRequest, "Email and password are required")
	case err != nil:
		h.logger.Printf("Registration failed: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to register user")
	default:
		h.sendMessage(w, "User registered successfully")
	}
}

// Token godoc
// @Summary Issue an access token
// @Description Exchanges form credentials for a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	token, err := h.service.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.sendError(w, http.StatusBadRequest, "Incorrect email or password")
	case err != nil:
		h.logger.Printf("Token issue failed: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to issue token")
	default:
		h.sendJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.sendError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	h.sendJSON(w, http.StatusOK, models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}
