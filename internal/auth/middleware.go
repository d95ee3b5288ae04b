package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"chat-relay/internal/models"
	"chat-relay/internal/repositories"
)

type contextKey struct{}

// UserFromContext returns the user stored by RequireUser
func UserFromContext(ctx context.Context) (*repositories.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*repositories.User)
	return user, ok
}

// ContextWithUser stores user in ctx
func ContextWithUser(ctx context.Context, user *repositories.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// Middleware resolves bearer tokens to users
type Middleware struct {
	service *Service
	logger  *log.Logger
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(service *Service, logger *log.Logger) *Middleware {
	return &Middleware{service: service, logger: logger}
}

// RequireUser rejects requests without a valid bearer token with 401 and
// stores the resolved user in the request context otherwise
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		user, err := m.service.CurrentUser(r.Context(), token)
		if err != nil {
			m.logger.Printf("Rejected token from %s: %v", r.RemoteAddr, err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// Gate returns RequireUser when enabled and a pass-through otherwise
func (m *Middleware) Gate(enabled bool) func(http.Handler) http.Handler {
	if !enabled || m == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return m.RequireUser
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Could not validate credentials"})
}
