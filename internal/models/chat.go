package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// ChatMessage represents a single message sent to the provider
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// ChatRequest represents the incoming chat request from the frontend
type ChatRequest struct {
	Message     string   `json:"message"`               // The current user message
	Temperature *float64 `json:"temperature,omitempty"` // Overrides the active model config when set
	MaxTokens   *int     `json:"max_tokens,omitempty"`  // Overrides the active model config when set
}

// UnmarshalJSON accepts max_tokens written as an integral float such as 300.0
func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	type plain ChatRequest
	aux := struct {
		*plain
		MaxTokens *float64 `json:"max_tokens,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	maxTokens, err := tokenLimit(aux.MaxTokens)
	if err != nil {
		return err
	}
	r.MaxTokens = maxTokens
	return nil
}

// tokenLimit converts a decoded max_tokens value, rejecting fractions
func tokenLimit(v *float64) (*int, error) {
	if v == nil {
		return nil, nil
	}
	f := *v
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, fmt.Errorf("max_tokens must be an integer, got %v", f)
	}
	n := int(f)
	return &n, nil
}

// StreamEvent is one server-sent event written to the /chat response body
type StreamEvent struct {
	Content string `json:"content"`         // Fragment text, empty on the terminal event
	Done    bool   `json:"done"`            // True only on the terminal event
	Error   string `json:"error,omitempty"` // Provider failure detail, set on an aborted stream
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// SummaryResponse is returned by the document upload endpoint
type SummaryResponse struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// IndexResponse is served at the root path
type IndexResponse struct {
	Service      string `json:"service"`
	Docs         string `json:"docs"`
	Health       string `json:"health"`
	Chat         string `json:"chat"`
	Observe      string `json:"observe"`
	Observers    int    `json:"observers"`     // Currently connected websocket observers
	AuthRequired bool   `json:"auth_required"` // Whether chat and stats endpoints need a bearer token
}
