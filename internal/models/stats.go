package models

import "encoding/json"

// ModelConfig holds the generation parameters used by chat sessions
type ModelConfig struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Model       string  `json:"model" yaml:"model"`
}

// ConfigUpdate is a partial ModelConfig; nil fields are left untouched
type ConfigUpdate struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Model       *string  `json:"model,omitempty"`
}

// UnmarshalJSON accepts max_tokens written as an integral float such as 300.0
func (u *ConfigUpdate) UnmarshalJSON(data []byte) error {
	type plain ConfigUpdate
	aux := struct {
		*plain
		MaxTokens *float64 `json:"max_tokens,omitempty"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	maxTokens, err := tokenLimit(aux.MaxTokens)
	if err != nil {
		return err
	}
	u.MaxTokens = maxTokens
	return nil
}

// ConfigResponse is returned after a config update
type ConfigResponse struct {
	Message string      `json:"message"`
	Config  ModelConfig `json:"config"`
}

// ConversationRecord summarizes one completed chat exchange
type ConversationRecord struct {
	UserMessage       string  `json:"user_message"`
	AssistantResponse string  `json:"assistant_response"`
	Timestamp         string  `json:"timestamp"`     // RFC 3339
	ResponseTime      float64 `json:"response_time"` // Seconds
	FragmentCount     int     `json:"fragment_count"`
}

// StatsSnapshot is a consistent point-in-time view of the stats ledger
type StatsSnapshot struct {
	TotalChats          int                  `json:"total_chats"`
	TotalFragments      int                  `json:"total_fragments"`
	AverageResponseTime float64              `json:"average_response_time"`
	RecentConversations []ConversationRecord `json:"recent_conversations"` // Oldest first
	ModelConfig         ModelConfig          `json:"model_config"`
}

// HistoryResponse lists archived conversation records, newest first
type HistoryResponse struct {
	Conversations []ConversationRecord `json:"conversations"`
	Count         int                  `json:"count"`
}
