package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"chat-relay/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-3.5-turbo"
)

// TokenEvent is one item of a provider stream. Exactly one of Delta, Err
// or Done is meaningful; the channel is closed after Done or Err.
type TokenEvent struct {
	Delta string
	Err   error
	Done  bool
}

// CompletionRequest holds the resolved parameters of one completion
type CompletionRequest struct {
	Model       string
	Messages    []models.ChatMessage
	Temperature float64
	MaxTokens   int
}

// Provider is a streaming source of generated text
type Provider interface {
	// Stream opens a completion and yields its deltas on the returned channel.
	// Implementations stop when ctx is done.
	Stream(ctx context.Context, req CompletionRequest) (<-chan TokenEvent, error)
}

// LLMConfig configures the OpenAI-compatible provider
type LLMConfig struct {
	APIKey  string
	BaseURL string
	// HTTPClient carries no timeout by default: a hung provider hangs the session.
	HTTPClient *http.Client
}

// LLMService streams chat completions from an OpenAI-compatible API
type LLMService struct {
	client  *openai.Client
	baseURL string
}

// NewLLMService creates a new LLM service instance
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: api key required")
	}

	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	} else {
		config.HTTPClient = &http.Client{}
	}

	return &LLMService{
		client:  openai.NewClientWithConfig(config),
		baseURL: baseURL,
	}, nil
}

// wireTemperature converts t for the request body. The client omits a
// zero temperature, so 0 is sent as the smallest positive float32.
func wireTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// Stream opens a streaming chat completion
func (s *LLMService) Stream(ctx context.Context, req CompletionRequest) (<-chan TokenEvent, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: wireTemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		return nil, NewProviderError("open_stream", err, "")
	}

	ch := make(chan TokenEvent)
	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err != nil {
				ev := TokenEvent{Done: true}
				if !errors.Is(err, io.EOF) {
					ev = TokenEvent{Err: NewProviderError("recv", err, "")}
				}
				select {
				case ch <- ev:
				case <-ctx.Done():
				}
				return
			}

			for _, choice := range resp.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case ch <- TokenEvent{Delta: choice.Delta.Content}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// HealthCheck verifies the provider is reachable by listing its models
func (s *LLMService) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("provider at %s not reachable: %w", s.baseURL, err)
	}
	return nil
}

// Collect drains a provider stream into a single string
func Collect(ctx context.Context, tokens <-chan TokenEvent) (string, error) {
	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-tokens:
			if !ok || ev.Done {
				return sb.String(), nil
			}
			if ev.Err != nil {
				return "", ev.Err
			}
			sb.WriteString(ev.Delta)
		}
	}
}
