package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"chat-relay/internal/models"
	"chat-relay/internal/stats"

	"github.com/google/uuid"
)

// DefaultPacing is the delay inserted after each relayed fragment
const DefaultPacing = 20 * time.Millisecond

// ChatEventType tags a ChatEvent
type ChatEventType int

const (
	// EventFragment carries one piece of generated text
	EventFragment ChatEventType = iota
	// EventDone marks a completed and committed session
	EventDone
	// EventError marks a session aborted by the provider
	EventError
)

// ChatEvent is one item of a chat session stream
type ChatEvent struct {
	Type    ChatEventType
	Content string
	Detail  string
}

// Broadcaster fans a value out to live observers
type Broadcaster interface {
	Broadcast(v any) int
}

// ArchiveSink accepts committed conversation records for persistence.
// Enqueue must not block.
type ArchiveSink interface {
	Enqueue(record models.ConversationRecord) bool
}

// ChatServiceConfig holds the collaborators of a ChatService
type ChatServiceConfig struct {
	Provider    Provider
	Ledger      *stats.Ledger
	Broadcaster Broadcaster
	// Archive is optional
	Archive ArchiveSink
	// Pacing is the delay after each fragment; zero disables it
	Pacing time.Duration
	Logger *log.Logger
}

// ChatService drives chat sessions from prompt to committed statistics
type ChatService struct {
	provider    Provider
	ledger      *stats.Ledger
	broadcaster Broadcaster
	archive     ArchiveSink
	pacing      time.Duration
	logger      *log.Logger
	now         func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(cfg ChatServiceConfig) *ChatService {
	return &ChatService{
		provider:    cfg.Provider,
		ledger:      cfg.Ledger,
		broadcaster: cfg.Broadcaster,
		archive:     cfg.Archive,
		pacing:      cfg.Pacing,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Start opens a provider stream for req and relays it on the returned
// channel. The channel is unbuffered and closed after a Done or Error
// event, or when ctx is cancelled. Statistics are committed only when the
// provider stream is exhausted normally.
func (s *ChatService) Start(ctx context.Context, req models.ChatRequest) (<-chan ChatEvent, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, NewInvalidInputError("start_chat", nil, "message must not be empty")
	}

	started := s.now()
	sessionID := uuid.NewString()

	cfg := s.ledger.Config()
	completion := CompletionRequest{
		Model:       cfg.Model,
		Messages:    []models.ChatMessage{{Role: "user", Content: req.Message}},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	if req.Temperature != nil {
		completion.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		completion.MaxTokens = *req.MaxTokens
	}

	tokens, err := s.provider.Stream(ctx, completion)
	if err != nil {
		s.logger.Printf("Session %s: provider stream failed to open: %v", sessionID, err)
		var providerErr *ProviderError
		if errors.As(err, &providerErr) {
			return nil, err
		}
		return nil, NewProviderError("open_stream", err, "")
	}

	s.logger.Printf("Session %s started (model=%s, temperature=%.2f, max_tokens=%d)",
		sessionID, completion.Model, completion.Temperature, completion.MaxTokens)

	events := make(chan ChatEvent)
	go s.relay(ctx, sessionID, req.Message, started, tokens, events)

	return events, nil
}

func (s *ChatService) relay(ctx context.Context, sessionID, message string, started time.Time, tokens <-chan TokenEvent, events chan<- ChatEvent) {
	defer close(events)

	var (
		response  strings.Builder
		fragments int
	)

	for {
		var (
			ev TokenEvent
			ok bool
		)
		select {
		case <-ctx.Done():
			s.logger.Printf("Session %s cancelled after %d fragments", sessionID, fragments)
			return
		case ev, ok = <-tokens:
		}

		switch {
		case !ok || ev.Done:
			s.complete(ctx, sessionID, message, response.String(), fragments, started, events)
			return

		case ev.Err != nil:
			s.logger.Printf("Session %s: provider failed mid-stream: %v", sessionID, ev.Err)
			s.emit(ctx, events, ChatEvent{Type: EventError, Detail: ev.Err.Error()})
			return

		case ev.Delta == "":
			continue
		}

		response.WriteString(ev.Delta)
		fragments++
		if !s.emit(ctx, events, ChatEvent{Type: EventFragment, Content: ev.Delta}) {
			s.logger.Printf("Session %s cancelled after %d fragments", sessionID, fragments)
			return
		}

		if s.pacing > 0 {
			timer := time.NewTimer(s.pacing)
			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Printf("Session %s cancelled after %d fragments", sessionID, fragments)
				return
			case <-timer.C:
			}
		}
	}
}

// complete commits the session, notifies observers and emits Done
func (s *ChatService) complete(ctx context.Context, sessionID, message, response string, fragments int, started time.Time, events chan<- ChatEvent) {
	if ctx.Err() != nil {
		s.logger.Printf("Session %s cancelled before commit", sessionID)
		return
	}

	finished := s.now()
	record := models.ConversationRecord{
		UserMessage:       message,
		AssistantResponse: response,
		Timestamp:         finished.Format(time.RFC3339Nano),
		ResponseTime:      finished.Sub(started).Seconds(),
		FragmentCount:     fragments,
	}

	var delivered int
	s.ledger.CommitAndPublish(record, func(snapshot models.StatsSnapshot) {
		delivered = s.broadcaster.Broadcast(snapshot)
	})
	if s.archive != nil && !s.archive.Enqueue(record) {
		s.logger.Printf("Session %s: archive queue full, record not archived", sessionID)
	}

	s.logger.Printf("Session %s completed: %d fragments in %.3fs, stats sent to %d observers",
		sessionID, fragments, record.ResponseTime, delivered)

	s.emit(ctx, events, ChatEvent{Type: EventDone})
}

func (s *ChatService) emit(ctx context.Context, events chan<- ChatEvent, ev ChatEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
