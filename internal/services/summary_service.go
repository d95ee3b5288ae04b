package services

import (
	"context"
	"log"
	"mime"

	"chat-relay/internal/models"
)

const (
	// MaxDocumentChars is the number of characters of a document sent to the provider
	MaxDocumentChars = 4000
	// TruncationMarker is appended to text cut at MaxDocumentChars
	TruncationMarker = "..."
	// UnsupportedDocumentMessage is the detail returned for non-PDF uploads
	UnsupportedDocumentMessage = "Only PDF files are supported."

	summaryInstruction = "Summarize the following PDF content:"
	summaryTemperature = 0.5
	summaryMaxTokens   = 300
)

// SummaryServiceConfig holds the collaborators of a SummaryService
type SummaryServiceConfig struct {
	Provider  Provider
	Extractor TextExtractor
	// Keywords is optional; without it summaries carry no keywords
	Keywords *KeywordExtractor
	Model    string
	Logger   *log.Logger
}

// SummaryService summarizes uploaded PDF documents. It never touches the
// stats ledger or the observer registry.
type SummaryService struct {
	provider  Provider
	extractor TextExtractor
	keywords  *KeywordExtractor
	model     string
	logger    *log.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(cfg SummaryServiceConfig) *SummaryService {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &SummaryService{
		provider:  cfg.Provider,
		extractor: cfg.Extractor,
		keywords:  cfg.Keywords,
		model:     model,
		logger:    cfg.Logger,
	}
}

// Summarize extracts the text of a PDF document, truncates it and asks the
// provider for a summary. An unsupported content type yields an
// *InvalidInputError; extraction and provider failures are returned as
// *ExtractionError and *ProviderError.
func (s *SummaryService) Summarize(ctx context.Context, contentType string, data []byte) (*models.SummaryResponse, error) {
	if !IsPDF(contentType) {
		return nil, NewInvalidInputError("summarize", nil, UnsupportedDocumentMessage)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}
	text = TruncateText(text, MaxDocumentChars)

	tokens, err := s.provider.Stream(ctx, CompletionRequest{
		Model: s.model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: summaryInstruction},
			{Role: "user", Content: text},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	summary, err := Collect(ctx, tokens)
	if err != nil {
		return nil, err
	}

	return &models.SummaryResponse{
		Summary:  summary,
		Keywords: s.extractKeywords(text),
	}, nil
}

func (s *SummaryService) extractKeywords(text string) []string {
	if s.keywords == nil {
		return []string{}
	}
	words, err := s.keywords.Top(text, DefaultKeywordLimit)
	if err != nil {
		s.logger.Printf("Keyword extraction failed: %v", err)
		return []string{}
	}
	if words == nil {
		return []string{}
	}
	return words
}

// IsPDF reports whether a declared media type is application/pdf.
// Parameters are ignored.
func IsPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/pdf"
}

// TruncateText cuts text to at most limit characters, appending
// TruncationMarker when anything was removed.
func TruncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + TruncationMarker
}
