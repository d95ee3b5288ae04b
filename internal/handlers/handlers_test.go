package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"chat-relay/internal/auth"
	"chat-relay/internal/broadcast"
	"chat-relay/internal/db"
	"chat-relay/internal/models"
	"chat-relay/internal/repositories"
	"chat-relay/internal/services"
	"chat-relay/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func defaultModelConfig() models.ModelConfig {
	return models.ModelConfig{Temperature: 0.7, MaxTokens: 1000, Model: "gpt-3.5-turbo"}
}

// fakeProvider replays deltas and records completion requests
type fakeProvider struct {
	deltas    []string
	streamErr error
	openErr   error
	healthErr error

	mu       sync.Mutex
	requests []services.CompletionRequest
}

func (p *fakeProvider) Stream(ctx context.Context, req services.CompletionRequest) (<-chan services.TokenEvent, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if p.openErr != nil {
		return nil, p.openErr
	}

	ch := make(chan services.TokenEvent)
	go func() {
		defer close(ch)
		for _, d := range p.deltas {
			select {
			case ch <- services.TokenEvent{Delta: d}:
			case <-ctx.Done():
				return
			}
		}
		if p.streamErr != nil {
			select {
			case ch <- services.TokenEvent{Err: p.streamErr}:
			case <-ctx.Done():
			}
		}
	}()
	return ch, nil
}

func (p *fakeProvider) HealthCheck(ctx context.Context) error {
	return p.healthErr
}

func (p *fakeProvider) lastRequest() services.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[len(p.requests)-1]
}

type fakeExtractor struct {
	text string
	err  error
}

func (e fakeExtractor) ExtractText(data []byte) (string, error) {
	return e.text, e.err
}

// memArchive is an in-memory ConversationArchive
type memArchive struct {
	mu      sync.Mutex
	records []models.ConversationRecord
	err     error
}

func (a *memArchive) Append(ctx context.Context, records ...models.ConversationRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, records...)
	return nil
}

func (a *memArchive) Recent(ctx context.Context, limit int) ([]models.ConversationRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	out := []models.ConversationRecord{}
	for i := len(a.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.records[i])
	}
	return out, nil
}

func (a *memArchive) Count(ctx context.Context) (int64, error) { return int64(len(a.records)), nil }
func (a *memArchive) Clear(ctx context.Context) error          { a.records = nil; return nil }
func (a *memArchive) Ping(ctx context.Context) error           { return nil }
func (a *memArchive) Close() error                             { return nil }

type countingBroadcaster struct {
	mu    sync.Mutex
	calls []any
}

func (b *countingBroadcaster) Broadcast(v any) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, v)
	return 0
}

func (b *countingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func newChatHandler(provider *fakeProvider) (*ChatHandler, *stats.Ledger) {
	ledger := stats.NewLedger(defaultModelConfig())
	chat := services.NewChatService(services.ChatServiceConfig{
		Provider:    provider,
		Ledger:      ledger,
		Broadcaster: broadcast.NewRegistry(discardLogger()),
		Logger:      discardLogger(),
	})
	return NewChatHandler(chat, discardLogger()), ledger
}

func readEvents(t *testing.T, body io.Reader) []models.StreamEvent {
	t.Helper()

	var events []models.StreamEvent
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "data: "), "unexpected line %q", line)

		var ev models.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestChatHandler_Streams(t *testing.T) {
	provider := &fakeProvider{deltas: []string{"Hel", "lo"}}
	h, ledger := newChatHandler(provider)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi","max_tokens":50.0}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	events := readEvents(t, rec.Body)
	assert.Equal(t, []models.StreamEvent{
		{Content: "Hel"},
		{Content: "lo"},
		{Content: "", Done: true},
	}, events)

	assert.Equal(t, 50, provider.lastRequest().MaxTokens)
	assert.Equal(t, 0.7, provider.lastRequest().Temperature)

	snap := ledger.Snapshot()
	assert.Equal(t, 1, snap.TotalChats)
	assert.Equal(t, 2, snap.TotalFragments)
	require.Len(t, snap.RecentConversations, 1)
	assert.Equal(t, "Hello", snap.RecentConversations[0].AssistantResponse)
}

func TestChatHandler_WireFormat(t *testing.T) {
	h, _ := newChatHandler(&fakeProvider{deltas: []string{"A"}})

	rec := httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`)))

	assert.Equal(t,
		"data: {\"content\":\"A\",\"done\":false}\n\n"+
			"data: {\"content\":\"\",\"done\":true}\n\n",
		rec.Body.String())
}

func TestChatHandler_MidStreamFailure(t *testing.T) {
	provider := &fakeProvider{deltas: []string{"partial"}, streamErr: errors.New("upstream reset")}
	h, ledger := newChatHandler(provider)

	rec := httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	events := readEvents(t, rec.Body)
	require.Len(t, events, 2)
	assert.Equal(t, "partial", events[0].Content)

	last := events[1]
	assert.True(t, last.Done)
	assert.Empty(t, last.Content)
	assert.Contains(t, last.Error, "upstream reset")

	assert.Zero(t, ledger.Snapshot().TotalChats)
}

func TestChatHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		provider   *fakeProvider
		wantStatus int
		wantDetail string
	}{
		{
			name:       "malformed body",
			body:       `{"message":`,
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid request body",
		},
		{
			name:       "fractional max_tokens",
			body:       `{"message":"hi","max_tokens":12.5}`,
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "max_tokens must be an integer",
		},
		{
			name:       "empty message",
			body:       `{"message":"   "}`,
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "message must not be empty",
		},
		{
			name:       "provider unavailable",
			body:       `{"message":"hi"}`,
			provider:   &fakeProvider{openErr: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ledger := newChatHandler(tt.provider)

			rec := httptest.NewRecorder()
			h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body.Detail, tt.wantDetail)
			assert.Zero(t, ledger.Snapshot().TotalChats)
		})
	}
}

func uploadRequest(t *testing.T, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="doc.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newDocumentHandler(provider *fakeProvider, extractor services.TextExtractor) *DocumentHandler {
	summary := services.NewSummaryService(services.SummaryServiceConfig{
		Provider:  provider,
		Extractor: extractor,
		Keywords:  services.NewKeywordExtractor(),
		Logger:    discardLogger(),
	})
	return NewDocumentHandler(summary, discardLogger())
}

func TestDocumentHandler_UploadPDF(t *testing.T) {
	provider := &fakeProvider{deltas: []string{"A short ", "summary."}}
	h := newDocumentHandler(provider, fakeExtractor{text: "Quarterly revenue grew while revenue forecasts improved."})

	rec := httptest.NewRecorder()
	h.UploadPDF(rec, uploadRequest(t, "application/pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "A short summary.", resp.Summary)
	assert.Contains(t, resp.Keywords, "revenue")

	req := provider.lastRequest()
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "Quarterly revenue grew while revenue forecasts improved.", req.Messages[1].Content)
}

func TestDocumentHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		extractor  services.TextExtractor
		provider   *fakeProvider
		wantStatus int
		wantDetail string
	}{
		{
			name:       "unsupported type",
			request:    func(t *testing.T) *http.Request { return uploadRequest(t, "text/plain", []byte("hello")) },
			extractor:  fakeExtractor{text: "x"},
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Only PDF files are supported.",
		},
		{
			name: "missing file",
			request: func(t *testing.T) *http.Request {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				require.NoError(t, mw.WriteField("other", "value"))
				require.NoError(t, mw.Close())
				req := httptest.NewRequest(http.MethodPost, "/upload-pdf", &buf)
				req.Header.Set("Content-Type", mw.FormDataContentType())
				return req
			},
			extractor:  fakeExtractor{text: "x"},
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "No file uploaded",
		},
		{
			name:       "not multipart",
			request:    func(t *testing.T) *http.Request { return httptest.NewRequest(http.MethodPost, "/upload-pdf", strings.NewReader("x")) },
			extractor:  fakeExtractor{text: "x"},
			provider:   &fakeProvider{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Failed to parse form data",
		},
		{
			name:       "extraction failure",
			request:    func(t *testing.T) *http.Request { return uploadRequest(t, "application/pdf", []byte("garbage")) },
			extractor:  fakeExtractor{err: services.NewExtractionError("extract_text", errors.New("bad xref"), "")},
			provider:   &fakeProvider{},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Failed to process PDF.",
		},
		{
			name:       "provider failure",
			request:    func(t *testing.T) *http.Request { return uploadRequest(t, "application/pdf", []byte("%PDF")) },
			extractor:  fakeExtractor{text: "text"},
			provider:   &fakeProvider{openErr: errors.New("down")},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Failed to process PDF.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newDocumentHandler(tt.provider, tt.extractor)

			rec := httptest.NewRecorder()
			h.UploadPDF(rec, tt.request(t))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestStatsHandler_StatsAndConfig(t *testing.T) {
	ledger := stats.NewLedger(defaultModelConfig())
	ledger.Commit(models.ConversationRecord{UserMessage: "q", AssistantResponse: "a", FragmentCount: 3, ResponseTime: 1})
	h := NewStatsHandler(ledger, &countingBroadcaster{}, nil, discardLogger())

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.StatsSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, 1, snap.TotalChats)
	assert.Equal(t, 3, snap.TotalFragments)
	assert.Equal(t, 1.0, snap.AverageResponseTime)

	rec = httptest.NewRecorder()
	h.UpdateConfig(rec, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"temperature":0.2}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.ConfigResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Configuration updated", updated.Message)
	assert.Equal(t, models.ModelConfig{Temperature: 0.2, MaxTokens: 1000, Model: "gpt-3.5-turbo"}, updated.Config)

	rec = httptest.NewRecorder()
	h.GetConfig(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	var cfg models.ModelConfig
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cfg))
	assert.Equal(t, updated.Config, cfg)

	rec = httptest.NewRecorder()
	h.UpdateConfig(rec, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsHandler_ResetStats(t *testing.T) {
	ledger := stats.NewLedger(defaultModelConfig())
	ledger.Commit(models.ConversationRecord{UserMessage: "q", AssistantResponse: "a", FragmentCount: 1})
	broadcaster := &countingBroadcaster{}
	h := NewStatsHandler(ledger, broadcaster, nil, discardLogger())

	rec := httptest.NewRecorder()
	h.ResetStats(rec, httptest.NewRequest(http.MethodPost, "/reset-stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Stats reset successfully"}`, rec.Body.String())
	assert.Zero(t, ledger.Snapshot().TotalChats)
	require.Equal(t, 1, broadcaster.count())

	snap := broadcaster.calls[0].(models.StatsSnapshot)
	assert.Zero(t, snap.TotalChats)
	assert.Empty(t, snap.RecentConversations)
	assert.Equal(t, defaultModelConfig(), snap.ModelConfig)
}

func TestStatsHandler_History(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := NewStatsHandler(stats.NewLedger(defaultModelConfig()), &countingBroadcaster{}, nil, discardLogger())
		rec := httptest.NewRecorder()
		h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	archive := &memArchive{}
	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, archive.Append(context.Background(), models.ConversationRecord{UserMessage: msg}))
	}
	h := NewStatsHandler(stats.NewLedger(defaultModelConfig()), &countingBroadcaster{}, archive, discardLogger())

	t.Run("newest first with limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/history?limit=2", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.HistoryResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "third", resp.Conversations[0].UserMessage)
		assert.Equal(t, "second", resp.Conversations[1].UserMessage)
	})

	t.Run("bad limit", func(t *testing.T) {
		for _, raw := range []string{"0", "-1", "abc"} {
			rec := httptest.NewRecorder()
			h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/history?limit="+raw, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
		}
	})

	t.Run("archive failure", func(t *testing.T) {
		failing := NewStatsHandler(stats.NewLedger(defaultModelConfig()), &countingBroadcaster{}, &memArchive{err: errors.New("redis down")}, discardLogger())
		rec := httptest.NewRecorder()
		failing.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	h := NewHealthHandler(&fakeProvider{}, discardLogger())
	h.now = func() time.Time { return fixed }

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","timestamp":"2026-03-01T12:00:00Z"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.LLMHealth(rec, httptest.NewRequest(http.MethodGet, "/llm/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := NewHealthHandler(&fakeProvider{healthErr: errors.New("no route")}, discardLogger())
	rec = httptest.NewRecorder()
	down.LLMHealth(rec, httptest.NewRequest(http.MethodGet, "/llm/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no route")

	missing := NewHealthHandler(nil, discardLogger())
	rec = httptest.NewRecorder()
	missing.LLMHealth(rec, httptest.NewRequest(http.MethodGet, "/llm/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func newAuthHandler(t *testing.T) (*AuthHandler, *auth.Service) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	users, err := repositories.NewSQLiteUserRepository(ctx, conn)
	require.NoError(t, err)
	t.Cleanup(func() { users.Close() })

	tokens, err := auth.NewTokenManager("handler-secret", time.Hour)
	require.NoError(t, err)
	svc := auth.NewService(auth.ServiceConfig{Users: users, Tokens: tokens, BcryptCost: bcrypt.MinCost, Logger: discardLogger()})
	return NewAuthHandler(svc, discardLogger()), svc
}

func TestAuthHandler_RegisterTokenMe(t *testing.T) {
	h, svc := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"Ann@Example.com","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"ann@example.com","password":"other"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Email already registered"}`, rec.Body.String())

	form := url.Values{"username": {"ann@example.com"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.Token(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var token models.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&token))
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	me := auth.NewMiddleware(svc, discardLogger()).RequireUser(http.HandlerFunc(h.Me))
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	me.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotZero(t, user.ID)
}

func TestAuthHandler_Errors(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"","password":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	form := url.Values{"username": {"nobody@example.com"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.Token(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fixedCount int

func (c fixedCount) Count() int { return int(c) }

func TestHomeHandler(t *testing.T) {
	h := NewHomeHandler(fixedCount(2), true, log.New(io.Discard, "", 0))

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var index models.IndexResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&index))
	assert.Equal(t, "chat-relay", index.Service)
	assert.Equal(t, "/swagger/index.html", index.Docs)
	assert.Equal(t, "/health", index.Health)
	assert.Equal(t, "/ws", index.Observe)
	assert.Equal(t, 2, index.Observers)
	assert.True(t, index.AuthRequired)

	rec = httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
