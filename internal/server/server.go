package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "chat-relay/docs" // registers the swagger spec
	"chat-relay/internal/auth"
	"chat-relay/internal/broadcast"
	"chat-relay/internal/config"
	"chat-relay/internal/db"
	"chat-relay/internal/handlers"
	"chat-relay/internal/repositories"
	"chat-relay/internal/routes"
	"chat-relay/internal/services"
	"chat-relay/internal/stats"
	"chat-relay/internal/workers"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server owns the HTTP listener and every long-lived component behind it
type Server struct {
	cfg        config.Config
	logger     *log.Logger
	httpServer *http.Server

	ledger   *stats.Ledger
	registry *broadcast.Registry
	users    repositories.UserRepository
	archive  repositories.ConversationArchive
	pool     *workers.WorkerPool
	ws       *handlers.WSHandler
}

// NewServer builds the relay from cfg. The user store must open; the
// Redis archive is optional and is disabled when unreachable.
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)
	chatLogger := log.New(os.Stdout, "[CHAT] ", log.LstdFlags)
	wsLogger := log.New(os.Stdout, "[WS] ", log.LstdFlags)
	archiveLogger := log.New(os.Stdout, "[ARCHIVE] ", log.LstdFlags)
	authLogger := log.New(os.Stdout, "[AUTH] ", log.LstdFlags)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		ledger:   stats.NewLedger(cfg.Chat.Model),
		registry: broadcast.NewRegistry(wsLogger),
		pool:     workers.NewWorkerPool(),
	}

	llm, err := services.NewLLMService(services.LLMConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM service: %w", err)
	}
	logger.Printf("LLM provider: %s (model=%s)", cfg.LLM.BaseURL, cfg.Chat.Model.Model)

	authService, err := s.initializeAuth(ctx, authLogger)
	if err != nil {
		return nil, err
	}

	var archiveSink services.ArchiveSink
	if cfg.Redis.Enabled {
		if worker := s.initializeArchive(ctx, archiveLogger); worker != nil {
			archiveSink = worker
		}
	} else {
		logger.Println("Conversation archive disabled (redis.enabled=false)")
	}

	chatService := services.NewChatService(services.ChatServiceConfig{
		Provider:    llm,
		Ledger:      s.ledger,
		Broadcaster: s.registry,
		Archive:     archiveSink,
		Pacing:      cfg.Chat.Pacing,
		Logger:      chatLogger,
	})
	summaryService := services.NewSummaryService(services.SummaryServiceConfig{
		Provider:  llm,
		Extractor: services.NewPDFExtractor(),
		Keywords:  services.NewKeywordExtractor(),
		Model:     cfg.LLM.SummaryModel,
		Logger:    chatLogger,
	})

	s.ws = handlers.NewWSHandler(s.registry, s.ledger, wsLogger)
	h := &routes.Handlers{
		Chat:           handlers.NewChatHandler(chatService, chatLogger),
		Document:       handlers.NewDocumentHandler(summaryService, chatLogger),
		Stats:          handlers.NewStatsHandler(s.ledger, s.registry, s.archive, logger),
		Health:         handlers.NewHealthHandler(llm, logger),
		WS:             s.ws,
		Auth:           handlers.NewAuthHandler(authService, authLogger),
		Home:           handlers.NewHomeHandler(s.registry, cfg.Auth.RequireAuth, logger),
		AuthMiddleware: auth.NewMiddleware(authService, authLogger),
		RequireAuth:    cfg.Auth.RequireAuth,
	}

	router := mux.NewRouter()

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.SwaggerURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))
	routes.RegisterRoutes(router, h)

	var handler http.Handler = router
	if cfg.Server.RateLimitRPS > 0 {
		handler = newClientLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).middleware(handler)
		logger.Printf("Rate limiting: %.1f req/s per client (burst %d)", cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           corsMiddleware(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Auth.RequireAuth {
		logger.Println("Chat, document and stats endpoints require a bearer token")
	}
	return s, nil
}

// initializeAuth opens the user store and builds the auth service
func (s *Server) initializeAuth(ctx context.Context, logger *log.Logger) (*auth.Service, error) {
	conn, err := db.OpenSQLite(ctx, s.cfg.Auth.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	users, err := repositories.NewSQLiteUserRepository(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}
	s.users = users
	s.logger.Printf("User store: %s", s.cfg.Auth.DBPath)

	secret := s.cfg.Auth.SecretKey
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return nil, err
		}
		s.logger.Println("WARNING: auth.secret_key not set, using an ephemeral key; tokens will not survive a restart")
	}

	tokens, err := auth.NewTokenManager(secret, s.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	return auth.NewService(auth.ServiceConfig{
		Users:  users,
		Tokens: tokens,
		Logger: logger,
	}), nil
}

// initializeArchive connects to Redis and registers the archive worker.
// It returns nil when Redis is unreachable.
func (s *Server) initializeArchive(ctx context.Context, logger *log.Logger) *workers.ArchiveWorker {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisConfig := db.DefaultRedisConfig()
	redisConfig.Host = s.cfg.Redis.Host
	redisConfig.Port = s.cfg.Redis.Port
	redisConfig.Password = s.cfg.Redis.Password
	redisConfig.DB = s.cfg.Redis.DB
	s.logger.Printf("Connecting to Redis: %s (DB: %d)", redisConfig.Addr(), redisConfig.DB)

	redisClient, err := db.OpenRedis(ctx, redisConfig)
	if err != nil {
		s.logger.Printf("Redis connection failed: %v", err)
		s.logger.Println("   Conversation archive will be disabled")
		s.logger.Println("   Hint: Ensure Redis is running (docker run -d -p 6379:6379 redis:7-alpine)")
		return nil
	}
	s.logger.Println("Redis connected successfully")

	s.archive = repositories.NewRedisConversationArchive(redisClient.GetClient(), s.cfg.Redis.Key, s.cfg.Redis.MaxRecords)

	workerConfig := workers.DefaultWorkerConfig("archive-worker")
	workerConfig.FlushInterval = s.cfg.Redis.FlushInterval
	worker := workers.NewArchiveWorker(workers.ArchiveWorkerConfig{
		WorkerConfig: workerConfig,
		Archive:      s.archive,
		QueueSize:    s.cfg.Redis.QueueSize,
		BatchSize:    s.cfg.Redis.BatchSize,
		Logger:       workers.NewStdLogger(logger),
	})
	s.pool.AddWorker(worker)

	return worker
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Ledger returns the stats ledger shared by every session
func (s *Server) Ledger() *stats.Ledger {
	return s.ledger
}

// Registry returns the observer registry
func (s *Server) Registry() *broadcast.Registry {
	return s.registry
}

// Start launches the background workers
func (s *Server) Start(ctx context.Context) error {
	if s.pool.Count() == 0 {
		return nil
	}
	if err := s.pool.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	s.logger.Printf("Started %d background worker(s)", s.pool.Count())
	return nil
}

// ListenAndServe serves HTTP until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.logger.Printf("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, disconnects observers, drains the
// archive worker and closes the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Println("Shutting down...")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	s.ws.CloseAll()

	if err := s.pool.StopAll(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, st := range s.pool.Stats() {
		s.logger.Printf("%s: %d records archived, %d failed, %d dropped",
			st.WorkerName, st.Written, st.Failed, st.Dropped)
	}
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close archive: %w", err))
		}
	}
	if s.users != nil {
		if err := s.users.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close user store: %w", err))
		}
	}

	return errors.Join(errs...)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
