package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"chat-relay/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an existing email
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidRegistration is returned for an empty email or password
	ErrInvalidRegistration = errors.New("email and password are required")
)

// HashPassword hashes a password with bcrypt at the given cost
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ServiceConfig holds the collaborators of a Service
type ServiceConfig struct {
	Users  repositories.UserRepository
	Tokens *TokenManager
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
	Logger     *log.Logger
}

// Service registers users and exchanges credentials for access tokens
type Service struct {
	users  repositories.UserRepository
	tokens *TokenManager
	cost   int
	logger *log.Logger
}

// NewService creates a new auth service
func NewService(cfg ServiceConfig) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		users:  cfg.Users,
		tokens: cfg.Tokens,
		cost:   cost,
		logger: cfg.Logger,
	}
}

// Register creates an account
func (s *Service) Register(ctx context.Context, email, password string) (*repositories.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidRegistration
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, hash)
	if errors.Is(err, repositories.ErrUserExists) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Printf("Registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// Authenticate verifies credentials and returns a new access token
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.HashedPassword, password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Email)
}

// CurrentUser resolves the user a token was issued to
func (s *Service) CurrentUser(ctx context.Context, token string) (*repositories.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
