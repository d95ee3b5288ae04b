package repositories

import (
	"context"
	"errors"
	"time"
)

// UserRepository defines the interface for user account storage
type UserRepository interface {
	// Create stores a new user; the email must not be registered yet
	Create(ctx context.Context, email, hashedPassword string) (*User, error)

	// FindByEmail looks a user up by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// User is a registered account
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	// ErrUserNotFound is returned when no user matches a lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registering a taken email
	ErrUserExists = errors.New("email already registered")
)

// UserRepositoryError represents errors from the user repository
type UserRepositoryError struct {
	Operation string
	Email     string
	Err       error
	Message   string
}

func (e *UserRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.Operation
	if e.Email != "" {
		prefix += " (user: " + e.Email + ")"
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *UserRepositoryError) Unwrap() error {
	return e.Err
}

// NewUserRepositoryError creates a new user repository error
func NewUserRepositoryError(operation, email string, err error, message string) *UserRepositoryError {
	return &UserRepositoryError{
		Operation: operation,
		Email:     email,
		Err:       err,
		Message:   message,
	}
}

// UserNotFoundError reports a lookup miss; it matches ErrUserNotFound
func UserNotFoundError(email string) error {
	return NewUserRepositoryError("find_user", email, ErrUserNotFound, "")
}

// UserAlreadyExistsError reports a duplicate email; it matches ErrUserExists
func UserAlreadyExistsError(email string) error {
	return NewUserRepositoryError("create_user", email, ErrUserExists, "")
}
