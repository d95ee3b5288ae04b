package repositories

import (
	"context"

	"chat-relay/internal/models"
)

// ConversationArchive persists completed conversation records beyond the
// in-memory stats window
type ConversationArchive interface {
	// Append stores records in commit order
	Append(ctx context.Context, records ...models.ConversationRecord) error

	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, limit int) ([]models.ConversationRecord, error)

	// Count returns the number of archived records
	Count(ctx context.Context) (int64, error)

	// Clear removes every archived record
	Clear(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// ArchiveError represents errors from the conversation archive
type ArchiveError struct {
	Operation string
	Err       error
	Message   string
}

func (e *ArchiveError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError creates a new archive error
func NewArchiveError(operation string, err error, message string) *ArchiveError {
	return &ArchiveError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}
