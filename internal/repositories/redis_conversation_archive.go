package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"chat-relay/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultArchiveKey is the Redis list holding archived records
	DefaultArchiveKey = "chat-relay:conversations"
	// DefaultArchiveMaxRecords caps the archive list length
	DefaultArchiveMaxRecords = 1000
)

// RedisConversationArchive implements ConversationArchive as a capped
// Redis list with the newest record at the head
type RedisConversationArchive struct {
	client     *redis.Client
	key        string
	maxRecords int64
}

// NewRedisConversationArchive creates a new Redis-backed archive
func NewRedisConversationArchive(client *redis.Client, key string, maxRecords int) *RedisConversationArchive {
	if key == "" {
		key = DefaultArchiveKey
	}
	if maxRecords <= 0 {
		maxRecords = DefaultArchiveMaxRecords
	}
	return &RedisConversationArchive{
		client:     client,
		key:        key,
		maxRecords: int64(maxRecords),
	}
}

// Append pushes records onto the head of the list and trims its tail
func (r *RedisConversationArchive) Append(ctx context.Context, records ...models.ConversationRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return NewArchiveError("append", err, "failed to marshal record")
		}
		values = append(values, data)
	}

	// Use transaction so readers never see the untrimmed list
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, values...)
	pipe.LTrim(ctx, r.key, 0, r.maxRecords-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return NewArchiveError("append", err, "")
	}
	return nil
}

// Recent returns up to limit records, newest first
func (r *RedisConversationArchive) Recent(ctx context.Context, limit int) ([]models.ConversationRecord, error) {
	if limit <= 0 {
		return []models.ConversationRecord{}, nil
	}

	raw, err := r.client.LRange(ctx, r.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, NewArchiveError("recent", err, "")
	}

	records := make([]models.ConversationRecord, 0, len(raw))
	for i, item := range raw {
		var rec models.ConversationRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, NewArchiveError("recent", err, fmt.Sprintf("corrupt record at index %d", i))
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the archive length
func (r *RedisConversationArchive) Count(ctx context.Context) (int64, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, NewArchiveError("count", err, "")
	}
	return n, nil
}

// Clear deletes the archive list
func (r *RedisConversationArchive) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return NewArchiveError("clear", err, "")
	}
	return nil
}

// Ping checks the Redis connection
func (r *RedisConversationArchive) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisConversationArchive) Close() error {
	return r.client.Close()
}
