package db

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings of the conversation archive
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns the settings used for a local Redis
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:         "localhost",
		Port:         6379,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the host:port dial address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// withDefaults fills zero-valued settings from DefaultRedisConfig
func (c RedisConfig) withDefaults() RedisConfig {
	d := DefaultRedisConfig()
	c.Host = cmp.Or(c.Host, d.Host)
	c.Port = cmp.Or(c.Port, d.Port)
	c.PoolSize = cmp.Or(c.PoolSize, d.PoolSize)
	c.MinIdleConns = cmp.Or(c.MinIdleConns, d.MinIdleConns)
	c.MaxRetries = cmp.Or(c.MaxRetries, d.MaxRetries)
	c.DialTimeout = cmp.Or(c.DialTimeout, d.DialTimeout)
	c.ReadTimeout = cmp.Or(c.ReadTimeout, d.ReadTimeout)
	c.WriteTimeout = cmp.Or(c.WriteTimeout, d.WriteTimeout)
	return c
}

func (c RedisConfig) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid redis port %d", c.Port)
	}
	if c.DB < 0 {
		return fmt.Errorf("invalid redis db %d", c.DB)
	}
	return nil
}

// RedisClient is a pooled Redis connection with its effective settings
type RedisClient struct {
	client *redis.Client
	config RedisConfig
}

// NewRedisClient creates a client without dialing. Zero-valued settings
// fall back to DefaultRedisConfig.
func NewRedisClient(config RedisConfig) (*RedisClient, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})
	return &RedisClient{client: client, config: config}, nil
}

// OpenRedis creates a client and verifies the server answers PING.
// The client is closed again when it does not.
func OpenRedis(ctx context.Context, config RedisConfig) (*RedisClient, error) {
	client, err := NewRedisClient(config)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", client.config.Addr(), err)
	}
	return client, nil
}

// Ping checks if Redis is alive
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Config returns the effective configuration
func (r *RedisClient) Config() RedisConfig {
	return r.config
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for repositories
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}
