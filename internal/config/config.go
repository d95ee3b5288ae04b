package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chat-relay/internal/models"

	"gopkg.in/yaml.v3"
)

// Config is the complete relay configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Chat   ChatConfig   `yaml:"chat"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	SwaggerURL      string        `yaml:"swagger_url"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"` // 0 disables rate limiting
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LLMConfig configures the OpenAI-compatible provider
type LLMConfig struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	SummaryModel string `yaml:"summary_model"`
}

// ChatConfig configures chat sessions
type ChatConfig struct {
	Pacing time.Duration      `yaml:"pacing"`
	Model  models.ModelConfig `yaml:"model"`
}

// AuthConfig configures user accounts and access tokens
type AuthConfig struct {
	SecretKey   string        `yaml:"secret_key"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	DBPath      string        `yaml:"db_path"`
	RequireAuth bool          `yaml:"require_auth"`
}

// RedisConfig configures the optional conversation archive
type RedisConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	Key           string        `yaml:"key"`
	MaxRecords    int           `yaml:"max_records"`
	QueueSize     int           `yaml:"queue_size"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			SwaggerURL:      "/swagger/doc.json",
			RateLimitRPS:    0,
			RateLimitBurst:  20,
			ShutdownTimeout: 15 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:      "https://api.openai.com/v1",
			SummaryModel: "gpt-3.5-turbo",
		},
		Chat: ChatConfig{
			Pacing: 20 * time.Millisecond,
			Model: models.ModelConfig{
				Temperature: 0.7,
				MaxTokens:   1000,
				Model:       "gpt-3.5-turbo",
			},
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
			DBPath:   "users.db",
		},
		Redis: RedisConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          6379,
			DB:            0,
			Key:           "chat-relay:conversations",
			MaxRecords:    1000,
			QueueSize:     256,
			BatchSize:     20,
			FlushInterval: 2 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (later wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first setting the relay cannot start with
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, errors.New("llm.api_key is required (or set OPENAI_API_KEY)"))
	}
	if c.Chat.Pacing < 0 {
		errs = append(errs, errors.New("chat.pacing must not be negative"))
	}
	if c.Chat.Model.Model == "" {
		errs = append(errs, errors.New("chat.model.model is required"))
	}
	if c.Chat.Model.MaxTokens <= 0 {
		errs = append(errs, errors.New("chat.model.max_tokens must be positive"))
	}
	if c.Server.RateLimitRPS < 0 {
		errs = append(errs, errors.New("server.rate_limit_rps must not be negative"))
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("server.rate_limit_burst must be positive when rate limiting is enabled"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Redis.Enabled && c.Redis.QueueSize <= 0 {
		errs = append(errs, errors.New("redis.queue_size must be positive"))
	}

	return errors.Join(errs...)
}

// applyEnv overrides file settings with environment variables
func applyEnv(cfg *Config) error {
	if addr := os.Getenv("RELAY_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("SUMMARY_MODEL"); model != "" {
		cfg.LLM.SummaryModel = model
	}
	if model := os.Getenv("DEFAULT_MODEL"); model != "" {
		cfg.Chat.Model.Model = model
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		cfg.Auth.SecretKey = secret
	}
	if path := os.Getenv("AUTH_DB_PATH"); path != "" {
		cfg.Auth.DBPath = path
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if msStr := os.Getenv("STREAM_PACING_MS"); msStr != "" {
		ms, err := strconv.Atoi(msStr)
		if err != nil {
			return fmt.Errorf("invalid STREAM_PACING_MS %q: %w", msStr, err)
		}
		cfg.Chat.Pacing = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("REQUIRE_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid REQUIRE_AUTH %q: %w", v, err)
		}
		cfg.Auth.RequireAuth = b
	}

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_ENABLED %q: %w", v, err)
		}
		cfg.Redis.Enabled = b
	}

	if portStr := os.Getenv("REDIS_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT %q: %w", portStr, err)
		}
		cfg.Redis.Port = port
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		dbNum, err := strconv.Atoi(dbStr)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.Redis.DB = dbNum
	}

	if rpsStr := os.Getenv("RATE_LIMIT_RPS"); rpsStr != "" {
		rps, err := strconv.ParseFloat(rpsStr, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", rpsStr, err)
		}
		cfg.Server.RateLimitRPS = rps
	}

	if burstStr := os.Getenv("RATE_LIMIT_BURST"); burstStr != "" {
		burst, err := strconv.Atoi(burstStr)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", burstStr, err)
		}
		cfg.Server.RateLimitBurst = burst
	}

	return nil
}
