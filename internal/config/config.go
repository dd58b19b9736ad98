package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// OpenAI completion provider
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Auth: when empty the API is open (development mode).
	APIKey string

	// CORS: origin allowed to call the API, e.g. a browser extension.
	// Empty means any origin.
	ExtOrigin string

	// Pipeline
	MaxCharsPerChunk  int
	PipelineTimeout   time.Duration
	CompletionTimeout time.Duration
	MaxConcurrent     int
	Temperature       float64

	// Request limits
	MaxBodyBytes   int64
	MaxUploadBytes int64

	// Cache
	CacheTTL  time.Duration
	RedisAddr string

	// Telemetry
	TelemetryDB string
	StatsWindow time.Duration

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		APIKey:    os.Getenv("BREVITY_API_KEY"),
		ExtOrigin: os.Getenv("EXT_ORIGIN"),

		MaxCharsPerChunk:  envInt("MAX_CHARS_PER_CHUNK", 3500),
		PipelineTimeout:   envDuration("PIPELINE_TIMEOUT", 60*time.Second),
		CompletionTimeout: envDuration("COMPLETION_TIMEOUT", 45*time.Second),
		MaxConcurrent:     envInt("MAX_CONCURRENT_SUMMARIES", 4),
		Temperature:       envFloat("TEMPERATURE", 0.2),

		MaxBodyBytes:   envInt64("MAX_BODY_BYTES", 1<<20),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20),

		CacheTTL:  envDuration("CACHE_TTL", 15*time.Minute),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		TelemetryDB: envOr("TELEMETRY_DB", "data/telemetry.db"),
		StatsWindow: envDuration("STATS_WINDOW", 24*time.Hour),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 5),
	}

	if cfg.MaxCharsPerChunk <= 0 {
		cfg.MaxCharsPerChunk = 3500
	}
	if cfg.PipelineTimeout <= 0 {
		cfg.PipelineTimeout = 60 * time.Second
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = 45 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 24 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
