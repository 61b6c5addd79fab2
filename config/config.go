package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP    HTTPConfig
	Index   IndexConfig
	Search  SearchConfig
	Webhook WebhookConfig
	SSE     SSEConfig
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	CORSAllowOrigins  []string
}

type IndexConfig struct {
	// SeedDemoData loads the demo catalog at startup.
	SeedDemoData bool
}

type SearchConfig struct {
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
	// CacheSize is the number of cached result lists; 0 disables the cache.
	CacheSize int
}

type WebhookConfig struct {
	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit   float64
	RateBurst   int
	MaxBodySize string
}

type SSEConfig struct {
	HeartbeatInterval time.Duration
	BufferSize        int
}

// LoadDotEnv reads .env when present. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load builds the configuration from the environment. Malformed values are
// reported instead of silently replaced by defaults.
func Load() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:              getEnvOrDefault("HTTP_ADDR", ":3001"),
			ReadHeaderTimeout: p.duration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   p.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSAllowOrigins:  splitList(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*")),
		},
		Index: IndexConfig{
			SeedDemoData: p.boolean("SEED_DEMO_DATA", true),
		},
		Search: SearchConfig{
			DefaultLimit:   p.integer("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:       p.integer("SEARCH_MAX_LIMIT", 100),
			MaxQueryLength: p.integer("SEARCH_MAX_QUERY_LENGTH", 1000),
			CacheSize:      p.integer("SEARCH_CACHE_SIZE", 256),
		},
		Webhook: WebhookConfig{
			RateLimit:   p.float("WEBHOOK_RATE_LIMIT", 20),
			RateBurst:   p.integer("WEBHOOK_RATE_BURST", 40),
			MaxBodySize: getEnvOrDefault("WEBHOOK_MAX_BODY_SIZE", "1M"),
		},
		SSE: SSEConfig{
			HeartbeatInterval: p.duration("SSE_HEARTBEAT_INTERVAL", 10*time.Second),
			BufferSize:        p.integer("SSE_BUFFER_SIZE", 32),
		},
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Configuration loaded",
		"http_addr", cfg.HTTP.Addr,
		"seed_demo_data", cfg.Index.SeedDemoData,
		"search_cache_size", cfg.Search.CacheSize,
		"webhook_rate_limit", cfg.Webhook.RateLimit,
	)

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.Search.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_DEFAULT_LIMIT must be positive, got %d", c.Search.DefaultLimit))
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		errs = append(errs, fmt.Errorf("SEARCH_MAX_LIMIT (%d) must be >= SEARCH_DEFAULT_LIMIT (%d)", c.Search.MaxLimit, c.Search.DefaultLimit))
	}
	if c.Search.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("SEARCH_CACHE_SIZE must not be negative, got %d", c.Search.CacheSize))
	}
	if c.Webhook.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("WEBHOOK_RATE_LIMIT must not be negative, got %v", c.Webhook.RateLimit))
	}
	if c.Webhook.RateLimit > 0 && c.Webhook.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("WEBHOOK_RATE_BURST must be positive when rate limiting, got %d", c.Webhook.RateBurst))
	}
	if c.SSE.HeartbeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("SSE_HEARTBEAT_INTERVAL must be positive, got %s", c.SSE.HeartbeatInterval))
	}
	if c.SSE.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("SSE_BUFFER_SIZE must be positive, got %d", c.SSE.BufferSize))
	}
	return errors.Join(errs...)
}

// parser collects every malformed variable so they are reported together.
type parser struct {
	errs []error
}

func (p *parser) integer(key string, def int) int {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid number %q", key, v))
		return def
	}
	return f
}

func (p *parser) boolean(key string, def bool) bool {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid boolean %q", key, v))
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func getEnvOrDefault(key, defaultValue string) string {
	// Docker secrets style KEY_FILE takes precedence
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
