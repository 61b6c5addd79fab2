// Package consumer feeds webhook payloads relayed through Redis Streams into
// the same ingest path as the HTTP webhook endpoint.
package consumer

import (
	"os"
	"strconv"
	"time"
)

// Config holds consumer configuration.
type Config struct {
	RedisURL     string
	GroupName    string
	ConsumerName string
	// StreamKey is where the CMS relay XADDs webhook bodies.
	StreamKey    string
	BatchSize    int64
	BlockTimeout time.Duration
	// MaxRetryBackoff caps the delay between failed reads.
	MaxRetryBackoff time.Duration
	Enabled         bool
}

// DefaultConfig returns the consumer settings used when no env overrides
// are present. The consumer is off unless explicitly enabled.
func DefaultConfig() Config {
	return Config{
		RedisURL:        "redis://localhost:6379",
		GroupName:       "content-indexer-group",
		ConsumerName:    defaultConsumerName(),
		StreamKey:       "cms:events:webhooks",
		BatchSize:       10,
		BlockTimeout:    5 * time.Second,
		MaxRetryBackoff: 30 * time.Second,
	}
}

// defaultConsumerName keeps replicas distinct inside one group.
func defaultConsumerName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return "content-indexer-" + host
	}
	return "content-indexer-1"
}

// ConfigFromEnv overlays CONSUMER_* and REDIS_STREAMS_URL on DefaultConfig.
// Unparseable or non-positive numbers keep their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	stringVars := map[string]*string{
		"REDIS_STREAMS_URL":   &cfg.RedisURL,
		"CONSUMER_GROUP":      &cfg.GroupName,
		"CONSUMER_NAME":       &cfg.ConsumerName,
		"CONSUMER_STREAM_KEY": &cfg.StreamKey,
	}
	for key, dst := range stringVars {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if n, err := strconv.ParseInt(os.Getenv("CONSUMER_BATCH_SIZE"), 10, 64); err == nil && n > 0 {
		cfg.BatchSize = n
	}
	if d, err := time.ParseDuration(os.Getenv("CONSUMER_BLOCK_TIMEOUT")); err == nil && d > 0 {
		cfg.BlockTimeout = d
	}
	switch os.Getenv("CONSUMER_ENABLED") {
	case "true", "1":
		cfg.Enabled = true
	case "false", "0":
		cfg.Enabled = false
	}

	return cfg
}
