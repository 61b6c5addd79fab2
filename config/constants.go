package config

import (
	"os"
	"time"
)

// Service constants with env var override support.
var (
	ServiceVersion          = stringEnv("SERVICE_VERSION", "0.0.0")
	OTelShutdownTimeout     = durationEnv("OTEL_SHUTDOWN_TIMEOUT", 5*time.Second)
	RateLimitCleanupPeriod  = durationEnv("RATE_LIMIT_CLEANUP_INTERVAL", 3*time.Minute)
	RateLimitIdleExpiry     = durationEnv("RATE_LIMIT_IDLE_EXPIRY", 5*time.Minute)
	ConsumerMaxRetryBackoff = durationEnv("CONSUMER_MAX_RETRY_BACKOFF", 30*time.Second)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
