package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"content-indexer/logger"
	"content-indexer/metrics"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipLimiter holds a rate limiter and the last time it was seen.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides IP-based rate limiting for the ingest endpoints.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

// NewRateLimiter creates a per-IP rate limiter. Stale limiters are evicted
// every cleanup period until ctx is cancelled.
func NewRateLimiter(ctx context.Context, r rate.Limit, burst int, cleanup, idle time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     r,
		burst:    burst,
		idle:     idle,
	}
	go rl.cleanupLoop(ctx, cleanup)
	return rl
}

// getLimiter returns the rate limiter for the given IP, creating one if needed.
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, exists := rl.limiters[ip]; exists {
		l.lastSeen = time.Now()
		return l.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = &ipLimiter{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for ip, l := range rl.limiters {
		if now.Sub(l.lastSeen) > rl.idle {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// Middleware returns an Echo middleware that enforces the rate limit.
// Rejections carry Retry-After rounded up to whole seconds.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			res := rl.getLimiter(ip).Reserve()
			if !res.OK() {
				return rl.reject(c, ip, time.Second)
			}
			if wait := res.Delay(); wait > 0 {
				res.Cancel()
				return rl.reject(c, ip, wait)
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) reject(c echo.Context, ip string, wait time.Duration) error {
	seconds := max(int(math.Ceil(wait.Seconds())), 1)
	c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	metrics.RecordRateLimited(c.Path())
	logger.GlobalContext.WithContext(c.Request().Context()).Warn("rate limit exceeded",
		slog.String("remote_ip", ip),
		slog.String("path", c.Path()),
		slog.Int("retry_after_s", seconds))
	return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
}
