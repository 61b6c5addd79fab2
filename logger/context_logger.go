package logger

import (
	"context"
	"log/slog"
	"time"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"

	// Business context keys, named after the CMS attributes they carry
	EntryUIDKey     ContextKey = "cms.entry.uid"
	ContentTypeKey  ContextKey = "cms.content_type"
	EventKey        ContextKey = "cms.event"
	PayloadShapeKey ContextKey = "cms.payload_shape"
)

// GlobalContext is the global ContextLogger instance
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging
type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

var contextKeys = []ContextKey{
	RequestIDKey,
	OperationKey,
	EntryUIDKey,
	ContentTypeKey,
	EventKey,
	PayloadShapeKey,
}

// WithContext returns a logger carrying every known key present in ctx
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0, len(contextKeys)*2)
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			args = append(args, string(key), v)
		}
	}
	return cl.logger.With(args...)
}

// LogDuration logs an operation completion with duration in milliseconds
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, duration time.Duration) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	)
}

// LogError logs an operation failure with error details
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

func WithEntryUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, EntryUIDKey, uid)
}

func WithContentType(ctx context.Context, contentType string) context.Context {
	return context.WithValue(ctx, ContentTypeKey, contentType)
}

func WithEvent(ctx context.Context, event string) context.Context {
	return context.WithValue(ctx, EventKey, event)
}

func WithPayloadShape(ctx context.Context, shape string) context.Context {
	return context.WithValue(ctx, PayloadShapeKey, shape)
}

// RequestID returns the request id stored in ctx, if any
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}
