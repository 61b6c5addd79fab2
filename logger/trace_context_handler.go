package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// TraceContextHandler stamps records logged with a context: trace_id and
// span_id when a span is recording, and request_id when the HTTP layer put
// one on the context and the record does not already carry it.
type TraceContextHandler struct {
	inner slog.Handler
	// hasRequestID is set once request_id was bound through WithAttrs.
	hasRequestID bool
}

func NewTraceContextHandler(inner slog.Handler) *TraceContextHandler {
	return &TraceContextHandler{inner: inner}
}

func (h *TraceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *TraceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx == nil {
		return h.inner.Handle(ctx, r)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if id := RequestID(ctx); id != "" && !h.hasRequestID && !recordHas(r, string(RequestIDKey)) {
		r.AddAttrs(slog.String(string(RequestIDKey), id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *TraceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := h.hasRequestID
	for _, a := range attrs {
		if a.Key == string(RequestIDKey) {
			bound = true
		}
	}
	return &TraceContextHandler{inner: h.inner.WithAttrs(attrs), hasRequestID: bound}
}

func (h *TraceContextHandler) WithGroup(name string) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithGroup(name), hasRequestID: h.hasRequestID}
}

func recordHas(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
