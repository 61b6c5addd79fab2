package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

// ServiceName is the instrumentation scope used for the OTel log bridge.
const ServiceName = "content-indexer"

var Logger *slog.Logger

func init() {
	// Usable before InitWithOTel runs, e.g. from package tests.
	Logger = slog.New(NewTraceContextHandler(slog.NewJSONHandler(io.Discard, nil)))
	GlobalContext = NewContextLogger(Logger)
}

// Init initializes the logger (stdout only)
func Init() {
	InitWithOTel(false)
}

// InitWithOTel initializes the logger with optional OTel export
func InitWithOTel(enableOTel bool) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var handler slog.Handler
	if enableOTel {
		handler = NewMultiHandler(level)
	} else {
		// trace_id/span_id still go to stdout when OTel export is off
		handler = NewTraceContextHandler(newStdoutHandler(os.Stdout, level))
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	GlobalContext = NewContextLogger(Logger)

	Logger.Info("Logger initialized", "otel_enabled", enableOTel, "level", level.String())
}

// newStdoutHandler writes JSON unless LOG_FORMAT=text, which is easier to
// read when running the indexer next to a local CMS.
func newStdoutHandler(w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler sends logs to multiple handlers
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a handler that writes to both stdout and OTel
func NewMultiHandler(level slog.Level) *MultiHandler {
	otelHandler := otelslog.NewHandler(
		ServiceName,
		otelslog.WithLoggerProvider(global.GetLoggerProvider()),
	)

	return &MultiHandler{
		handlers: []slog.Handler{
			NewTraceContextHandler(newStdoutHandler(os.Stdout, level)),
			&levelGate{inner: otelHandler, level: level},
		},
	}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			_ = handler.Handle(ctx, r)
		}
	}
	return nil
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}

// levelGate applies LOG_LEVEL to the OTel bridge, which has no level option.
type levelGate struct {
	inner slog.Handler
	level slog.Level
}

func (g *levelGate) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= g.level && g.inner.Enabled(ctx, level)
}

func (g *levelGate) Handle(ctx context.Context, r slog.Record) error {
	return g.inner.Handle(ctx, r)
}

func (g *levelGate) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelGate{inner: g.inner.WithAttrs(attrs), level: g.level}
}

func (g *levelGate) WithGroup(name string) slog.Handler {
	return &levelGate{inner: g.inner.WithGroup(name), level: g.level}
}
