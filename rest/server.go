package rest

import (
	"log/slog"
	"net/http"

	appmiddleware "content-indexer/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// ServerOptions configures the cross-cutting middleware around the handlers.
type ServerOptions struct {
	Logger           *slog.Logger
	OTelEnabled      bool
	OTelServiceName  string
	CORSAllowOrigins []string
	MaxBodySize      string
	// WebhookLimiter guards the ingest routes; nil disables rate limiting.
	WebhookLimiter *appmiddleware.RateLimiter
}

// NewServer creates the Echo instance with middleware and every route.
func NewServer(h *Handler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(opts.Logger)

	if opts.OTelEnabled {
		e.Use(otelecho.Middleware(opts.OTelServiceName, otelecho.WithSkipper(isProbe)))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(appmiddleware.RequestIDMiddleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:    isProbe,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			opts.Logger.InfoContext(ctx, "HTTP request completed",
				"request_id", c.Response().Header().Get(appmiddleware.RequestIDHeader),
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "Cache-Control", appmiddleware.RequestIDHeader},
		MaxAge:       86400,
	}))

	RegisterRoutes(e, h, opts)
	return e
}

// RegisterRoutes wires every HTTP endpoint.
func RegisterRoutes(e *echo.Echo, h *Handler, opts ServerOptions) {
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	ingest := []echo.MiddlewareFunc{}
	if opts.MaxBodySize != "" {
		ingest = append(ingest, middleware.BodyLimit(opts.MaxBodySize))
	}
	if opts.WebhookLimiter != nil {
		ingest = append(ingest, opts.WebhookLimiter.Middleware())
	}

	api.GET("/webhook", h.WebhookInfo)
	api.POST("/webhook", h.HandleWebhook, ingest...)
	api.GET("/test-webhook", h.SimulateWebhookInfo)
	api.POST("/test-webhook", h.SimulateWebhook, ingest...)

	api.GET("/search", h.Search)
	api.POST("/search", h.Search)
	api.GET("/entries", h.ListEntries)
	api.POST("/entries", h.ListEntriesAction)
	api.GET("/stats", h.Stats)
	api.GET("/catalog", h.Catalog)

	api.GET("/clear-index", h.ClearIndexInfo)
	api.POST("/clear-index", h.ClearIndex)
	api.GET("/init-index", h.InitIndexInfo)
	api.POST("/init-index", h.InitIndex)
	api.GET("/test-data", h.SeedTestDataInfo)
	api.POST("/test-data", h.SeedTestData)

	api.GET("/events", h.StreamChanges)
}

func isProbe(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/health" || path == "/metrics"
}
