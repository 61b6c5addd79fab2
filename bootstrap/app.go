package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"content-indexer/broadcaster"
	"content-indexer/config"
	"content-indexer/consumer"
	"content-indexer/domain"
	"content-indexer/driver"
	"content-indexer/gateway"
	"content-indexer/logger"
	appmiddleware "content-indexer/middleware"
	"content-indexer/rest"
	"content-indexer/usecase"
	appOtel "content-indexer/utils/otel"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Components are the wired application layers, shared by Run and tests.
type Components struct {
	Index    *gateway.ContentIndexGateway
	Hub      *broadcaster.Hub
	Webhooks *usecase.HandleWebhookUsecase
	Seed     *usecase.SeedDemoUsecase
	Handler  *rest.Handler
}

// NewComponents wires driver → gateway → use cases → handler.
func NewComponents(cfg *config.Config) (*Components, error) {
	index := gateway.NewContentIndexGateway(driver.NewMemoryIndexDriver())
	hub := broadcaster.NewHub(cfg.SSE.BufferSize)

	webhooks := usecase.NewHandleWebhookUsecase(index, domain.NewWebhookNormalizer(), hub)
	search, err := usecase.NewSearchEntriesUsecase(index, cfg.Search.CacheSize)
	if err != nil {
		return nil, err
	}
	seed := usecase.NewSeedDemoUsecase(webhooks)

	handler := rest.NewHandler(rest.Dependencies{
		Webhooks: webhooks,
		Search:   search,
		List:     usecase.NewListEntriesUsecase(index),
		Admin:    usecase.NewIndexAdminUsecase(index, hub),
		Seed:     seed,
		Hub:      hub,
	}, cfg)

	return &Components{
		Index:    index,
		Hub:      hub,
		Webhooks: webhooks,
		Seed:     seed,
		Handler:  handler,
	}, nil
}

// Run initializes all components and serves until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting content-indexer",
		"service", otelCfg.ServiceName,
		"version", config.ServiceVersion,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Config ──
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	c, err := NewComponents(cfg)
	if err != nil {
		logger.Logger.Error("Failed to wire components", "err", err)
		return err
	}

	if cfg.Index.SeedDemoData {
		stats := c.Seed.SeedCatalog(ctx)
		logger.Logger.Info("demo catalog loaded", "total_entries", stats.TotalEntries)
	}

	// ── Redis Streams consumer ──
	consumerCfg := consumer.ConfigFromEnv()
	consumerCfg.MaxRetryBackoff = config.ConsumerMaxRetryBackoff
	redisConsumer, err := consumer.NewConsumer(consumerCfg,
		consumer.NewWebhookEventHandler(c.Webhooks, logger.Logger), logger.Logger)
	if err != nil {
		logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		return err
	}
	if err := redisConsumer.Start(ctx); err != nil {
		// Webhooks over HTTP keep working without the stream.
		logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
	}

	// ── HTTP ──
	var limiter *appmiddleware.RateLimiter
	if cfg.Webhook.RateLimit > 0 {
		limiter = appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.Webhook.RateLimit), cfg.Webhook.RateBurst,
			config.RateLimitCleanupPeriod, config.RateLimitIdleExpiry)
	}
	e := rest.NewServer(c.Handler, rest.ServerOptions{
		Logger:           logger.Logger,
		OTelEnabled:      otelCfg.Enabled,
		OTelServiceName:  otelCfg.ServiceName,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		MaxBodySize:      cfg.Webhook.MaxBodySize,
		WebhookLimiter:   limiter,
	})
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h2c.NewHandler(e, &http2.Server{}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Logger.Info("shutting down")

		// Open change streams never finish on their own.
		c.Hub.Close()
		redisConsumer.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		otelCtx, cancel := context.WithTimeout(context.Background(), config.OTelShutdownTimeout)
		defer cancel()
		if err := otelShutdown(otelCtx); err != nil {
			fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Error("server exited with error", "err", err)
		return err
	}
	logger.Logger.Info("server exited properly")
	return nil
}

// Healthcheck probes the local /health endpoint, for container health checks.
func Healthcheck(addr string) error {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
