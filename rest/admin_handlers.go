package rest

import (
	"log/slog"
	"net/http"

	"content-indexer/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Stats:   h.admin.Stats(c.Request().Context()),
	})
}

func (h *Handler) ClearIndex(c echo.Context) error {
	ctx := c.Request().Context()
	stats, removed := h.admin.Clear(ctx)
	logger.GlobalContext.WithContext(ctx).Info("index cleared", slog.Int("removed", removed))

	return c.JSON(http.StatusOK, ClearResponse{
		Success: true,
		Message: "Index cleared successfully",
		Removed: removed,
		Stats:   stats,
	})
}

func (h *Handler) ClearIndexInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Message: "Use POST to clear the index",
		Stats:   h.admin.Stats(c.Request().Context()),
	})
}

func (h *Handler) InitIndex(c echo.Context) error {
	ctx := c.Request().Context()
	stats := h.seed.SeedCatalog(ctx)
	logger.GlobalContext.WithContext(ctx).Info("demo catalog loaded", slog.Int("total_entries", stats.TotalEntries))

	return c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Message: "Index initialized with demo data",
		Stats:   stats,
	})
}

func (h *Handler) InitIndexInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Message: "Use POST to load the demo catalog",
		Stats:   h.admin.Stats(c.Request().Context()),
	})
}

func (h *Handler) SeedTestData(c echo.Context) error {
	res, err := h.seed.SeedTestData(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TestDataResponse{
		Success: true,
		Message: "Sample webhooks replayed",
		Entries: res.Titles,
		Stats:   res.Stats,
	})
}

func (h *Handler) SeedTestDataInfo(c echo.Context) error {
	stats := h.admin.Stats(c.Request().Context())
	return c.JSON(http.StatusOK, InfoResponse{
		Message:     "Test data endpoint",
		Description: "POST to replay three sample entry.published webhooks",
		Stats:       &stats,
	})
}

func (h *Handler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, CatalogResponse{
		Success: true,
		Catalog: h.seed.Catalog(),
	})
}
