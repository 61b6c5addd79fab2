package rest

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"content-indexer/domain"
	"content-indexer/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read webhook body: %w", err)
	}

	res, err := h.webhooks.Execute(ctx, raw)
	if err != nil {
		return err
	}

	ctx = logger.WithPayloadShape(ctx, string(res.Shape))
	ctx = logger.WithEvent(ctx, res.Event)
	ctx = logger.WithEntryUID(ctx, res.UID)
	logger.GlobalContext.WithContext(ctx).Info("webhook applied",
		slog.String("action", string(res.Action)),
		slog.Bool("removed", res.Removed),
		slog.Int("total_entries", res.Stats.TotalEntries))

	return c.JSON(http.StatusOK, newWebhookResponse(res))
}

func (h *Handler) WebhookInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Message: "Webhook endpoint is ready",
		Status:  "ready",
	})
}

// SimulateWebhook builds a CMS webhook from the request and applies it.
func (h *Handler) SimulateWebhook(c echo.Context) error {
	var req TestWebhookRequest
	// An empty body means "use the generated default entry".
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return err
		}
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sim, err := h.seed.SimulateWebhook(c.Request().Context(), strings.TrimSpace(req.Event), req.Data)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TestWebhookResponse{
		Success: true,
		Message: fmt.Sprintf("Simulated %s webhook", sim.Result.Event),
		Payload: sim.Payload,
		Result:  newWebhookResponse(sim.Result),
	})
}

func (h *Handler) SimulateWebhookInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Message:     "Webhook simulation endpoint",
		Description: "POST {event, data} to replay a CMS webhook; both fields are optional",
		Example: map[string]any{
			"event": domain.EventEntryPublished,
			"data": map[string]any{
				"entry": map[string]any{
					"uid":    "test-entry",
					"title":  "Test Entry",
					"locale": "en-us",
				},
				"content_type": map[string]any{"uid": "test_entry", "title": "Test Entry"},
			},
		},
	})
}
