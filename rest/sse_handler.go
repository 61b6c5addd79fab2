package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"content-indexer/domain"
	"content-indexer/logger"

	"github.com/labstack/echo/v4"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// StreamChanges pushes a snapshot followed by every index change over SSE.
// The subscription is taken before the snapshot is read so no change
// between the two is lost.
func (h *Handler) StreamChanges(c echo.Context) error {
	w := c.Response().Writer
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errStreamingUnsupported
	}

	sub := h.hub.Subscribe()
	if sub == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server is shutting down")
	}
	defer h.hub.Unsubscribe(sub)

	ctx := c.Request().Context()
	log := logger.GlobalContext.WithContext(ctx).With(slog.String("subscriber_id", sub.ID))

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	if err := writeEvent(c.Response(), h.admin.Snapshot(ctx)); err != nil {
		log.Info("client disconnected before snapshot", "error", err)
		return nil
	}
	flusher.Flush()
	log.Info("change stream opened")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("change stream closed by client")
			return nil

		case ev, ok := <-sub.Events:
			if !ok {
				return nil
			}
			if err := writeEvent(c.Response(), ev); err != nil {
				log.Info("client disconnected", "error", err)
				return nil
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := c.Response().Write([]byte(": heartbeat\n\n")); err != nil {
				log.Info("client disconnected during heartbeat", "error", err)
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev domain.ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, data)
	return err
}
