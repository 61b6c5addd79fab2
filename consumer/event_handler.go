package consumer

import (
	"context"
	"errors"
	"log/slog"

	"content-indexer/domain"
	"content-indexer/logger"
	"content-indexer/usecase"

	"github.com/cenkalti/backoff/v5"
)

// EventTypeWebhookReceived carries a CMS webhook body in its payload field.
const EventTypeWebhookReceived = "ContentWebhookReceived"

// WebhookEventHandler applies relayed webhooks to the index.
type WebhookEventHandler struct {
	webhooks *usecase.HandleWebhookUsecase
	logger   *slog.Logger
}

func NewWebhookEventHandler(webhooks *usecase.HandleWebhookUsecase, logger *slog.Logger) *WebhookEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookEventHandler{webhooks: webhooks, logger: logger}
}

// HandleEvent implements EventHandler. Payloads the normalizer rejects are
// reported as permanent so they are not redelivered forever.
func (h *WebhookEventHandler) HandleEvent(ctx context.Context, event Event) error {
	if event.EventType != EventTypeWebhookReceived {
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}

	ctx = logger.WithOperation(ctx, "stream_webhook")
	res, err := h.webhooks.Execute(ctx, event.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) || errors.Is(err, domain.ErrUnknownPayloadShape) {
			return backoff.Permanent(err)
		}
		return err
	}

	ctx = logger.WithEvent(ctx, res.Event)
	ctx = logger.WithEntryUID(ctx, res.UID)
	logger.GlobalContext.WithContext(ctx).Info("stream webhook applied",
		slog.String("event_id", event.EventID),
		slog.String("action", string(res.Action)),
		slog.Int("total_entries", res.Stats.TotalEntries))
	return nil
}
