package usecase

import (
	"context"
	"fmt"

	"content-indexer/domain"
	"content-indexer/metrics"
	"content-indexer/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("content-indexer/usecase")

// WebhookResult reports what a webhook did to the index. Removed is true
// when a removal found the entry.
type WebhookResult struct {
	Shape   domain.PayloadShape
	Event   string
	Action  domain.MutationKind
	UID     string
	Removed bool
	Stats   domain.IndexStats
}

// HandleWebhookUsecase normalizes a webhook and applies it to the index.
type HandleWebhookUsecase struct {
	index      port.ContentIndex
	normalizer *domain.WebhookNormalizer
	notifier   port.ChangeNotifier
}

func NewHandleWebhookUsecase(index port.ContentIndex, normalizer *domain.WebhookNormalizer, notifier port.ChangeNotifier) *HandleWebhookUsecase {
	if normalizer == nil {
		normalizer = domain.NewWebhookNormalizer()
	}
	return &HandleWebhookUsecase{
		index:      index,
		normalizer: normalizer,
		notifier:   notifier,
	}
}

// Execute applies raw to the index. Nothing is applied when an error is
// returned. Ignored events succeed without touching the index or notifying.
func (u *HandleWebhookUsecase) Execute(ctx context.Context, raw []byte) (*WebhookResult, error) {
	ctx, span := tracer.Start(ctx, "HandleWebhook")
	defer span.End()

	m, err := u.normalizer.Normalize(raw)
	span.SetAttributes(attribute.String("cms.payload_shape", string(m.Shape)))
	if err != nil {
		metrics.RecordWebhook(string(m.Shape), m.Event, "rejected")
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalize failed")
		return nil, fmt.Errorf("normalize webhook: %w", err)
	}
	span.SetAttributes(
		attribute.String("cms.event", m.Event),
		attribute.String("cms.entry.uid", m.UID),
		attribute.String("cms.mutation", string(m.Kind)),
	)

	result := u.Apply(ctx, m)
	metrics.RecordWebhook(string(m.Shape), m.Event, string(m.Kind))
	return result, nil
}

// Apply performs an already normalized mutation and notifies observers.
func (u *HandleWebhookUsecase) Apply(ctx context.Context, m domain.IndexMutation) *WebhookResult {
	result := &WebhookResult{
		Shape:  m.Shape,
		Event:  m.Event,
		Action: m.Kind,
		UID:    m.UID,
	}

	switch m.Kind {
	case domain.MutationUpsert:
		u.index.Put(*m.Entry)
	case domain.MutationRemove:
		result.Removed = u.index.Remove(m.UID)
	default:
		result.Stats = u.index.Stats()
		return result
	}

	result.Stats = u.index.Stats()
	metrics.SetIndexSize(result.Stats.TotalEntries)
	if u.notifier != nil {
		u.notifier.Publish(ctx, domain.NewMutationEvent(m, result.Stats))
	}
	return result
}
