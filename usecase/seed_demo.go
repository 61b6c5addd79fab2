package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"content-indexer/domain"
)

// ShapeDemoSeed tags mutations that come from the built-in catalog rather than a webhook.
const ShapeDemoSeed domain.PayloadShape = "demo_seed"

// TestDataResult lists what the test-data replay indexed.
type TestDataResult struct {
	Titles []string
	Stats  domain.IndexStats
}

// SimulatedWebhook is the payload a simulation built and what applying it did.
type SimulatedWebhook struct {
	Payload map[string]any
	Result  *WebhookResult
}

// Catalog is the demo stack's content types and locales.
type Catalog struct {
	ContentTypes []ContentTypeInfo `json:"contentTypes"`
	Locales      []LocaleInfo      `json:"locales"`
}

// SeedDemoUsecase loads demo content and replays sample webhooks through
// the regular ingest path.
type SeedDemoUsecase struct {
	webhooks *HandleWebhookUsecase
	now      func() time.Time
}

func NewSeedDemoUsecase(webhooks *HandleWebhookUsecase) *SeedDemoUsecase {
	return &SeedDemoUsecase{webhooks: webhooks, now: time.Now}
}

// SeedCatalog upserts the demo catalog and returns the resulting stats.
func (u *SeedDemoUsecase) SeedCatalog(ctx context.Context) domain.IndexStats {
	ctx, span := tracer.Start(ctx, "SeedCatalog")
	defer span.End()

	var result *WebhookResult
	for _, e := range demoCatalog() {
		entry := e
		result = u.webhooks.Apply(ctx, domain.IndexMutation{
			Kind:  domain.MutationUpsert,
			Shape: ShapeDemoSeed,
			Event: domain.EventEntryPublished,
			UID:   entry.UID,
			Entry: &entry,
		})
	}
	return result.Stats
}

// SeedTestData replays the sample publish webhooks.
func (u *SeedDemoUsecase) SeedTestData(ctx context.Context) (*TestDataResult, error) {
	out := &TestDataResult{}
	for _, p := range sampleWebhooks() {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode sample webhook: %w", err)
		}
		res, err := u.webhooks.Execute(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("apply sample webhook %v: %w", p.Data.Entry["uid"], err)
		}
		out.Titles = append(out.Titles, p.Data.Entry["title"].(string))
		out.Stats = res.Stats
	}
	return out, nil
}

// SimulateWebhook builds a CMS webhook from event and data and applies it.
// An empty event defaults to entry.published and empty data to a generated
// test entry.
func (u *SeedDemoUsecase) SimulateWebhook(ctx context.Context, event string, data json.RawMessage) (*SimulatedWebhook, error) {
	if event == "" {
		event = domain.EventEntryPublished
	}

	var payloadData any
	if len(data) == 0 || string(data) == "null" {
		payloadData = u.defaultTestEntry()
	} else {
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("%w: data must be an object", domain.ErrInvalidRequest)
		}
		payloadData = decoded
	}

	payload := map[string]any{"event": event, "data": payloadData}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode simulated webhook: %w", err)
	}
	res, err := u.webhooks.Execute(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &SimulatedWebhook{Payload: payload, Result: res}, nil
}

// Catalog returns the content types and locales the demo stack advertises.
func (u *SeedDemoUsecase) Catalog() Catalog {
	return Catalog{ContentTypes: knownContentTypes(), Locales: knownLocales()}
}

func (u *SeedDemoUsecase) defaultTestEntry() domain.CMSWebhookData {
	now := u.now().UTC()
	ts := now.Format(time.RFC3339Nano)
	return domain.CMSWebhookData{
		Entry: map[string]any{
			"uid":          fmt.Sprintf("test-%d", now.UnixMilli()),
			"title":        "Test Entry from Webhook",
			"locale":       "en-us",
			"url":          "/test-entry",
			"created_at":   ts,
			"updated_at":   ts,
			"published_at": ts,
			"content":      "This is a test entry created via webhook simulation.",
			"description":  "Test entry for webhook functionality",
			"category":     "test",
		},
		ContentType: domain.ContentTypeRef{UID: "test_entry", Title: "Test Entry"},
	}
}
