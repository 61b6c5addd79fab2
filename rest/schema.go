package rest

import (
	"encoding/json"

	"content-indexer/domain"
	"content-indexer/usecase"
)

type SearchRequest struct {
	Query       string `json:"query" query:"q"`
	ContentType string `json:"contentType" query:"contentType" validate:"max=128"`
	Locale      string `json:"locale" query:"locale" validate:"max=32"`
	Limit       int    `json:"limit" query:"limit" validate:"gte=0"`
}

type EntriesRequest struct {
	Action      string `json:"action" validate:"required,oneof=list"`
	ContentType string `json:"contentType" validate:"max=128"`
	Locale      string `json:"locale" validate:"max=32"`
}

type EntriesQuery struct {
	ContentType string `query:"contentType" json:"contentType" validate:"max=128"`
	Locale      string `query:"locale" json:"locale" validate:"max=32"`
}

type TestWebhookRequest struct {
	Event string          `json:"event" validate:"max=64"`
	Data  json.RawMessage `json:"data"`
}

type WebhookResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Event   string              `json:"event"`
	Shape   domain.PayloadShape `json:"shape"`
	Action  domain.MutationKind `json:"action"`
	UID     string              `json:"uid,omitempty"`
	Stats   domain.IndexStats   `json:"stats"`
}

type SearchResponse struct {
	Success bool                 `json:"success"`
	Query   string               `json:"query"`
	Entries []domain.ScoredEntry `json:"entries"`
	Stats   *domain.IndexStats   `json:"stats,omitempty"`
}

type EntriesResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Entries []domain.Entry    `json:"entries"`
	Stats   domain.IndexStats `json:"stats"`
}

type StatsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Stats   domain.IndexStats `json:"stats"`
}

type ClearResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Removed int               `json:"removed"`
	Stats   domain.IndexStats `json:"stats"`
}

type TestDataResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Entries []string          `json:"entries"`
	Stats   domain.IndexStats `json:"stats"`
}

type TestWebhookResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payload map[string]any  `json:"payload"`
	Result  WebhookResponse `json:"result"`
}

type CatalogResponse struct {
	Success bool `json:"success"`
	usecase.Catalog
}

type InfoResponse struct {
	Message     string             `json:"message"`
	Status      string             `json:"status,omitempty"`
	Description string             `json:"description,omitempty"`
	Example     any                `json:"example,omitempty"`
	Stats       *domain.IndexStats `json:"stats,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func newWebhookResponse(res *usecase.WebhookResult) WebhookResponse {
	msg := "Webhook processed successfully"
	if res.Action == domain.MutationIgnore {
		msg = "Event ignored"
	}
	return WebhookResponse{
		Success: true,
		Message: msg,
		Event:   res.Event,
		Shape:   res.Shape,
		Action:  res.Action,
		UID:     res.UID,
		Stats:   res.Stats,
	}
}
