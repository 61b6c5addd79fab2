package rest

import (
	"time"

	"content-indexer/broadcaster"
	"content-indexer/config"
	"content-indexer/usecase"
)

// Dependencies are the use cases and collaborators the HTTP layer calls.
type Dependencies struct {
	Webhooks *usecase.HandleWebhookUsecase
	Search   *usecase.SearchEntriesUsecase
	List     *usecase.ListEntriesUsecase
	Admin    *usecase.IndexAdminUsecase
	Seed     *usecase.SeedDemoUsecase
	Hub      *broadcaster.Hub
}

// Handler contains all HTTP handlers for the content indexer
type Handler struct {
	webhooks *usecase.HandleWebhookUsecase
	search   *usecase.SearchEntriesUsecase
	list     *usecase.ListEntriesUsecase
	admin    *usecase.IndexAdminUsecase
	seed     *usecase.SeedDemoUsecase
	hub      *broadcaster.Hub

	defaultLimit   int
	maxLimit       int
	maxQueryLength int
	heartbeat      time.Duration
}

func NewHandler(deps Dependencies, cfg *config.Config) *Handler {
	return &Handler{
		webhooks:       deps.Webhooks,
		search:         deps.Search,
		list:           deps.List,
		admin:          deps.Admin,
		seed:           deps.Seed,
		hub:            deps.Hub,
		defaultLimit:   cfg.Search.DefaultLimit,
		maxLimit:       cfg.Search.MaxLimit,
		maxQueryLength: cfg.Search.MaxQueryLength,
		heartbeat:      cfg.SSE.HeartbeatInterval,
	}
}
